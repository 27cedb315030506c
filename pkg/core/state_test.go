package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMealTypeFor(t *testing.T) {
	cases := []struct {
		hour int
		want MealType
	}{
		{6, Breakfast},
		{7, Breakfast},
		{10, Breakfast},
		{11, Lunch},
		{12, Lunch},
		{14, Lunch},
		{15, Snack},
		{16, Snack},
		{17, Dinner},
		{19, Dinner},
		{21, Dinner},
		{22, Snack},
		{23, Snack},
		{0, Snack},
		{3, Snack},
		{5, Snack},
	}
	for _, c := range cases {
		at := time.Date(2026, 9, 1, c.hour, 30, 0, 0, time.Local)
		assert.Equal(t, c.want, MealTypeFor(at), "hour %d", c.hour)
	}
}

func TestAuditVerdictNormalize(t *testing.T) {
	t.Run("medium risk forces failure", func(t *testing.T) {
		v := AuditVerdict{OK: true, RiskLevel: RiskMedium, Reasons: []string{"borderline"}}
		v.Normalize()
		assert.False(t, v.OK)
		assert.Equal(t, []string{"borderline"}, v.Reasons)
	})

	t.Run("high risk forces failure", func(t *testing.T) {
		v := AuditVerdict{OK: true, RiskLevel: RiskHigh}
		v.Normalize()
		assert.False(t, v.OK)
	})

	t.Run("passing verdict drops reasons", func(t *testing.T) {
		v := AuditVerdict{OK: true, RiskLevel: RiskNone, Reasons: []string{"stale"}}
		v.Normalize()
		assert.True(t, v.OK)
		assert.Empty(t, v.Reasons)
	})

	t.Run("empty risk defaults to none", func(t *testing.T) {
		v := AuditVerdict{OK: true}
		v.Normalize()
		assert.Equal(t, RiskNone, v.RiskLevel)
	})
}

func TestContentPayload(t *testing.T) {
	c := Content{Title: "Cozy soup", Body: "Warm and quick."}
	assert.Equal(t, "Cozy soup\nWarm and quick.", c.Payload())
}
