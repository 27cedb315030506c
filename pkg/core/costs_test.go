package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCostLedgerAdd(t *testing.T) {
	ledger := NewCostLedger(map[string]float64{"qwen": 0.01, "deepseek": 0.02})

	ledger.Add("qwen")
	ledger.Add("deepseek")
	ledger.Add("deepseek")

	assert.InDelta(t, 0.05, ledger.Total(), 1e-9)
	breakdown := ledger.Breakdown()
	assert.InDelta(t, 0.01, breakdown["qwen"], 1e-9)
	assert.InDelta(t, 0.04, breakdown["deepseek"], 1e-9)
}

func TestCostLedgerUnknownVendorIsFree(t *testing.T) {
	ledger := NewCostLedger(map[string]float64{"qwen": 0.01})
	ledger.Add("mystery")
	assert.Zero(t, ledger.Total())
	assert.Zero(t, ledger.Breakdown()["mystery"])
}

func TestCostLedgerMonotonicAndConsistent(t *testing.T) {
	ledger := NewCostLedger(map[string]float64{"a": 0.01, "b": 0.005, "c": 0.03})

	prev := 0.0
	for _, vendor := range []string{"a", "b", "c", "b", "a", "unknown", "c"} {
		ledger.Add(vendor)

		total := ledger.Total()
		assert.GreaterOrEqual(t, total, prev, "total never decreases")
		prev = total

		sum := 0.0
		for _, cost := range ledger.Breakdown() {
			sum += cost
		}
		assert.InDelta(t, total, sum, 1e-9, "total equals sum of breakdown")
	}
}
