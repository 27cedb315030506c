package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	tagPattern     = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
	weekdayPattern = regexp.MustCompile(`(?i)(today\s+is\s+)(monday|tuesday|wednesday|thursday|friday|saturday|sunday)`)
	spaceRuns      = regexp.MustCompile(`[ \t]+`)
	trailingSpace  = regexp.MustCompile(`[ \t]+\n`)
)

// fillerTags pads generated tags up to the configured minimum.
var fillerTags = []string{"foodie", "homecooking", "easyrecipe", "yummy", "dailymeal", "comfortfood"}

// ExtractTags pulls #word tokens out of a generated body. Returns the body
// with the tokens stripped and the deduplicated tags in order of first
// appearance.
func ExtractTags(body string) (string, []string) {
	var tags []string
	seen := map[string]bool{}
	for _, match := range tagPattern.FindAllStringSubmatch(body, -1) {
		tag := match[1]
		key := strings.ToLower(tag)
		if !seen[key] {
			seen[key] = true
			tags = append(tags, tag)
		}
	}
	stripped := tagPattern.ReplaceAllString(body, "")
	stripped = spaceRuns.ReplaceAllString(stripped, " ")
	stripped = trailingSpace.ReplaceAllString(stripped, "\n")
	return strings.TrimSpace(stripped), tags
}

// FillTags tops tags up to min entries from the filler pool, skipping
// duplicates and preserving insertion order.
func FillTags(tags []string, min int) []string {
	seen := map[string]bool{}
	for _, tag := range tags {
		seen[strings.ToLower(tag)] = true
	}
	for _, filler := range fillerTags {
		if len(tags) >= min {
			break
		}
		if !seen[filler] {
			seen[filler] = true
			tags = append(tags, filler)
		}
	}
	return tags
}

// FixWeekday overwrites any "today is <weekday>" phrase with the actual
// current weekday, so the model cannot invent the wrong day.
func FixWeekday(body string, now time.Time) string {
	actual := now.Weekday().String()
	return weekdayPattern.ReplaceAllString(body, "${1}"+actual)
}

// FallbackTitle builds a deterministic title straight from the recipe.
func FallbackTitle(recipe *Recipe) string {
	return fmt.Sprintf("Today's %s: %s", recipe.MealType, recipe.Name)
}

// FallbackBody builds a deterministic body straight from the recipe fields.
// Used when the generation vendor returns nothing usable; must never fail.
func FallbackBody(recipe *Recipe) string {
	var sb strings.Builder
	sb.WriteString(recipe.Description)
	sb.WriteString("\n\nYou'll need: ")
	sb.WriteString(strings.Join(recipe.Ingredients, ", "))
	sb.WriteString("\n\nHow it goes:\n")
	for _, step := range recipe.Steps {
		fmt.Fprintf(&sb, "%d. %s\n", step.Order, step.Instruction)
	}
	return strings.TrimSpace(sb.String())
}
