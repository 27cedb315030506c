package core

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mealpost/mealpost/pkg/config"
	"github.com/mealpost/mealpost/pkg/llm"
	"github.com/mealpost/mealpost/pkg/publish"
)

// MealType is the meal slot the pipeline is posting for.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypeFor maps a wall-clock time onto a meal slot using fixed local-time
// bands: 06-10 breakfast, 11-14 lunch, 17-21 dinner, everything else snack.
func MealTypeFor(t time.Time) MealType {
	switch hour := t.Hour(); {
	case hour >= 6 && hour <= 10:
		return Breakfast
	case hour >= 11 && hour <= 14:
		return Lunch
	case hour >= 17 && hour <= 21:
		return Dinner
	default:
		return Snack
	}
}

// RecipeStep is one instruction in a recipe.
type RecipeStep struct {
	Order       int    `json:"order"`
	Instruction string `json:"instruction"`
}

// Recipe is a normalized recipe. Ingredients are flat strings; Steps is
// never empty after normalization. Dishes carries sub-recipes for
// multi-dish meals.
type Recipe struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	MealType    MealType     `json:"meal_type"`
	Ingredients []string     `json:"ingredients"`
	Steps       []RecipeStep `json:"steps"`
	Dishes      []Recipe     `json:"dishes,omitempty"`
}

// Content is the social-media copy for one post.
type Content struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// Payload is the text sent to the publishing platform.
func (c Content) Payload() string {
	return strings.TrimSpace(c.Title + "\n" + c.Body)
}

// RiskLevel grades an audit verdict.
type RiskLevel string

const (
	RiskNone   RiskLevel = "none"
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// AuditVerdict is the outcome of the safety audit.
type AuditVerdict struct {
	OK        bool      `json:"ok"`
	Reasons   []string  `json:"reasons"`
	RiskLevel RiskLevel `json:"risk_level"`
}

// Normalize enforces the verdict invariants: medium or high risk always
// fails, and a passing verdict carries no reasons.
func (v *AuditVerdict) Normalize() {
	if v.RiskLevel == "" {
		v.RiskLevel = RiskNone
	}
	if v.RiskLevel == RiskMedium || v.RiskLevel == RiskHigh {
		v.OK = false
	}
	if v.OK {
		v.Reasons = nil
	}
}

// PublishOutcome is the terminal publish result.
type PublishOutcome struct {
	Success bool           `json:"success"`
	PostID  string         `json:"post_id,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
}

// Invoker is the slice of the service invoker the stages depend on.
type Invoker interface {
	Invoke(ctx context.Context, req llm.Request) (llm.Response, error)
}

// ImageGenerator produces one image URL per prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, size string) (string, error)
}

// ContentPublisher sends the finished post to the platform.
type ContentPublisher interface {
	Publish(ctx context.Context, req publish.Request) (publish.Result, error)
}

// RecipeTool is the optional recipe-knowledge collaborator.
type RecipeTool interface {
	Query(ctx context.Context, mealType string) (map[string]any, error)
}

// ImageSaver persists a generated image URL locally. Optional; failures are
// logged and ignored.
type ImageSaver interface {
	Save(ctx context.Context, url, name string) (string, error)
}

// Clients bundles the external collaborators for one run.
type Clients struct {
	Recipe     Invoker
	Content    Invoker
	Audit      Invoker
	Images     ImageGenerator
	Publisher  ContentPublisher
	RecipeTool RecipeTool
	ImageStore ImageSaver
}

// State is the single mutable record threaded through the pipeline. One
// State belongs to exactly one run.
type State struct {
	RunID            string
	Now              time.Time
	MealType         MealType
	Recipe           *Recipe
	Content          *Content
	Audit            *AuditVerdict
	RewriteAttempted bool
	Images           []string
	PublishResult    *PublishOutcome

	Ledger  *CostLedger
	Clients Clients
	Config  *config.Config
	Logger  *zerolog.Logger
}
