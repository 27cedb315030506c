package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mealpost/mealpost/pkg/imagegen"
	"github.com/mealpost/mealpost/pkg/llm"
	"github.com/mealpost/mealpost/pkg/publish"
)

// Step is one node of the orchestration graph.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

var stepMap = map[StepType]Step{
	DetermineMeal:   &DetermineMealStep{},
	GenerateRecipe:  &GenerateRecipeStep{},
	GenerateContent: &GenerateContentStep{},
	AuditContent:    &AuditContentStep{},
	RewriteContent:  &RewriteContentStep{},
	GenerateImages:  &GenerateImagesStep{},
	Publish:         &PublishStep{},
}

// GetStep returns the implementation for a node.
func GetStep(stepType StepType) Step {
	return stepMap[stepType]
}

// DetermineMealStep picks the meal slot from the wall clock. No external call.
type DetermineMealStep struct{}

func (s *DetermineMealStep) Execute(_ context.Context, state *State) error {
	if state.Now.IsZero() {
		state.Now = time.Now()
	}
	state.MealType = MealTypeFor(state.Now)
	state.Logger.Info().
		Str("time", state.Now.Format(time.RFC3339)).
		Str("meal_type", string(state.MealType)).
		Msg("Meal slot determined")
	return nil
}

// GenerateRecipeStep asks the recipe vendor for a dish, falling back to the
// recipe-knowledge tool and finally the built-in template. Never fails.
type GenerateRecipeStep struct{}

func (s *GenerateRecipeStep) Execute(ctx context.Context, state *State) error {
	if state.MealType == "" {
		return fmt.Errorf("generate recipe: meal type not set")
	}

	vendor := state.Config.Roles.Recipe
	state.Ledger.Add(vendor)
	resp, err := state.Clients.Recipe.Invoke(ctx, llm.Request{
		Vendor:      vendor,
		System:      recipeSystemPrompt(),
		User:        recipeUserPrompt(state.MealType),
		Temperature: 0.4,
		JSONObject:  true,
	})

	var recipe *Recipe
	if err != nil {
		state.Logger.Warn().Err(err).Msg("Recipe vendor unavailable")
	} else if recipe, err = recipeFromResponse(resp, state.MealType); err != nil {
		state.Logger.Warn().Err(err).Msg("Recipe response unusable")
		recipe = nil
	}

	if recipe == nil && state.Clients.RecipeTool != nil {
		payload, toolErr := state.Clients.RecipeTool.Query(ctx, string(state.MealType))
		if toolErr != nil {
			state.Logger.Warn().Err(toolErr).Msg("Recipe tool unavailable")
		} else if parsed, parseErr := ParseRecipe(payload, state.MealType); parseErr == nil {
			recipe = parsed
		} else {
			state.Logger.Warn().Err(parseErr).Msg("Recipe tool payload unusable")
		}
	}

	if recipe == nil {
		state.Logger.Info().Msg("Falling back to built-in template recipe")
		recipe = FallbackRecipe(state.MealType)
	}

	state.Recipe = recipe
	state.Logger.Info().Str("recipe", recipe.Name).Msg("Recipe ready")
	return nil
}

func recipeFromResponse(resp llm.Response, meal MealType) (*Recipe, error) {
	var payload map[string]any
	if err := resp.DecodeKey("recipe", &payload); err == nil {
		return ParseRecipe(payload, meal)
	}
	if err := resp.Decode(&payload); err == nil {
		if recipe, parseErr := ParseRecipe(payload, meal); parseErr == nil {
			return recipe, nil
		}
	}
	if text := resp.Text(); text != "" {
		return ParseRecipe(text, meal)
	}
	return nil, fmt.Errorf("no recipe in response")
}

// GenerateContentStep produces title and body with two separate calls,
// extracts tags, pins the weekday and guarantees non-empty output.
type GenerateContentStep struct{}

func (s *GenerateContentStep) Execute(ctx context.Context, state *State) error {
	if state.Recipe == nil {
		return fmt.Errorf("generate content: recipe not set")
	}
	recipe := state.Recipe
	vendor := state.Config.Roles.Content

	state.Ledger.Add(vendor)
	title := ""
	if resp, err := state.Clients.Content.Invoke(ctx, llm.Request{
		Vendor: vendor,
		System: titleSystemPrompt(),
		User:   titleUserPrompt(recipe),
	}); err != nil {
		state.Logger.Warn().Err(err).Msg("Title generation failed")
	} else {
		title = strings.TrimSpace(resp.Text())
	}
	if title == "" {
		title = FallbackTitle(recipe)
	}

	state.Ledger.Add(vendor)
	body := ""
	if resp, err := state.Clients.Content.Invoke(ctx, llm.Request{
		Vendor: vendor,
		System: bodySystemPrompt(),
		User:   bodyUserPrompt(recipe),
	}); err != nil {
		state.Logger.Warn().Err(err).Msg("Body generation failed")
	} else {
		body = strings.TrimSpace(resp.Text())
	}
	if body == "" {
		body = FallbackBody(recipe)
	}

	body = FixWeekday(body, state.Now)
	body, tags := ExtractTags(body)
	tags = FillTags(tags, state.Config.MinTags)

	state.Content = &Content{Title: title, Body: body, Tags: tags}
	state.Logger.Info().Str("title", title).Int("tags", len(tags)).Msg("Content ready")
	return nil
}

// AuditContentStep runs the safety audit. Anything that prevents a parsed
// verdict fails closed.
type AuditContentStep struct{}

func (s *AuditContentStep) Execute(ctx context.Context, state *State) error {
	if state.Content == nil {
		return fmt.Errorf("audit content: content not set")
	}

	vendor := state.Config.Roles.Audit
	state.Ledger.Add(vendor)
	resp, err := state.Clients.Audit.Invoke(ctx, llm.Request{
		Vendor:     vendor,
		System:     auditSystemPrompt(),
		User:       auditUserPrompt(state.Content.Body),
		JSONObject: true,
	})

	verdict := &AuditVerdict{OK: false, RiskLevel: RiskHigh}
	switch {
	case err != nil:
		verdict.Reasons = []string{"audit service unavailable"}
	case !resp.Has("ok"):
		verdict.Reasons = []string{"audit response unparsable"}
	default:
		var parsed AuditVerdict
		if decodeErr := resp.Decode(&parsed); decodeErr != nil {
			verdict.Reasons = []string{"audit response unparsable"}
		} else {
			verdict = &parsed
		}
	}
	verdict.Normalize()

	state.Audit = verdict
	state.Logger.Info().
		Bool("ok", verdict.OK).
		Str("risk", string(verdict.RiskLevel)).
		Strs("reasons", verdict.Reasons).
		Msg("Audit verdict")
	return nil
}

// RewriteContentStep rephrases a flagged body once, keeping the title and
// tags. The orchestrator routes the result back through the audit.
type RewriteContentStep struct{}

func (s *RewriteContentStep) Execute(ctx context.Context, state *State) error {
	if state.Content == nil || state.Audit == nil {
		return fmt.Errorf("rewrite content: content or audit verdict not set")
	}

	vendor := state.Config.Roles.Content
	state.Ledger.Add(vendor)
	resp, err := state.Clients.Content.Invoke(ctx, llm.Request{
		Vendor: vendor,
		System: rewriteSystemPrompt(),
		User:   rewriteUserPrompt(state.Content.Body, state.Audit.Reasons),
	})
	if err != nil {
		state.Logger.Warn().Err(err).Msg("Rewrite failed, keeping original body")
	} else if text := strings.TrimSpace(resp.Text()); text != "" {
		// New hashtags in the rewrite are dropped; the post keeps its tags.
		body, _ := ExtractTags(text)
		state.Content.Body = body
	}

	state.RewriteAttempted = true
	state.Logger.Info().Msg("Body rewritten for re-audit")
	return nil
}

// GenerateImagesStep requests the cover plus one image per dish (or per
// step for a single-dish recipe). Requests run concurrently; each failure
// degrades to a placeholder. Cover is always index 0.
type GenerateImagesStep struct{}

type imageItem struct {
	name   string
	part   string
	prompt string
}

func (s *GenerateImagesStep) Execute(ctx context.Context, state *State) error {
	if state.Recipe == nil {
		return fmt.Errorf("generate images: recipe not set")
	}
	recipe := state.Recipe
	vendor := state.Config.Roles.Images

	items := []imageItem{{name: recipe.Name, part: "cover", prompt: coverImagePrompt(recipe)}}
	if len(recipe.Dishes) > 0 {
		for _, dish := range recipe.Dishes {
			items = append(items, imageItem{name: dish.Name, part: "dish", prompt: dishImagePrompt(dish)})
		}
	} else {
		for _, step := range recipe.Steps {
			items = append(items, imageItem{
				name:   recipe.Name,
				part:   fmt.Sprintf("step_%d", step.Order),
				prompt: stepImagePrompt(recipe, step),
			})
		}
	}

	results := make([]string, len(items))
	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		state.Ledger.Add(vendor)
		g.Go(func() error {
			url := ""
			if state.Clients.Images != nil {
				generated, err := state.Clients.Images.Generate(gctx, item.prompt, imagegen.DefaultSize)
				if err != nil {
					state.Logger.Warn().Err(err).Str("part", item.part).Msg("Image generation failed, using placeholder")
				} else {
					url = generated
				}
			}
			if url == "" {
				url = imagegen.PlaceholderURL(item.name, item.part)
			}
			results[i] = url
			return nil
		})
	}
	// Goroutines never return errors; Wait orders the slot writes.
	_ = g.Wait()

	state.Images = results

	if state.Clients.ImageStore != nil {
		for i, url := range results {
			path, err := state.Clients.ImageStore.Save(ctx, url, items[i].name+"_"+items[i].part)
			if err != nil {
				state.Logger.Debug().Err(err).Str("url", url).Msg("Image not persisted")
				continue
			}
			state.Logger.Debug().Str("path", path).Msg("Image saved")
		}
	}

	state.Logger.Info().Int("images", len(results)).Msg("Images ready")
	return nil
}

// PublishStep sends the post to the platform. This is the only stage
// allowed to fail the run: a fabricated publish success would be
// user-visibly wrong.
type PublishStep struct{}

func (s *PublishStep) Execute(ctx context.Context, state *State) error {
	if state.Content == nil {
		return fmt.Errorf("publish: content not set")
	}
	if len(state.Images) == 0 {
		return fmt.Errorf("publish: images not set")
	}

	vendor := state.Config.Roles.Publish
	state.Ledger.Add(vendor)
	result, err := state.Clients.Publisher.Publish(ctx, publish.Request{
		Content: state.Content.Payload(),
		Images:  state.Images,
		Tags:    state.Content.Tags,
	})
	if err != nil {
		return &PublishError{Err: err}
	}
	if !result.Success {
		return &PublishError{Err: fmt.Errorf("platform reported failure (post_id=%q)", result.PostID)}
	}

	state.PublishResult = &PublishOutcome{
		Success: true,
		PostID:  result.PostID,
		Detail:  result.Detail,
	}
	state.Logger.Info().Str("post_id", result.PostID).Msg("Published")
	return nil
}
