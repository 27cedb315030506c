package core

import (
	"fmt"
	"strings"
)

func recipeSystemPrompt() string {
	return `You are a home-cooking assistant. Reply with a JSON object {"recipe": {...}} where the recipe has name, description, ingredients (list of strings) and steps (list of {"order": int, "instruction": string}). For a multi-dish meal, add a dishes list with the same shape per dish.`
}

func recipeUserPrompt(meal MealType) string {
	return fmt.Sprintf("Meal slot: %s. Suggest one dish that fits this slot.", meal)
}

func titleSystemPrompt() string {
	return "You are a food blogger. Write a catchy post title under 20 characters with one emoji. Reply with the title only."
}

func titleUserPrompt(recipe *Recipe) string {
	return fmt.Sprintf("Dish: %s. Meal slot: %s.", recipe.Name, recipe.MealType)
}

func bodySystemPrompt() string {
	return "Write a short social-media post about a dish: ingredients, step highlights, how it tastes. Use emoji, add 2-3 #hashtags, keep it under 180 words."
}

func bodyUserPrompt(recipe *Recipe) string {
	steps := make([]string, 0, len(recipe.Steps))
	for _, step := range recipe.Steps {
		steps = append(steps, step.Instruction)
	}
	return fmt.Sprintf(
		"Recipe: %s. Main ingredients: %s. Steps: %s.",
		recipe.Description,
		strings.Join(recipe.Ingredients, ", "),
		strings.Join(steps, " / "),
	)
}

func auditSystemPrompt() string {
	return `You are a content safety reviewer. Flag profanity or harassment, sexual content, violence or self-harm, illegal activity, political sensitivity, discrimination or hate, privacy leakage, content unsuitable for minors, and incorrect medical advice. Borderline or implicit risk is at least medium. Reply with JSON only: {"ok": true/false, "reasons": [...], "risk_level": "none"|"low"|"medium"|"high"}.`
}

func auditUserPrompt(body string) string {
	return "Review this post body:\n" + body
}

func rewriteSystemPrompt() string {
	return "Rephrase the post body in a safe, gentle tone, removing anything that could violate content policy. Keep the style, the emoji and the meaning. Reply with the rewritten body only."
}

func rewriteUserPrompt(body string, reasons []string) string {
	var sb strings.Builder
	if len(reasons) > 0 {
		sb.WriteString("Flagged for: ")
		sb.WriteString(strings.Join(reasons, "; "))
		sb.WriteString("\n")
	}
	sb.WriteString("Original body:\n")
	sb.WriteString(body)
	return sb.String()
}

func coverImagePrompt(recipe *Recipe) string {
	return fmt.Sprintf("Appetizing food-blog cover photo of %s. %s", recipe.Name, recipe.Description)
}

func dishImagePrompt(dish Recipe) string {
	return fmt.Sprintf("Appetizing plated photo of %s. %s", dish.Name, dish.Description)
}

func stepImagePrompt(recipe *Recipe, step RecipeStep) string {
	return fmt.Sprintf("Cooking illustration for %s, step %d: %s", recipe.Name, step.Order, step.Instruction)
}
