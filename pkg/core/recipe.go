package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// defaultStep substitutes for a recipe that arrived with zero steps.
const defaultStep = "Cook with your usual method until done."

// recipePayload is the loose wire shape a recipe may arrive in. Ingredients
// and steps tolerate both plain strings and structured objects.
type recipePayload struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Ingredients []ingredientField `json:"ingredients"`
	Steps       []stepField       `json:"steps"`
	Dishes      []recipePayload   `json:"dishes"`
}

// ingredientField accepts "flour 200g" or {"name": "flour", "quantity": "200g"}.
type ingredientField string

func (f *ingredientField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = ingredientField(s)
		return nil
	}
	var obj struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("ingredient is neither string nor object: %w", err)
	}
	*f = ingredientField(strings.TrimSpace(obj.Name + " " + obj.Quantity))
	return nil
}

// stepField accepts "chop the onion" or {"order": 1, "instruction": "..."}.
type stepField struct {
	Order       int
	Instruction string
}

func (f *stepField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Instruction = s
		return nil
	}
	var obj struct {
		Order       int    `json:"order"`
		Instruction string `json:"instruction"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("step is neither string nor object: %w", err)
	}
	f.Order = obj.Order
	f.Instruction = obj.Instruction
	return nil
}

// ParseRecipe coerces an arbitrary recipe-shaped value (a decoded JSON
// object, or a raw JSON string) into a normalized Recipe.
func ParseRecipe(v any, meal MealType) (*Recipe, error) {
	var data []byte
	switch value := v.(type) {
	case string:
		data = []byte(value)
	case []byte:
		data = value
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encoding recipe payload: %w", err)
		}
		data = encoded
	}

	var payload recipePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding recipe payload: %w", err)
	}
	if payload.Name == "" && len(payload.Ingredients) == 0 && len(payload.Steps) == 0 && len(payload.Dishes) == 0 {
		return nil, fmt.Errorf("recipe payload is empty")
	}

	recipe := payloadToRecipe(payload, meal)
	recipe = NormalizeRecipe(recipe)
	return &recipe, nil
}

func payloadToRecipe(p recipePayload, meal MealType) Recipe {
	recipe := Recipe{
		Name:        p.Name,
		Description: p.Description,
		MealType:    meal,
	}
	for _, ing := range p.Ingredients {
		if s := strings.TrimSpace(string(ing)); s != "" {
			recipe.Ingredients = append(recipe.Ingredients, s)
		}
	}
	for _, step := range p.Steps {
		recipe.Steps = append(recipe.Steps, RecipeStep{Order: step.Order, Instruction: step.Instruction})
	}
	for _, dish := range p.Dishes {
		recipe.Dishes = append(recipe.Dishes, payloadToRecipe(dish, meal))
	}
	return recipe
}

// NormalizeRecipe enforces the recipe invariants: steps are never empty and
// carry strictly increasing display orders, top-level ingredients default to
// the concatenation of dish ingredients, and all dishes are themselves
// normalized. Normalizing a normalized recipe is a no-op.
func NormalizeRecipe(r Recipe) Recipe {
	for i, dish := range r.Dishes {
		r.Dishes[i] = NormalizeRecipe(dish)
	}

	if len(r.Ingredients) == 0 {
		for _, dish := range r.Dishes {
			r.Ingredients = append(r.Ingredients, dish.Ingredients...)
		}
	}
	if len(r.Ingredients) == 0 {
		r.Ingredients = []string{"Pantry staples to taste"}
	}

	if len(r.Steps) == 0 {
		r.Steps = []RecipeStep{{Order: 1, Instruction: defaultStep}}
	}
	prev := 0
	for i := range r.Steps {
		if r.Steps[i].Instruction == "" {
			r.Steps[i].Instruction = defaultStep
		}
		if r.Steps[i].Order <= prev {
			r.Steps[i].Order = prev + 1
		}
		prev = r.Steps[i].Order
	}

	if r.Name == "" {
		r.Name = fmt.Sprintf("%s special", r.MealType)
	}
	if r.Description == "" {
		r.Description = "A simple dish that comes together fast."
	}
	return r
}
