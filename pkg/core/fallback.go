package core

// FallbackRecipe returns the built-in template recipe for a meal type. It is
// the last line of the recipe stage's never-fail guarantee.
func FallbackRecipe(meal MealType) *Recipe {
	var recipe Recipe
	switch meal {
	case Breakfast:
		recipe = Recipe{
			Name:        "Sunrise Oat Bowl",
			Description: "Creamy oats with fruit, ready in ten minutes.",
			Ingredients: []string{"Rolled oats 60g", "Milk 250ml", "Banana 1", "Honey 1 tsp", "Mixed nuts a handful"},
			Steps: []RecipeStep{
				{Order: 1, Instruction: "Simmer the oats in milk over low heat for five minutes."},
				{Order: 2, Instruction: "Slice the banana while the oats cook."},
				{Order: 3, Instruction: "Pour the oats into a bowl and top with banana and nuts."},
				{Order: 4, Instruction: "Drizzle honey over the top and serve warm."},
			},
		}
	case Lunch:
		recipe = Recipe{
			Name:        "Power Chicken Plate",
			Description: "Pan-seared chicken with greens and rice, an easy weekday refuel.",
			Ingredients: []string{"Chicken breast 150g", "Broccoli 1 head", "Cooked rice 1 bowl", "Olive oil 1 tbsp", "Salt and black pepper to taste"},
			Steps: []RecipeStep{
				{Order: 1, Instruction: "Slice the chicken and season with salt and pepper for five minutes."},
				{Order: 2, Instruction: "Blanch the broccoli florets and set aside."},
				{Order: 3, Instruction: "Sear the chicken in a hot oiled pan, then toss in the broccoli."},
				{Order: 4, Instruction: "Serve over rice with a final drizzle of olive oil."},
			},
		}
	case Dinner:
		recipe = Recipe{
			Name:        "Tomato Egg Noodle Soup",
			Description: "A cozy one-pot noodle soup for a slow evening.",
			Ingredients: []string{"Fresh noodles 200g", "Tomatoes 2", "Eggs 2", "Scallion 1 stalk", "Soy sauce 1 tbsp"},
			Steps: []RecipeStep{
				{Order: 1, Instruction: "Saute chopped tomatoes until they break down into a sauce."},
				{Order: 2, Instruction: "Add water, bring to a boil and season with soy sauce."},
				{Order: 3, Instruction: "Cook the noodles in the broth, then stream in beaten eggs."},
				{Order: 4, Instruction: "Finish with sliced scallion and serve hot."},
			},
		}
	default:
		recipe = Recipe{
			Name:        "Crispy Rice Cake Bites",
			Description: "A quick crunchy snack to carry you to the next meal.",
			Ingredients: []string{"Rice cakes 4", "Peanut butter 2 tbsp", "Dark chocolate 30g", "Sea salt a pinch"},
			Steps: []RecipeStep{
				{Order: 1, Instruction: "Spread peanut butter evenly over the rice cakes."},
				{Order: 2, Instruction: "Melt the chocolate and drizzle it on top."},
				{Order: 3, Instruction: "Sprinkle with sea salt and chill for ten minutes."},
			},
		}
	}
	recipe.MealType = meal
	return &recipe
}
