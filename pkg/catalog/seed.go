package catalog

import (
	"context"

	"github.com/korjavin/recipematch/pkg/models"
)

// RecipeInfoProvider supplies full recipe details for a dish name,
// typically backed by an LLM.
type RecipeInfoProvider interface {
	GetRecipeInfo(ctx context.Context, dishName, cuisine string) (ingredients []string, instructions []string, err error)
}

// seedDishes are the dishes the catalog is primed with when empty.
var seedDishes = []struct {
	Title   string
	Cuisine string
}{
	{"Chicken Stir Fry", "Asian"},
	{"Spaghetti Bolognese", "Italian"},
	{"Vegetable Curry", "Indian"},
	{"Beef Stroganoff", "Russian"},
	{"Greek Salad", "Greek"},
	{"Mushroom Risotto", "Italian"},
}

// fallbackRecipes is used for any seed dish the provider cannot fill in
// (or when no provider is configured).
var fallbackRecipes = map[string]models.RecipeRecord{
	"Chicken Stir Fry": {
		Title: "Chicken Stir Fry", Cuisine: "Asian", CookingTime: 25, Difficulty: "easy", Servings: 4,
		Ingredients: []models.RecipeIngredient{
			{Name: "chicken breast", Quantity: "500", Unit: "g"},
			{Name: "bell peppers", Quantity: "2"},
			{Name: "broccoli", Quantity: "1", Unit: "head"},
			{Name: "garlic", Quantity: "3", Unit: "cloves"},
			{Name: "soy sauce", Quantity: "3", Unit: "tbsp"},
		},
		Instructions: []string{
			"Slice the chicken and vegetables.",
			"Stir-fry the chicken until cooked through.",
			"Add the vegetables and garlic, then the soy sauce.",
		},
	},
	"Spaghetti Bolognese": {
		Title: "Spaghetti Bolognese", Cuisine: "Italian", CookingTime: 45, Difficulty: "easy", Servings: 4,
		Ingredients: []models.RecipeIngredient{
			{Name: "spaghetti", Quantity: "400", Unit: "g"},
			{Name: "ground beef", Quantity: "500", Unit: "g"},
			{Name: "canned tomatoes", Quantity: "400", Unit: "g"},
			{Name: "onion", Quantity: "1"},
			{Name: "garlic", Quantity: "2", Unit: "cloves"},
			{Name: "olive oil", Quantity: "2", Unit: "tbsp"},
		},
		Instructions: []string{
			"Brown the beef with the onion and garlic.",
			"Add the tomatoes and simmer.",
			"Serve over cooked spaghetti.",
		},
	},
	"Vegetable Curry": {
		Title: "Vegetable Curry", Cuisine: "Indian", CookingTime: 40, Difficulty: "medium", Servings: 4,
		Ingredients: []models.RecipeIngredient{
			{Name: "potatoes", Quantity: "3"},
			{Name: "carrots", Quantity: "2"},
			{Name: "onion", Quantity: "1"},
			{Name: "coconut milk", Quantity: "400", Unit: "ml"},
			{Name: "curry powder", Quantity: "2", Unit: "tbsp"},
			{Name: "rice", Quantity: "300", Unit: "g"},
		},
		Instructions: []string{
			"Soften the onion, add the curry powder.",
			"Add the vegetables and coconut milk, simmer until tender.",
			"Serve with rice.",
		},
	},
	"Beef Stroganoff": {
		Title: "Beef Stroganoff", Cuisine: "Russian", CookingTime: 35, Difficulty: "medium", Servings: 4,
		Ingredients: []models.RecipeIngredient{
			{Name: "beef steak", Quantity: "500", Unit: "g"},
			{Name: "mushrooms", Quantity: "250", Unit: "g"},
			{Name: "onion", Quantity: "1"},
			{Name: "sour cream", Quantity: "200", Unit: "ml"},
			{Name: "butter", Quantity: "2", Unit: "tbsp"},
		},
		Instructions: []string{
			"Sear the beef strips in butter.",
			"Cook the mushrooms and onion, return the beef.",
			"Stir in the sour cream and warm through.",
		},
	},
	"Greek Salad": {
		Title: "Greek Salad", Cuisine: "Greek", CookingTime: 15, Difficulty: "easy", Servings: 2,
		Ingredients: []models.RecipeIngredient{
			{Name: "tomatoes", Quantity: "3"},
			{Name: "cucumber", Quantity: "1"},
			{Name: "red onion", Quantity: "1"},
			{Name: "feta", Quantity: "150", Unit: "g"},
			{Name: "olive oil", Quantity: "3", Unit: "tbsp"},
			{Name: "oregano", Quantity: "1", Unit: "tsp"},
		},
		Instructions: []string{
			"Chop the vegetables and combine.",
			"Top with feta, olive oil and oregano.",
		},
	},
	"Mushroom Risotto": {
		Title: "Mushroom Risotto", Cuisine: "Italian", CookingTime: 50, Difficulty: "hard", Servings: 4,
		Ingredients: []models.RecipeIngredient{
			{Name: "arborio rice", Quantity: "300", Unit: "g"},
			{Name: "mushrooms", Quantity: "300", Unit: "g"},
			{Name: "vegetable stock", Quantity: "1", Unit: "l"},
			{Name: "white wine", Quantity: "100", Unit: "ml"},
			{Name: "parmesan", Quantity: "50", Unit: "g"},
			{Name: "butter", Quantity: "2", Unit: "tbsp"},
		},
		Instructions: []string{
			"Cook the mushrooms and set aside.",
			"Toast the rice, deglaze with wine, add stock a ladle at a time.",
			"Finish with mushrooms, butter and parmesan.",
		},
	},
}

// EnsureSeeded populates an empty catalog. When a provider is given,
// each seed dish is filled in through it; dishes the provider fails on
// fall back to the built-in recipes. A nil provider seeds the built-in
// recipes directly. A non-empty catalog is left untouched.
func (s *Service) EnsureSeeded(ctx context.Context, provider RecipeInfoProvider) error {
	count, err := s.CountRecipes()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	s.logger.Info("Catalog empty, seeding %d recipes", len(seedDishes))
	for _, dish := range seedDishes {
		recipe := s.seedRecipe(ctx, provider, dish.Title, dish.Cuisine)
		if recipe == nil {
			continue
		}
		if err := s.SaveRecipe(recipe); err != nil {
			s.logger.Error("Failed to save seed recipe %s: %v", dish.Title, err)
		}
	}
	return nil
}

func (s *Service) seedRecipe(ctx context.Context, provider RecipeInfoProvider, title, cuisine string) *models.RecipeRecord {
	if provider != nil {
		ingredients, instructions, err := provider.GetRecipeInfo(ctx, title, cuisine)
		if err == nil && len(ingredients) > 0 {
			recipeIngredients := make([]models.RecipeIngredient, 0, len(ingredients))
			for _, name := range ingredients {
				recipeIngredients = append(recipeIngredients, models.RecipeIngredient{Name: name})
			}
			return &models.RecipeRecord{
				Title:        title,
				Cuisine:      cuisine,
				Ingredients:  recipeIngredients,
				Instructions: instructions,
			}
		}
		if err != nil {
			s.logger.Error("Failed to fetch recipe info for %s: %v", title, err)
		}
	}

	if fallback, ok := fallbackRecipes[title]; ok {
		recipe := fallback
		return &recipe
	}
	s.logger.Warn("No fallback recipe for %s, skipping", title)
	return nil
}
