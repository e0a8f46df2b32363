package models

import (
	"time"
)

// RecipeRecord is a recipe as stored in the catalog.
type RecipeRecord struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Author       string             `json:"author,omitempty"`
	Cuisine      string             `json:"cuisine,omitempty"`
	CookingTime  int                `json:"cooking_time,omitempty"` // minutes
	Difficulty   string             `json:"difficulty,omitempty"`
	Servings     int                `json:"servings,omitempty"`
	ImageURL     string             `json:"image_url,omitempty"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
}

// IngredientNames returns the unique ingredient names of the recipe,
// preserving first-seen order.
func (r *RecipeRecord) IngredientNames() []string {
	seen := make(map[string]bool, len(r.Ingredients))
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if !seen[ing.Name] {
			seen[ing.Name] = true
			names = append(names, ing.Name)
		}
	}
	return names
}

// RecipeIngredient is a single ingredient entry of a recipe.
type RecipeIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// PantryIngredient is an ingredient a user has available. Only the name
// matters for matching; quantity and unit are informational.
type PantryIngredient struct {
	Name     string    `json:"name"`
	Quantity string    `json:"quantity,omitempty"`
	Unit     string    `json:"unit,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

// Pantry holds the ingredients available in a chat's pantry.
type Pantry struct {
	ID          string                      `json:"id"`
	ChatID      int64                       `json:"chat_id"`
	Ingredients map[string]PantryIngredient `json:"ingredients"`
	LastUpdated time.Time                   `json:"last_updated"`
}

// NormalizedIngredient is the canonical view of a raw ingredient name.
type NormalizedIngredient struct {
	Original   string   `json:"original"`
	Normalized string   `json:"normalized"`
	Variations []string `json:"variations"`
}

// IngredientMatch pairs one pantry ingredient with its best-matching
// recipe ingredient.
type IngredientMatch struct {
	PantryIngredient string `json:"pantry_ingredient"`
	RecipeIngredient string `json:"recipe_ingredient"`
	MatchScore       int    `json:"match_score"` // 0-100
	IsExactMatch     bool   `json:"is_exact_match"`
}

// RecipeMatch is the engine's primary output: a recipe scored against a
// pantry. MatchPercentage is relative to the pantry size (the share of
// pantry ingredients the recipe satisfies).
type RecipeMatch struct {
	RecipeID           string   `json:"recipe_id"`
	Title              string   `json:"title"`
	Author             string   `json:"author,omitempty"`
	CookingTime        int      `json:"cooking_time,omitempty"`
	Difficulty         string   `json:"difficulty,omitempty"`
	Servings           int      `json:"servings,omitempty"`
	ImageURL           string   `json:"image_url,omitempty"`
	MatchPercentage    int      `json:"match_percentage"`
	MatchedIngredients []string `json:"matched_ingredients"`
	MissingIngredients []string `json:"missing_ingredients"`
	TotalIngredients   int      `json:"total_ingredients"`
}

// IngredientMatchResult is the output of the one-off pantry-vs-recipe
// percentage check. MatchPercentage here is relative to the recipe's
// ingredient count, not the pantry size.
type IngredientMatchResult struct {
	MatchPercentage      int      `json:"match_percentage"`
	AvailableIngredients []string `json:"available_ingredients"`
	MissingIngredients   []string `json:"missing_ingredients"`
}

// IngredientAnalysis lists every candidate score for one pantry
// ingredient against a recipe's ingredient list.
type IngredientAnalysis struct {
	PantryIngredient string            `json:"pantry_ingredient"`
	Normalized       string            `json:"normalized"`
	Candidates       []IngredientMatch `json:"candidates"` // sorted by score desc
	Best             *IngredientMatch  `json:"best,omitempty"`
}

// MatchAnalysis is the diagnostic output for a single recipe.
type MatchAnalysis struct {
	RecipeID    string               `json:"recipe_id"`
	RecipeTitle string               `json:"recipe_title"`
	Ingredients []IngredientAnalysis `json:"ingredients"`
}

// SearchStats tracks matching activity for a chat.
type SearchStats struct {
	ChatID           int64          `json:"chat_id"`
	SearchCount      int            `json:"search_count"`
	IngredientCounts map[string]int `json:"ingredient_counts"` // normalized key -> times searched
	RecipeHitCounts  map[string]int `json:"recipe_hit_counts"` // recipe ID -> times returned
	LastSearchAt     time.Time      `json:"last_search_at,omitempty"`
}
