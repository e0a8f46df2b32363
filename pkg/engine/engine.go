// Package engine ranks recipes against a user's pantry. It depends on
// a catalog.RecipeRepository for data access and on the similarity
// scorers for per-ingredient decisions; it holds no state of its own
// beyond those collaborators.
package engine

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/korjavin/recipematch/pkg/catalog"
	"github.com/korjavin/recipematch/pkg/logger"
	"github.com/korjavin/recipematch/pkg/models"
	"github.com/korjavin/recipematch/pkg/normalize"
	"github.com/korjavin/recipematch/pkg/similarity"
)

const (
	// DefaultMinMatchPercentage is the result floor when the caller
	// does not choose one.
	DefaultMinMatchPercentage = 50
	// DefaultMaxResults caps the ranked list when the caller does not
	// choose a limit.
	DefaultMaxResults = 20

	// scoreFloor discards weak per-ingredient matches inside
	// FindMatchingRecipes.
	scoreFloor = 50

	// fetchWorkers bounds the concurrent per-recipe ingredient fetches.
	fetchWorkers = 8
)

// MatchOptions tunes FindMatchingRecipes. A zero or negative
// MinMatchPercentage or MaxResults falls back to the package default.
type MatchOptions struct {
	MinMatchPercentage int
	MaxResults         int
	// IncludePartialMatches is accepted for interface compatibility but
	// does not gate anything: partial matches above the percentage
	// floor are always included.
	IncludePartialMatches bool
}

// DefaultMatchOptions returns the documented defaults.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		MinMatchPercentage: DefaultMinMatchPercentage,
		MaxResults:         DefaultMaxResults,
	}
}

// Engine is the recipe match engine.
type Engine struct {
	repo     catalog.RecipeRepository
	enhanced similarity.Strategy
	logger   *logger.Logger
}

// New creates a match engine over the given repository.
func New(repo catalog.RecipeRepository) *Engine {
	return &Engine{
		repo:     repo,
		enhanced: similarity.EnhancedStrategy{},
		logger:   logger.New("engine"),
	}
}

// FindMatchingRecipes ranks the catalog against a pantry.
//
// Every pantry ingredient is matched against each recipe's ingredient
// list with the enhanced scorer; matches under the score floor are
// discarded. MatchPercentage is relative to the pantry size: a recipe
// that satisfies every pantry item scores 100 even if it needs
// ingredients the pantry lacks. Results are filtered by
// MinMatchPercentage, sorted by percentage descending (ties keep
// catalog order) and truncated to MaxResults.
func (e *Engine) FindMatchingRecipes(ctx context.Context, pantry []string, opts MatchOptions) ([]models.RecipeMatch, error) {
	pantry = cleanNames(pantry)
	if len(pantry) == 0 {
		return nil, &InputValidationError{Field: "pantry", Msg: "at least one ingredient is required"}
	}
	if opts.MinMatchPercentage <= 0 {
		opts.MinMatchPercentage = DefaultMinMatchPercentage
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}

	recipes, err := e.repo.AllRecipes(ctx)
	if err != nil {
		return nil, &DataAccessError{Op: "fetch catalog", Err: err}
	}

	matches := make([]*models.RecipeMatch, len(recipes))
	errs := make([]error, len(recipes))

	// Ingredient lists are fetched and scored concurrently; the final
	// ordering is fixed afterwards by the sort, so completion order
	// does not matter.
	var wg sync.WaitGroup
	sem := make(chan struct{}, fetchWorkers)
	for i := range recipes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			recipe := &recipes[i]
			ingredients, err := e.repo.RecipeIngredients(ctx, recipe.ID)
			if err != nil {
				errs[i] = err
				return
			}
			matches[i] = e.matchRecipe(pantry, recipe, ingredients)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, &DataAccessError{Op: "fetch recipe ingredients", Err: err}
		}
	}

	results := make([]models.RecipeMatch, 0, len(matches))
	for _, m := range matches {
		if m != nil && m.MatchPercentage >= opts.MinMatchPercentage {
			results = append(results, *m)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchPercentage > results[j].MatchPercentage
	})
	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	e.logger.Debug("Matched %d/%d recipes for a %d-item pantry", len(results), len(recipes), len(pantry))
	return results, nil
}

// matchRecipe scores one recipe against the pantry. MatchedIngredients
// carries the recipe's ingredient names; MissingIngredients carries the
// pantry names nothing satisfied.
func (e *Engine) matchRecipe(pantry []string, recipe *models.RecipeRecord, ingredients []string) *models.RecipeMatch {
	matched := make([]string, 0, len(pantry))
	missing := make([]string, 0)

	for _, pantryIngredient := range pantry {
		best := similarity.FindBestMatch(e.enhanced, pantryIngredient, ingredients)
		if best != nil && best.MatchScore >= scoreFloor {
			matched = append(matched, best.RecipeIngredient)
		} else {
			missing = append(missing, pantryIngredient)
		}
	}

	return &models.RecipeMatch{
		RecipeID:           recipe.ID,
		Title:              recipe.Title,
		Author:             recipe.Author,
		CookingTime:        recipe.CookingTime,
		Difficulty:         recipe.Difficulty,
		Servings:           recipe.Servings,
		ImageURL:           recipe.ImageURL,
		MatchPercentage:    roundPercentage(len(matched), len(pantry)),
		MatchedIngredients: matched,
		MissingIngredients: missing,
		TotalIngredients:   len(pantry),
	}
}

// CalculateIngredientMatch is the synchronous, storage-free percentage
// check: each recipe ingredient is available when some pantry
// ingredient's normalized form contains it or is contained by it (no
// variation-table lookup). MatchPercentage is relative to the recipe's
// ingredient count, the opposite convention from FindMatchingRecipes.
func (e *Engine) CalculateIngredientMatch(pantry, recipeIngredients []string) (models.IngredientMatchResult, error) {
	pantry = cleanNames(pantry)
	recipeIngredients = cleanNames(recipeIngredients)
	if len(pantry) == 0 {
		return models.IngredientMatchResult{}, &InputValidationError{Field: "pantry", Msg: "at least one ingredient is required"}
	}
	if len(recipeIngredients) == 0 {
		return models.IngredientMatchResult{}, &InputValidationError{Field: "recipeIngredients", Msg: "at least one ingredient is required"}
	}

	normalizedPantry := make([]string, len(pantry))
	for i, p := range pantry {
		normalizedPantry[i] = normalize.Normalize(p)
	}

	available := make([]string, 0, len(recipeIngredients))
	missing := make([]string, 0)
	for _, recipeIngredient := range recipeIngredients {
		nr := normalize.Normalize(recipeIngredient)
		found := false
		for _, np := range normalizedPantry {
			if np != "" && nr != "" && (strings.Contains(nr, np) || strings.Contains(np, nr)) {
				found = true
				break
			}
		}
		if found {
			available = append(available, recipeIngredient)
		} else {
			missing = append(missing, recipeIngredient)
		}
	}

	return models.IngredientMatchResult{
		MatchPercentage:      roundPercentage(len(available), len(recipeIngredients)),
		AvailableIngredients: available,
		MissingIngredients:   missing,
	}, nil
}

// FindRecipesByIngredient resolves an ingredient name to recipe ids via
// the secondary index: the exact normalized key first, then each
// generated variation in turn until something hits.
func (e *Engine) FindRecipesByIngredient(ctx context.Context, name string) ([]string, error) {
	key := normalize.Normalize(name)
	if key == "" {
		return nil, &InputValidationError{Field: "name", Msg: "ingredient name is required"}
	}

	ids, err := e.repo.RecipesByIngredientKey(ctx, key)
	if err != nil {
		return nil, &DataAccessError{Op: "ingredient index lookup", Err: err}
	}
	if len(ids) > 0 {
		return ids, nil
	}

	seen := make(map[string]bool)
	var union []string
	for _, variation := range normalize.GenerateVariations(name) {
		if variation == key {
			continue
		}
		ids, err := e.repo.RecipesByIngredientKey(ctx, variation)
		if err != nil {
			return nil, &DataAccessError{Op: "ingredient index lookup", Err: err}
		}
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				union = append(union, id)
			}
		}
		if len(union) > 0 {
			break
		}
	}
	return union, nil
}

// AnalyzeIngredientMatching is the diagnostic entry point: for one
// recipe, it scores every pantry ingredient against every recipe
// ingredient and returns all candidates, not just the best.
func (e *Engine) AnalyzeIngredientMatching(ctx context.Context, pantry []string, recipeID string) (*models.MatchAnalysis, error) {
	pantry = cleanNames(pantry)
	if len(pantry) == 0 {
		return nil, &InputValidationError{Field: "pantry", Msg: "at least one ingredient is required"}
	}

	recipe, err := e.repo.RecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, catalog.ErrRecipeNotFound) {
			return nil, err
		}
		return nil, &DataAccessError{Op: "fetch recipe", Err: err}
	}

	ingredients := recipe.IngredientNames()
	analysis := &models.MatchAnalysis{
		RecipeID:    recipe.ID,
		RecipeTitle: recipe.Title,
		Ingredients: make([]models.IngredientAnalysis, 0, len(pantry)),
	}

	for _, pantryIngredient := range pantry {
		entry := models.IngredientAnalysis{
			PantryIngredient: pantryIngredient,
			Normalized:       normalize.Normalize(pantryIngredient),
		}
		for _, candidate := range ingredients {
			if m, ok := e.enhanced.Score(pantryIngredient, candidate); ok {
				entry.Candidates = append(entry.Candidates, m)
			}
		}
		sort.SliceStable(entry.Candidates, func(i, j int) bool {
			return entry.Candidates[i].MatchScore > entry.Candidates[j].MatchScore
		})
		if len(entry.Candidates) > 0 {
			best := entry.Candidates[0]
			entry.Best = &best
		}
		analysis.Ingredients = append(analysis.Ingredients, entry)
	}

	return analysis, nil
}

// roundPercentage rounds 100*part/total to the nearest integer.
func roundPercentage(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

// cleanNames trims entries and drops empty ones.
func cleanNames(names []string) []string {
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name != "" {
			cleaned = append(cleaned, name)
		}
	}
	return cleaned
}
