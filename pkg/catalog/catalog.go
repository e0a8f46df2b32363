// Package catalog owns the recipe catalog: CRUD over recipe records and
// the normalized-ingredient secondary index the match engine queries.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/korjavin/recipematch/pkg/logger"
	"github.com/korjavin/recipematch/pkg/models"
	"github.com/korjavin/recipematch/pkg/normalize"
	"github.com/korjavin/recipematch/pkg/storage"
)

const (
	recipePrefix = "recipe:"
	indexPrefix  = "ingredient-index:"
)

// ErrRecipeNotFound is returned when a recipe id does not exist.
var ErrRecipeNotFound = errors.New("recipe not found")

// RecipeRepository is the read interface the match engine depends on.
type RecipeRepository interface {
	// AllRecipes returns every recipe in the catalog.
	AllRecipes(ctx context.Context) ([]models.RecipeRecord, error)
	// RecipeByID returns one recipe, or ErrRecipeNotFound.
	RecipeByID(ctx context.Context, id string) (*models.RecipeRecord, error)
	// RecipeIngredients returns the unique ingredient names of one recipe.
	RecipeIngredients(ctx context.Context, id string) ([]string, error)
	// RecipesByIngredientKey returns the ids of recipes indexed under a
	// normalized ingredient key. A missing key yields an empty list.
	RecipesByIngredientKey(ctx context.Context, key string) ([]string, error)
}

// Service is the BadgerDB-backed catalog.
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new catalog service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("catalog"),
	}
}

// SaveRecipe stores a recipe and indexes it under the normalized key of
// every ingredient. An empty ID is derived from the title.
func (s *Service) SaveRecipe(recipe *models.RecipeRecord) error {
	if recipe.Title == "" {
		return fmt.Errorf("recipe title is required")
	}
	if len(recipe.Ingredients) == 0 {
		return fmt.Errorf("recipe %q has no ingredients", recipe.Title)
	}
	if recipe.ID == "" {
		recipe.ID = slugify(recipe.Title)
	}
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = time.Now()
	}

	if err := s.store.Set(recipePrefix+recipe.ID, recipe); err != nil {
		return fmt.Errorf("failed to save recipe %s: %w", recipe.ID, err)
	}

	for _, ing := range recipe.Ingredients {
		key := normalize.Normalize(ing.Name)
		if key == "" {
			continue
		}
		if err := s.addToIndex(key, recipe.ID); err != nil {
			return fmt.Errorf("failed to index recipe %s under %q: %w", recipe.ID, key, err)
		}
	}

	s.logger.Info("Saved recipe %s (%d ingredients)", recipe.ID, len(recipe.Ingredients))
	return nil
}

// DeleteRecipe removes a recipe and its index entries.
func (s *Service) DeleteRecipe(ctx context.Context, id string) error {
	recipe, err := s.RecipeByID(ctx, id)
	if err != nil {
		return err
	}

	for _, ing := range recipe.Ingredients {
		key := normalize.Normalize(ing.Name)
		if key == "" {
			continue
		}
		if err := s.removeFromIndex(key, id); err != nil {
			return fmt.Errorf("failed to unindex recipe %s from %q: %w", id, key, err)
		}
	}

	if err := s.store.Delete(recipePrefix + id); err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}

	s.logger.Info("Deleted recipe %s", id)
	return nil
}

// AllRecipes returns every recipe in the catalog.
func (s *Service) AllRecipes(ctx context.Context) ([]models.RecipeRecord, error) {
	var recipes []models.RecipeRecord
	err := s.store.Fold(recipePrefix, func(key string, data []byte) error {
		var recipe models.RecipeRecord
		if err := json.Unmarshal(data, &recipe); err != nil {
			// A corrupt record should not sink the whole catalog scan.
			s.logger.Error("Failed to decode %s: %v", key, err)
			return nil
		}
		recipes = append(recipes, recipe)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return recipes, nil
}

// RecipeByID returns one recipe, or ErrRecipeNotFound.
func (s *Service) RecipeByID(ctx context.Context, id string) (*models.RecipeRecord, error) {
	var recipe models.RecipeRecord
	err := s.store.Get(recipePrefix+id, &recipe)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrRecipeNotFound, id)
		}
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	return &recipe, nil
}

// RecipeIngredients returns the unique ingredient names of one recipe.
func (s *Service) RecipeIngredients(ctx context.Context, id string) ([]string, error) {
	recipe, err := s.RecipeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recipe.IngredientNames(), nil
}

// RecipesByIngredientKey returns the ids of recipes indexed under a
// normalized ingredient key.
func (s *Service) RecipesByIngredientKey(ctx context.Context, key string) ([]string, error) {
	var ids []string
	err := s.store.Get(indexPrefix+key, &ids)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read ingredient index %q: %w", key, err)
	}
	return ids, nil
}

// CountRecipes returns the number of recipes in the catalog.
func (s *Service) CountRecipes() (int, error) {
	keys, err := s.store.List(recipePrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return len(keys), nil
}

func (s *Service) addToIndex(key, recipeID string) error {
	ids, err := s.RecipesByIngredientKey(context.Background(), key)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == recipeID {
			return nil
		}
	}
	ids = append(ids, recipeID)
	sort.Strings(ids)
	return s.store.Set(indexPrefix+key, ids)
}

func (s *Service) removeFromIndex(key, recipeID string) error {
	ids, err := s.RecipesByIngredientKey(context.Background(), key)
	if err != nil {
		return err
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != recipeID {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		return s.store.Delete(indexPrefix + key)
	}
	return s.store.Set(indexPrefix+key, kept)
}

// slugify derives a stable recipe id from a title.
func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	return strings.Trim(slug, "-")
}
