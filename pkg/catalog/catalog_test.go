package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/korjavin/recipematch/pkg/models"
	"github.com/korjavin/recipematch/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Service {
	t.Helper()
	store, err := storage.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store)
}

func testRecipe() *models.RecipeRecord {
	return &models.RecipeRecord{
		Title:   "Chicken Stir Fry",
		Cuisine: "Asian",
		Ingredients: []models.RecipeIngredient{
			{Name: "chicken breast"},
			{Name: "bell peppers"},
			{Name: "garlic"},
		},
	}
}

func TestSaveAndGetRecipe(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	recipe := testRecipe()
	require.NoError(t, svc.SaveRecipe(recipe))
	assert.Equal(t, "chicken-stir-fry", recipe.ID, "id derived from title")
	assert.False(t, recipe.CreatedAt.IsZero())

	got, err := svc.RecipeByID(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chicken Stir Fry", got.Title)
	assert.Len(t, got.Ingredients, 3)
}

func TestRecipeByIDNotFound(t *testing.T) {
	svc := newTestCatalog(t)

	_, err := svc.RecipeByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRecipeIngredients(t *testing.T) {
	svc := newTestCatalog(t)
	require.NoError(t, svc.SaveRecipe(testRecipe()))

	names, err := svc.RecipeIngredients(context.Background(), "chicken-stir-fry")
	require.NoError(t, err)
	assert.Equal(t, []string{"chicken breast", "bell peppers", "garlic"}, names)
}

func TestIngredientIndex(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()
	require.NoError(t, svc.SaveRecipe(testRecipe()))

	// Indexed under the normalized keys of its ingredients.
	ids, err := svc.RecipesByIngredientKey(ctx, "chicken-breast")
	require.NoError(t, err)
	assert.Equal(t, []string{"chicken-stir-fry"}, ids)

	ids, err = svc.RecipesByIngredientKey(ctx, "garlic")
	require.NoError(t, err)
	assert.Equal(t, []string{"chicken-stir-fry"}, ids)

	// Unknown keys yield an empty result, not an error.
	ids, err = svc.RecipesByIngredientKey(ctx, "unicorn-meat")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSaveRecipeTwiceDoesNotDuplicateIndex(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, svc.SaveRecipe(testRecipe()))
	require.NoError(t, svc.SaveRecipe(testRecipe()))

	ids, err := svc.RecipesByIngredientKey(ctx, "garlic")
	require.NoError(t, err)
	assert.Equal(t, []string{"chicken-stir-fry"}, ids)
}

func TestDeleteRecipeUnindexes(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()
	require.NoError(t, svc.SaveRecipe(testRecipe()))

	require.NoError(t, svc.DeleteRecipe(ctx, "chicken-stir-fry"))

	_, err := svc.RecipeByID(ctx, "chicken-stir-fry")
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	ids, err := svc.RecipesByIngredientKey(ctx, "chicken-breast")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSaveRecipeValidation(t *testing.T) {
	svc := newTestCatalog(t)

	err := svc.SaveRecipe(&models.RecipeRecord{Ingredients: []models.RecipeIngredient{{Name: "salt"}}})
	assert.Error(t, err, "title required")

	err = svc.SaveRecipe(&models.RecipeRecord{Title: "Empty"})
	assert.Error(t, err, "ingredients required")
}

func TestAllRecipes(t *testing.T) {
	svc := newTestCatalog(t)
	require.NoError(t, svc.SaveRecipe(testRecipe()))
	require.NoError(t, svc.SaveRecipe(&models.RecipeRecord{
		Title:       "Greek Salad",
		Ingredients: []models.RecipeIngredient{{Name: "feta"}, {Name: "tomatoes"}},
	}))

	recipes, err := svc.AllRecipes(context.Background())
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
}

// failingProvider always errors, forcing the fallback recipes.
type failingProvider struct{}

func (failingProvider) GetRecipeInfo(ctx context.Context, dishName, cuisine string) ([]string, []string, error) {
	return nil, nil, errors.New("llm unavailable")
}

func TestEnsureSeededWithoutProvider(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureSeeded(ctx, nil))

	count, err := svc.CountRecipes()
	require.NoError(t, err)
	assert.Equal(t, len(seedDishes), count)

	// Seeding is idempotent: a populated catalog is left alone.
	require.NoError(t, svc.EnsureSeeded(ctx, nil))
	count, err = svc.CountRecipes()
	require.NoError(t, err)
	assert.Equal(t, len(seedDishes), count)
}

func TestEnsureSeededProviderFailureFallsBack(t *testing.T) {
	svc := newTestCatalog(t)

	require.NoError(t, svc.EnsureSeeded(context.Background(), failingProvider{}))

	count, err := svc.CountRecipes()
	require.NoError(t, err)
	assert.Equal(t, len(seedDishes), count)
}

// fixedProvider returns a canned ingredient list.
type fixedProvider struct{}

func (fixedProvider) GetRecipeInfo(ctx context.Context, dishName, cuisine string) ([]string, []string, error) {
	return []string{"water", "salt"}, []string{"boil the water", "add the salt"}, nil
}

func TestEnsureSeededUsesProvider(t *testing.T) {
	svc := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureSeeded(ctx, fixedProvider{}))

	recipe, err := svc.RecipeByID(ctx, "chicken-stir-fry")
	require.NoError(t, err)
	assert.Equal(t, []string{"water", "salt"}, recipe.IngredientNames())
}
