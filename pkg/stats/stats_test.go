package stats

import (
	"testing"

	"github.com/korjavin/recipematch/pkg/models"
	"github.com/korjavin/recipematch/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := storage.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return New(store)
}

func TestRecordSearch(t *testing.T) {
	svc := newTestService(t)

	results := []models.RecipeMatch{
		{RecipeID: "stir-fry", MatchPercentage: 100},
		{RecipeID: "salad", MatchPercentage: 60},
	}
	require.NoError(t, svc.RecordSearch(1, []string{"Chicken Breast", "garlic"}, results))
	require.NoError(t, svc.RecordSearch(1, []string{"garlic"}, results[:1]))

	stats, err := svc.GetStats(1)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.SearchCount)
	assert.Equal(t, 2, stats.IngredientCounts["garlic"])
	assert.Equal(t, 1, stats.IngredientCounts["chicken-breast"], "counts keyed by normalized form")
	assert.Equal(t, 2, stats.RecipeHitCounts["stir-fry"])
	assert.Equal(t, 1, stats.RecipeHitCounts["salad"])
	assert.False(t, stats.LastSearchAt.IsZero())
}

func TestTopIngredients(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.RecordSearch(1, []string{"garlic", "rice"}, nil))
	require.NoError(t, svc.RecordSearch(1, []string{"garlic"}, nil))

	top, err := svc.TopIngredients(1, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, Count{Name: "garlic", Count: 2}, top[0])
}

func TestTopRecipes(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.RecordSearch(1, []string{"garlic"}, []models.RecipeMatch{
		{RecipeID: "a"}, {RecipeID: "b"},
	}))
	require.NoError(t, svc.RecordSearch(1, []string{"garlic"}, []models.RecipeMatch{
		{RecipeID: "b"},
	}))

	top, err := svc.TopRecipes(1, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].Name)
	assert.Equal(t, 2, top[0].Count)
}

func TestStatsIsolatedPerChat(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.RecordSearch(1, []string{"garlic"}, nil))

	stats, err := svc.GetStats(2)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.SearchCount)
}
