package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreSimilar(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"chicken", "chicken breast", true},
		{"chicken breast", "chicken", true},
		{"Tomatoes", "tomato", true},
		{"salt", "sugar", false},
		{"unicorn meat", "salt", false},
		{"", "salt", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AreSimilar(tt.a, tt.b), "AreSimilar(%q, %q)", tt.a, tt.b)
	}
}

func TestEnhancedExactMatch(t *testing.T) {
	m, ok := EnhancedStrategy{}.Score("Fresh Tomatoes", "tomato")
	require.True(t, ok)
	assert.Equal(t, 100, m.MatchScore)
	assert.True(t, m.IsExactMatch)
	assert.Equal(t, "Fresh Tomatoes", m.PantryIngredient)
	assert.Equal(t, "tomato", m.RecipeIngredient)
}

func TestEnhancedContainmentTiers(t *testing.T) {
	// Candidate contains the user ingredient.
	m, ok := EnhancedStrategy{}.Score("chicken", "chicken breast")
	require.True(t, ok)
	assert.Equal(t, 90, m.MatchScore)
	assert.False(t, m.IsExactMatch)

	// User ingredient contains the candidate.
	m, ok = EnhancedStrategy{}.Score("chicken breast", "chicken")
	require.True(t, ok)
	assert.Equal(t, 85, m.MatchScore)
}

func TestEnhancedVariationTierUncapped(t *testing.T) {
	// chicken-breast and chicken-thigh do not contain each other but
	// share several variations through the alternatives table, so the
	// 70+5n tier overtakes the 85 containment tier. That crossover is
	// intentional.
	m, ok := EnhancedStrategy{}.Score("chicken breast", "chicken thigh")
	require.True(t, ok)
	assert.False(t, m.IsExactMatch)
	assert.Greater(t, m.MatchScore, 85)
}

func TestEnhancedNoMatch(t *testing.T) {
	_, ok := EnhancedStrategy{}.Score("salt", "sugar")
	assert.False(t, ok)

	_, ok = EnhancedStrategy{}.Score("", "sugar")
	assert.False(t, ok)
}

func TestLegacyLadder(t *testing.T) {
	m, ok := LegacyStrategy{}.Score("tomato", "Tomatoes")
	require.True(t, ok)
	assert.Equal(t, 100, m.MatchScore)
	assert.True(t, m.IsExactMatch)

	m, ok = LegacyStrategy{}.Score("chicken", "chicken breast")
	require.True(t, ok)
	assert.Equal(t, 80, m.MatchScore)

	m, ok = LegacyStrategy{}.Score("chicken breast", "chicken")
	require.True(t, ok)
	assert.Equal(t, 70, m.MatchScore)

	_, ok = LegacyStrategy{}.Score("salt", "sugar")
	assert.False(t, ok)
}

func TestLaddersDiffer(t *testing.T) {
	enhanced, ok := EnhancedStrategy{}.Score("chicken", "chicken breast")
	require.True(t, ok)
	legacy, ok := LegacyStrategy{}.Score("chicken", "chicken breast")
	require.True(t, ok)
	assert.NotEqual(t, enhanced.MatchScore, legacy.MatchScore,
		"the two ladders must keep their distinct numeric behavior")
}

func TestFindBestMatch(t *testing.T) {
	candidates := []string{"pasta", "chicken breast", "chicken", "garlic"}

	best := FindBestMatch(EnhancedStrategy{}, "chicken", candidates)
	require.NotNil(t, best)
	assert.Equal(t, "chicken", best.RecipeIngredient)
	assert.Equal(t, 100, best.MatchScore)
}

func TestFindBestMatchTieBreak(t *testing.T) {
	// Both candidates score 90; the first encountered wins.
	best := FindBestMatch(EnhancedStrategy{}, "chicken", []string{"chicken breast", "chicken thigh"})
	require.NotNil(t, best)
	assert.Equal(t, "chicken breast", best.RecipeIngredient)
}

func TestFindBestMatchNone(t *testing.T) {
	assert.Nil(t, FindBestMatch(EnhancedStrategy{}, "unicorn meat", []string{"salt", "sugar"}))
	assert.Nil(t, FindBestMatch(EnhancedStrategy{}, "chicken", nil))
}
