package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"  ", ""},
		{"tomato", "tomato"},
		{"Tomatoes", "tomato"},
		{"Fresh Diced Tomatoes", "tomato"},
		{"Fresh Diced Onions", "onion"},
		{"Chicken Breast", "chicken-breast"},
		{"chicken_breast", "chicken-breast"},
		{"free-range chicken", "chicken"},
		{"butter (unsalted)", "butter"},
		{"bell pepper (red)", "bell-pepper"},
		// Only a trailing parenthetical is dropped; one in the middle of
		// the name must not swallow the words after it.
		{"tomato (diced) sauce", "tomato-(diced)-sauce"},
		{"cherries", "cherry"},
		{"apples", "apple"},
		{"dishes", "dish"},
		{"bell peppers", "bell-pepper"},
		{"ground beef", "beef"},
		{"garlic, minced", "garlic"},
		{"whole milk", "milk"},
		// The de-pluralizer is deliberately naive.
		{"molasses", "molass"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.raw), "Normalize(%q)", tt.raw)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Fresh Diced Tomatoes",
		"Chicken Breast",
		"bell peppers",
		"butter (unsalted)",
		"cherries",
		"soy sauce",
		"olive oil",
		"",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		assert.Equal(t, once, Normalize(once), "Normalize not idempotent for %q", raw)
	}
}

func TestGenerateVariationsContainsKey(t *testing.T) {
	inputs := []string{"tomato", "Chicken Breast", "bell peppers", "soy sauce", "cherries"}
	for _, raw := range inputs {
		key := Normalize(raw)
		assert.Contains(t, GenerateVariations(raw), key, "variations of %q must contain the normalized key", raw)
	}
}

func TestGenerateVariationsForms(t *testing.T) {
	vars := GenerateVariations("Chicken Breast")
	assert.Contains(t, vars, "chicken-breast")
	assert.Contains(t, vars, "chickenbreast")
	assert.Contains(t, vars, "chicken breast")
	assert.Contains(t, vars, "chicken-breasts")
}

func TestGenerateVariationsPluralOfY(t *testing.T) {
	vars := GenerateVariations("cherry")
	assert.Contains(t, vars, "cherry")
	assert.Contains(t, vars, "cherries")
}

func TestGenerateVariationsAlternativesExact(t *testing.T) {
	vars := GenerateVariations("tomato")
	assert.Contains(t, vars, "cherry-tomato")
	assert.Contains(t, vars, "plum-tomato")
}

func TestGenerateVariationsAlternativesSubstringFallback(t *testing.T) {
	// "chicken-breast" is not a table key; the fallback unions the
	// alternatives of the containing key "chicken".
	vars := GenerateVariations("chicken breast")
	assert.Contains(t, vars, "chicken-thigh")
	assert.Contains(t, vars, "chicken-wing")
}

func TestGenerateVariationsDeterministic(t *testing.T) {
	first := GenerateVariations("chicken breast")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, GenerateVariations("chicken breast"))
	}
}

func TestGenerateVariationsNoDuplicates(t *testing.T) {
	vars := GenerateVariations("Fresh Tomatoes")
	seen := make(map[string]bool)
	for _, v := range vars {
		assert.False(t, seen[v], "duplicate variation %q", v)
		seen[v] = true
	}
}

func TestNewNormalizedIngredient(t *testing.T) {
	ni := NewNormalizedIngredient("Fresh Diced Tomatoes")
	require.Equal(t, "Fresh Diced Tomatoes", ni.Original)
	assert.Equal(t, Normalize("Fresh Diced Tomatoes"), ni.Normalized)
	assert.Contains(t, ni.Variations, ni.Normalized)
}

func TestGenerateVariationsEmpty(t *testing.T) {
	assert.Empty(t, GenerateVariations(""))
}
