package telegram

import (
	"strings"
	"testing"

	"github.com/korjavin/recipematch/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func matchFixture(ids ...string) []models.RecipeMatch {
	matches := make([]models.RecipeMatch, 0, len(ids))
	for _, id := range ids {
		matches = append(matches, models.RecipeMatch{RecipeID: id, Title: id})
	}
	return matches
}

func TestMatchKeyboard(t *testing.T) {
	keyboard := MatchKeyboard(matchFixture("stir-fry", "toast"))
	require.Len(t, keyboard.InlineKeyboard, 2)

	row := keyboard.InlineKeyboard[0]
	require.Len(t, row, 2)

	require.NotNil(t, row[0].CallbackData)
	assert.Equal(t, CallbackRecipePrefix+"stir-fry", *row[0].CallbackData)
	assert.Contains(t, row[0].Text, "stir-fry")

	require.NotNil(t, row[1].CallbackData)
	assert.Equal(t, CallbackAnalyzePrefix+"stir-fry", *row[1].CallbackData)
}

func TestMatchKeyboardCapsRows(t *testing.T) {
	keyboard := MatchKeyboard(matchFixture("a", "b", "c", "d", "e", "f", "g"))
	assert.Len(t, keyboard.InlineKeyboard, matchKeyboardRows)
}

func TestMatchKeyboardPrefixesAreDistinct(t *testing.T) {
	// The dispatcher routes callbacks by prefix, so neither prefix may
	// be a prefix of the other.
	assert.False(t, strings.HasPrefix(CallbackRecipePrefix, CallbackAnalyzePrefix))
	assert.False(t, strings.HasPrefix(CallbackAnalyzePrefix, CallbackRecipePrefix))
}
