package messages

import (
	"fmt"
	"strings"

	"github.com/korjavin/recipematch/pkg/logger"
	"github.com/korjavin/recipematch/pkg/models"
	"github.com/korjavin/recipematch/pkg/openai"
)

// Service provides message generation functionality. The OpenAI client
// is optional; without it every message falls back to the static copy.
type Service struct {
	openaiClient *openai.Client
	logger       *logger.Logger
}

// New creates a new message service
func New(openaiClient *openai.Client) *Service {
	return &Service{
		openaiClient: openaiClient,
		logger:       logger.New("messages"),
	}
}

func (s *Service) generate(intent string, contextData map[string]interface{}, fallback string) string {
	if s.openaiClient == nil {
		return fallback
	}
	msg, err := s.openaiClient.GenerateChatMessage(intent, contextData)
	if err != nil {
		s.logger.Error("Failed to generate %s message: %v", intent, err)
		return fallback
	}
	return msg
}

// GenerateWelcomeMessage generates a welcome message
func (s *Service) GenerateWelcomeMessage() string {
	return s.generate("welcome", map[string]interface{}{
		"purpose": "Match recipes to the ingredients people already have",
	}, "👋 Welcome to RecipeMatch! Tell me what's in your pantry with /add and I'll find recipes you can cook with /match.")
}

// GenerateEmptyPantryMessage generates a message for an empty pantry
func (s *Service) GenerateEmptyPantryMessage() string {
	return s.generate("empty_pantry", map[string]interface{}{},
		"Your pantry is empty! Add ingredients with /add, e.g. /add chicken breast, garlic, rice.")
}

// GeneratePantryContentsMessage generates a message with pantry contents
func (s *Service) GeneratePantryContentsMessage(ingredients []string) string {
	return s.generate("pantry_contents", map[string]interface{}{
		"ingredients": ingredients,
	}, formatPantry(ingredients))
}

// GenerateErrorMessage generates an error message
func (s *Service) GenerateErrorMessage(context string) string {
	return s.generate("error", map[string]interface{}{
		"context": context,
	}, "😢 Sorry, something went wrong. Please try again later.")
}

// GenerateSearchFailedMessage signals that the search itself failed,
// which is not the same as finding no matches.
func (s *Service) GenerateSearchFailedMessage() string {
	return s.generate("search_failed", map[string]interface{}{},
		"⚠️ The recipe search failed, so I can't tell you what matches right now. Please try again in a moment.")
}

// GenerateNoMatchesMessage is for searches that ran fine but found
// nothing above the threshold.
func (s *Service) GenerateNoMatchesMessage() string {
	return s.generate("no_matches", map[string]interface{}{},
		"🤷 No recipes matched your pantry well enough. Try adding a few more ingredients with /add.")
}

// FormatMatchResults renders ranked matches for chat. Static by design:
// scores and ingredient lists must come out exactly as computed.
func (s *Service) FormatMatchResults(matches []models.RecipeMatch) string {
	var b strings.Builder
	b.WriteString("🍽️ Here's what you can cook:\n\n")
	for i, match := range matches {
		fmt.Fprintf(&b, "%d. %s — %d%% match\n", i+1, match.Title, match.MatchPercentage)
		if match.CookingTime > 0 {
			fmt.Fprintf(&b, "   ⏱ %d min", match.CookingTime)
			if match.Difficulty != "" {
				fmt.Fprintf(&b, ", %s", match.Difficulty)
			}
			b.WriteString("\n")
		}
		if len(match.MissingIngredients) > 0 {
			fmt.Fprintf(&b, "   🛒 missing: %s\n", strings.Join(match.MissingIngredients, ", "))
		}
	}
	return b.String()
}

// FormatRecipe renders a single recipe card for chat.
func (s *Service) FormatRecipe(recipe *models.RecipeRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📖 %s\n", recipe.Title)
	if recipe.CookingTime > 0 {
		fmt.Fprintf(&b, "⏱ %d min", recipe.CookingTime)
		if recipe.Difficulty != "" {
			fmt.Fprintf(&b, ", %s", recipe.Difficulty)
		}
		if recipe.Servings > 0 {
			fmt.Fprintf(&b, ", serves %d", recipe.Servings)
		}
		b.WriteString("\n")
	}
	b.WriteString("\nIngredients:\n")
	for _, ing := range recipe.Ingredients {
		b.WriteString("• " + ing.Name)
		if ing.Quantity != "" {
			b.WriteString(" — " + ing.Quantity)
			if ing.Unit != "" {
				b.WriteString(" " + ing.Unit)
			}
		}
		b.WriteString("\n")
	}
	if len(recipe.Instructions) > 0 {
		b.WriteString("\nInstructions:\n")
		for i, step := range recipe.Instructions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
	}
	return b.String()
}

// FormatAnalysis renders the per-ingredient diagnostic for chat.
func (s *Service) FormatAnalysis(analysis *models.MatchAnalysis) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔬 Match analysis for %s:\n\n", analysis.RecipeTitle)
	for _, entry := range analysis.Ingredients {
		fmt.Fprintf(&b, "• %s (key: %s)\n", entry.PantryIngredient, entry.Normalized)
		if len(entry.Candidates) == 0 {
			b.WriteString("   no candidates matched\n")
			continue
		}
		for _, c := range entry.Candidates {
			marker := " "
			if entry.Best != nil && c == *entry.Best {
				marker = "★"
			}
			fmt.Fprintf(&b, "  %s %s: %d\n", marker, c.RecipeIngredient, c.MatchScore)
		}
	}
	return b.String()
}

func formatPantry(ingredients []string) string {
	if len(ingredients) == 0 {
		return "Your pantry is empty!"
	}
	var b strings.Builder
	b.WriteString("🧺 Here's what's in your pantry:\n\n")
	for _, ingredient := range ingredients {
		b.WriteString("• " + ingredient + "\n")
	}
	return b.String()
}
