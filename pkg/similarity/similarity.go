// Package similarity scores how well two ingredient names refer to the
// same foodstuff. Two independently tuned scoring ladders exist: the
// legacy one used by the synchronous percentage check and the enhanced
// one used by the recipe match engine. They are kept as separate
// strategies because callers depend on their distinct numeric behavior.
package similarity

import (
	"strings"

	"github.com/korjavin/recipematch/pkg/models"
	"github.com/korjavin/recipematch/pkg/normalize"
)

// Strategy scores a pantry ingredient against a candidate recipe
// ingredient. ok is false when no rule fires at all.
type Strategy interface {
	Name() string
	Score(userIngredient, candidate string) (match models.IngredientMatch, ok bool)
}

// AreSimilar reports whether two ingredient names plausibly refer to
// the same thing: equal normalized forms, substring containment either
// way, or intersecting variation sets.
func AreSimilar(a, b string) bool {
	na := normalize.Normalize(a)
	nb := normalize.Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return sharedVariations(a, b) > 0
}

// sharedVariations counts the variations the two ingredients have in
// common.
func sharedVariations(a, b string) int {
	varsA := normalize.GenerateVariations(a)
	varsB := normalize.GenerateVariations(b)
	set := make(map[string]bool, len(varsA))
	for _, v := range varsA {
		set[v] = true
	}
	count := 0
	for _, v := range varsB {
		if set[v] {
			count++
		}
	}
	return count
}

// EnhancedStrategy is the ladder used by the match engine:
// exact 100, candidate-contains-user 90, user-contains-candidate 85,
// shared variations 70+5n (uncapped), AreSimilar 60.
type EnhancedStrategy struct{}

func (EnhancedStrategy) Name() string { return "enhanced" }

func (EnhancedStrategy) Score(userIngredient, candidate string) (models.IngredientMatch, bool) {
	nu := normalize.Normalize(userIngredient)
	nc := normalize.Normalize(candidate)
	if nu == "" || nc == "" {
		return models.IngredientMatch{}, false
	}

	m := models.IngredientMatch{
		PantryIngredient: userIngredient,
		RecipeIngredient: candidate,
	}

	switch {
	case nu == nc:
		m.MatchScore = 100
		m.IsExactMatch = true
	case strings.Contains(nc, nu):
		m.MatchScore = 90
	case strings.Contains(nu, nc):
		m.MatchScore = 85
	default:
		if shared := sharedVariations(userIngredient, candidate); shared > 0 {
			// Deliberately uncapped: two or more shared variations
			// outscore the one-way containment tier.
			m.MatchScore = 70 + 5*shared
		} else if AreSimilar(userIngredient, candidate) {
			m.MatchScore = 60
		} else {
			return models.IngredientMatch{}, false
		}
	}

	return m, true
}

// LegacyStrategy is the older ladder kept for the simple matching
// paths: exact 100, candidate-contains-user 80, user-contains-candidate
// 70, shared variations 60+10n.
type LegacyStrategy struct{}

func (LegacyStrategy) Name() string { return "legacy" }

func (LegacyStrategy) Score(userIngredient, candidate string) (models.IngredientMatch, bool) {
	nu := normalize.Normalize(userIngredient)
	nc := normalize.Normalize(candidate)
	if nu == "" || nc == "" {
		return models.IngredientMatch{}, false
	}

	m := models.IngredientMatch{
		PantryIngredient: userIngredient,
		RecipeIngredient: candidate,
	}

	switch {
	case nu == nc:
		m.MatchScore = 100
		m.IsExactMatch = true
	case strings.Contains(nc, nu):
		m.MatchScore = 80
	case strings.Contains(nu, nc):
		m.MatchScore = 70
	default:
		if shared := sharedVariations(userIngredient, candidate); shared > 0 {
			m.MatchScore = 60 + 10*shared
		} else {
			return models.IngredientMatch{}, false
		}
	}

	return m, true
}

// FindBestMatch scans candidates with the given strategy and returns
// the highest-scoring match, ties broken by iteration order. Returns
// nil when no candidate matches at all.
func FindBestMatch(strategy Strategy, target string, candidates []string) *models.IngredientMatch {
	var best *models.IngredientMatch
	for _, candidate := range candidates {
		m, ok := strategy.Score(target, candidate)
		if !ok {
			continue
		}
		if best == nil || m.MatchScore > best.MatchScore {
			matched := m
			best = &matched
		}
	}
	return best
}
