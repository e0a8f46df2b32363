// Package stats tracks per-chat matching activity.
package stats

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/korjavin/recipematch/pkg/logger"
	"github.com/korjavin/recipematch/pkg/models"
	"github.com/korjavin/recipematch/pkg/normalize"
	"github.com/korjavin/recipematch/pkg/storage"
)

// Service provides statistics functionality
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new statistics service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("stats"),
	}
}

func statsKey(chatID int64) string {
	return fmt.Sprintf("stats:%d", chatID)
}

// GetStats retrieves the statistics for a chat, creating empty ones on
// first use.
func (s *Service) GetStats(chatID int64) (*models.SearchStats, error) {
	key := statsKey(chatID)

	var stats models.SearchStats
	err := s.store.Get(key, &stats)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			return nil, fmt.Errorf("failed to load stats: %w", err)
		}
		stats = models.SearchStats{
			ChatID:           chatID,
			IngredientCounts: make(map[string]int),
			RecipeHitCounts:  make(map[string]int),
		}
		if err := s.store.Set(key, stats); err != nil {
			return nil, fmt.Errorf("failed to create stats: %w", err)
		}
	}
	if stats.IngredientCounts == nil {
		stats.IngredientCounts = make(map[string]int)
	}
	if stats.RecipeHitCounts == nil {
		stats.RecipeHitCounts = make(map[string]int)
	}

	return &stats, nil
}

// RecordSearch updates the counters after a match search.
func (s *Service) RecordSearch(chatID int64, pantry []string, results []models.RecipeMatch) error {
	stats, err := s.GetStats(chatID)
	if err != nil {
		return err
	}

	stats.SearchCount++
	stats.LastSearchAt = time.Now()
	for _, name := range pantry {
		key := normalize.Normalize(name)
		if key != "" {
			stats.IngredientCounts[key]++
		}
	}
	for _, match := range results {
		stats.RecipeHitCounts[match.RecipeID]++
	}

	return s.store.Set(statsKey(chatID), stats)
}

// Count is a name with an occurrence counter.
type Count struct {
	Name  string
	Count int
}

// TopIngredients returns the n most-searched ingredient keys.
func (s *Service) TopIngredients(chatID int64, n int) ([]Count, error) {
	stats, err := s.GetStats(chatID)
	if err != nil {
		return nil, err
	}
	return topCounts(stats.IngredientCounts, n), nil
}

// TopRecipes returns the n most-returned recipe ids.
func (s *Service) TopRecipes(chatID int64, n int) ([]Count, error) {
	stats, err := s.GetStats(chatID)
	if err != nil {
		return nil, err
	}
	return topCounts(stats.RecipeHitCounts, n), nil
}

func topCounts(counts map[string]int, n int) []Count {
	all := make([]Count, 0, len(counts))
	for name, count := range counts {
		all = append(all, Count{Name: name, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Name < all[j].Name
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}
