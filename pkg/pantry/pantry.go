// Package pantry manages the per-chat list of available ingredients.
package pantry

import (
	"errors"
	"fmt"
	"time"

	"github.com/korjavin/recipematch/pkg/logger"
	"github.com/korjavin/recipematch/pkg/models"
	"github.com/korjavin/recipematch/pkg/storage"
)

// Service provides pantry management functionality
type Service struct {
	store  *storage.Store
	logger *logger.Logger
}

// New creates a new pantry service
func New(store *storage.Store) *Service {
	return &Service{
		store:  store,
		logger: logger.New("pantry"),
	}
}

func pantryKey(chatID int64) string {
	return fmt.Sprintf("pantry:%d", chatID)
}

// GetPantry retrieves the pantry for a chat, creating an empty one on
// first use.
func (s *Service) GetPantry(chatID int64) (*models.Pantry, error) {
	key := pantryKey(chatID)

	var pantry models.Pantry
	err := s.store.Get(key, &pantry)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			return nil, fmt.Errorf("failed to load pantry: %w", err)
		}
		pantry = models.Pantry{
			ID:          key,
			ChatID:      chatID,
			Ingredients: make(map[string]models.PantryIngredient),
			LastUpdated: time.Now(),
		}
		if err := s.store.Set(key, pantry); err != nil {
			return nil, fmt.Errorf("failed to create pantry: %w", err)
		}
	}
	if pantry.Ingredients == nil {
		pantry.Ingredients = make(map[string]models.PantryIngredient)
	}

	return &pantry, nil
}

// AddIngredient adds an ingredient to the pantry
func (s *Service) AddIngredient(chatID int64, name, quantity, unit string) error {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return err
	}

	pantry.Ingredients[name] = models.PantryIngredient{
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
		AddedAt:  time.Now(),
	}
	pantry.LastUpdated = time.Now()

	return s.store.Set(pantry.ID, pantry)
}

// AddIngredients adds multiple ingredients at once
func (s *Service) AddIngredients(chatID int64, names []string) error {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, name := range names {
		if name == "" {
			continue
		}
		pantry.Ingredients[name] = models.PantryIngredient{
			Name:    name,
			AddedAt: now,
		}
	}
	pantry.LastUpdated = now

	return s.store.Set(pantry.ID, pantry)
}

// RemoveIngredient removes an ingredient from the pantry
func (s *Service) RemoveIngredient(chatID int64, name string) error {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return err
	}

	delete(pantry.Ingredients, name)
	pantry.LastUpdated = time.Now()

	return s.store.Set(pantry.ID, pantry)
}

// ListIngredients returns all ingredients in the pantry
func (s *Service) ListIngredients(chatID int64) ([]models.PantryIngredient, error) {
	pantry, err := s.GetPantry(chatID)
	if err != nil {
		return nil, err
	}

	ingredients := make([]models.PantryIngredient, 0, len(pantry.Ingredients))
	for _, ingredient := range pantry.Ingredients {
		ingredients = append(ingredients, ingredient)
	}

	return ingredients, nil
}

// Names returns just the ingredient names, the shape the match engine
// consumes.
func (s *Service) Names(chatID int64) ([]string, error) {
	ingredients, err := s.ListIngredients(chatID)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		names = append(names, ingredient.Name)
	}
	return names, nil
}

// ResetPantry empties the pantry for a chat
func (s *Service) ResetPantry(chatID int64) error {
	key := pantryKey(chatID)

	pantry := models.Pantry{
		ID:          key,
		ChatID:      chatID,
		Ingredients: make(map[string]models.PantryIngredient),
		LastUpdated: time.Now(),
	}

	return s.store.Set(key, pantry)
}

// ChatIDs returns the ids of every chat that has a pantry.
func (s *Service) ChatIDs() ([]int64, error) {
	keys, err := s.store.List("pantry:")
	if err != nil {
		return nil, fmt.Errorf("failed to list pantries: %w", err)
	}

	ids := make([]int64, 0, len(keys))
	for _, key := range keys {
		var chatID int64
		if _, err := fmt.Sscanf(key, "pantry:%d", &chatID); err == nil {
			ids = append(ids, chatID)
		}
	}
	return ids, nil
}
