package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/internal/model"
	"github.com/pageza/dishcovery/backend/internal/parser"
	"github.com/pageza/dishcovery/backend/internal/store"
)

// LeftoverService turns leftovers into recipes and tracks saved meals.
type LeftoverService struct {
	llm        LLMServiceInterface
	store      store.Store
	parser     *parser.Parser
	structured bool
	now        func() time.Time
	logger     *zap.Logger
}

func NewLeftoverService(llm LLMServiceInterface, st store.Store, p *parser.Parser, structured bool, logger *zap.Logger) *LeftoverService {
	if p == nil {
		p = parser.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeftoverService{
		llm:        llm,
		store:      st,
		parser:     p,
		structured: structured,
		now:        time.Now,
		logger:     logger,
	}
}

// Generate returns up to three leftover recipes with the client's stored
// ratings applied. A model failure yields an empty list.
func (s *LeftoverService) Generate(ctx context.Context, clientID string, ingredients []string, customPrompt string) ([]model.LeftoverRecipe, error) {
	var schema *Schema
	if s.structured {
		schema = LeftoverSchema()
	}

	text, err := s.llm.Generate(ctx, LeftoverPrompt(ingredients, customPrompt), schema)
	if err != nil {
		s.logger.Warn("leftover generation failed",
			zap.String("client_id", clientID),
			zap.Error(err))
		return []model.LeftoverRecipe{}, nil
	}

	recipes := s.parser.LeftoversFromCompletion(text, ingredients)

	ratings, err := s.ratings(ctx, clientID)
	if err != nil {
		s.logger.Warn("failed to load leftover ratings", zap.Error(err))
		return recipes, nil
	}
	for i := range recipes {
		recipes[i].Rating = ratings[recipes[i].ID]
	}
	return recipes, nil
}

// WeekStart is Sunday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func (s *LeftoverService) statsKey(clientID string) string {
	return store.ClientKey(clientID, store.SlotLeftoverStats)
}

// Stats returns the saved-meal counters, resetting the weekly count when a
// new week has started.
func (s *LeftoverService) Stats(ctx context.Context, clientID string) (*model.LeftoverStats, error) {
	weekStart := WeekStart(s.now()).Format(time.RFC3339)
	key := s.statsKey(clientID)

	data, err := s.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		stats := &model.LeftoverStats{LastResetDate: weekStart}
		if err := store.SaveJSON(ctx, s.store, key, stats); err != nil {
			return nil, err
		}
		return stats, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read leftover stats: %w", err)
	}

	var stats model.LeftoverStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode leftover stats: %w", err)
	}
	if stats.LastResetDate != weekStart {
		stats.SavedMealsThisWeek = 0
		stats.LastResetDate = weekStart
		if err := store.SaveJSON(ctx, s.store, key, stats); err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

// IncrementSaved counts one more saved meal this week and overall.
func (s *LeftoverService) IncrementSaved(ctx context.Context, clientID string) (*model.LeftoverStats, error) {
	stats, err := s.Stats(ctx, clientID)
	if err != nil {
		return nil, err
	}
	stats.SavedMealsThisWeek++
	stats.TotalSavedMeals++
	if err := store.SaveJSON(ctx, s.store, s.statsKey(clientID), stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *LeftoverService) ratings(ctx context.Context, clientID string) (map[string]int, error) {
	return store.LoadJSON(ctx, s.store, store.ClientKey(clientID, store.SlotLeftoverRatings), map[string]int{})
}

// Rate stores a 1..5 score for a leftover recipe.
func (s *LeftoverService) Rate(ctx context.Context, clientID, recipeID string, score int) error {
	if !validScore(score) {
		return ErrInvalidRating
	}
	ratings, err := s.ratings(ctx, clientID)
	if err != nil {
		return err
	}
	if ratings == nil {
		ratings = map[string]int{}
	}
	ratings[recipeID] = score
	return store.SaveJSON(ctx, s.store, store.ClientKey(clientID, store.SlotLeftoverRatings), ratings)
}

// Rating returns 0 for unrated recipes.
func (s *LeftoverService) Rating(ctx context.Context, clientID, recipeID string) (int, error) {
	ratings, err := s.ratings(ctx, clientID)
	if err != nil {
		return 0, err
	}
	return ratings[recipeID], nil
}
