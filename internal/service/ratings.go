package service

import (
	"context"
	"time"

	"github.com/pageza/dishcovery/backend/internal/model"
	"github.com/pageza/dishcovery/backend/internal/store"
)

// RatingService keeps one rating per recipe for each client.
type RatingService struct {
	store store.Store
	now   func() time.Time
}

func NewRatingService(st store.Store) *RatingService {
	return &RatingService{store: st, now: time.Now}
}

func (s *RatingService) key(clientID string) string {
	return store.ClientKey(clientID, store.SlotRatings)
}

func (s *RatingService) List(ctx context.Context, clientID string) ([]model.Rating, error) {
	return store.LoadJSON(ctx, s.store, s.key(clientID), []model.Rating{})
}

// Save replaces any earlier rating for the same recipe. An empty date is
// stamped with the current time.
func (s *RatingService) Save(ctx context.Context, clientID string, rating model.Rating) (*model.Rating, error) {
	if !validScore(rating.Rating) {
		return nil, ErrInvalidRating
	}
	if rating.Date == "" {
		rating.Date = s.now().UTC().Format(time.RFC3339)
	}

	ratings, err := s.List(ctx, clientID)
	if err != nil {
		return nil, err
	}

	replaced := false
	for i := range ratings {
		if ratings[i].RecipeID == rating.RecipeID {
			ratings[i] = rating
			replaced = true
			break
		}
	}
	if !replaced {
		ratings = append(ratings, rating)
	}

	if err := store.SaveJSON(ctx, s.store, s.key(clientID), ratings); err != nil {
		return nil, err
	}
	return &rating, nil
}

// Get returns nil when the recipe has not been rated.
func (s *RatingService) Get(ctx context.Context, clientID, recipeID string) (*model.Rating, error) {
	ratings, err := s.List(ctx, clientID)
	if err != nil {
		return nil, err
	}
	for i := range ratings {
		if ratings[i].RecipeID == recipeID {
			return &ratings[i], nil
		}
	}
	return nil, nil
}
