package service

import (
	"context"

	"github.com/pageza/dishcovery/backend/internal/model"
	"github.com/pageza/dishcovery/backend/internal/store"
)

// FavoritesService keeps each client's favorite recipes.
type FavoritesService struct {
	store store.Store
}

func NewFavoritesService(st store.Store) *FavoritesService {
	return &FavoritesService{store: st}
}

func (s *FavoritesService) key(clientID string) string {
	return store.ClientKey(clientID, store.SlotFavorites)
}

// List returns favorites in the order they were added.
func (s *FavoritesService) List(ctx context.Context, clientID string) ([]model.Recipe, error) {
	return store.LoadJSON(ctx, s.store, s.key(clientID), []model.Recipe{})
}

// Toggle adds the recipe if absent, removes it otherwise, and reports
// whether it is now a favorite.
func (s *FavoritesService) Toggle(ctx context.Context, clientID string, recipe model.Recipe) (bool, error) {
	favorites, err := s.List(ctx, clientID)
	if err != nil {
		return false, err
	}

	for i := range favorites {
		if favorites[i].ID == recipe.ID {
			favorites = append(favorites[:i], favorites[i+1:]...)
			return false, store.SaveJSON(ctx, s.store, s.key(clientID), favorites)
		}
	}

	favorites = append(favorites, recipe)
	if err := store.SaveJSON(ctx, s.store, s.key(clientID), favorites); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FavoritesService) IsFavorite(ctx context.Context, clientID, recipeID string) (bool, error) {
	favorites, err := s.List(ctx, clientID)
	if err != nil {
		return false, err
	}
	for _, f := range favorites {
		if f.ID == recipeID {
			return true, nil
		}
	}
	return false, nil
}
