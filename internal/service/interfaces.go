package service

import (
	"context"
	"errors"

	"github.com/pageza/dishcovery/backend/internal/model"
	"github.com/pageza/dishcovery/backend/internal/types"
)

var (
	// ErrRecipeNotFound is returned when neither the catalog nor the
	// client's generated recipes hold the requested id.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrInvalidRating is returned for scores outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// LLMServiceInterface generates text completions.
type LLMServiceInterface interface {
	Generate(ctx context.Context, prompt string, schema *Schema) (string, error)
}

// IVideoService finds cooking videos for a recipe.
type IVideoService interface {
	Search(ctx context.Context, title string) ([]model.Video, error)
}

// ISessionService issues and validates anonymous client sessions
type ISessionService interface {
	Issue() (*types.SessionResponse, error)
	ValidateToken(token string) (*types.SessionClaims, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	Generate(ctx context.Context, clientID string, ingredients []string, surprise bool) ([]model.Recipe, error)
	Get(ctx context.Context, clientID, id string) (*model.Recipe, error)
	ByCuisine(ctx context.Context, cuisine string) ([]model.Recipe, error)
	Search(ctx context.Context, query string) ([]model.Recipe, error)
	Substitutions(ctx context.Context, ingredient string) ([]string, error)
	Suggest(ctx context.Context, ingredients []string) (string, error)
	Cuisines(ctx context.Context) ([]model.Cuisine, error)
}

// IFavoritesService defines the interface for favorite operations
type IFavoritesService interface {
	List(ctx context.Context, clientID string) ([]model.Recipe, error)
	Toggle(ctx context.Context, clientID string, recipe model.Recipe) (bool, error)
	IsFavorite(ctx context.Context, clientID, recipeID string) (bool, error)
}

// IRatingService defines the interface for rating operations
type IRatingService interface {
	List(ctx context.Context, clientID string) ([]model.Rating, error)
	Save(ctx context.Context, clientID string, rating model.Rating) (*model.Rating, error)
	Get(ctx context.Context, clientID, recipeID string) (*model.Rating, error)
}

// ILeftoverService defines the interface for leftover operations
type ILeftoverService interface {
	Generate(ctx context.Context, clientID string, ingredients []string, customPrompt string) ([]model.LeftoverRecipe, error)
	Stats(ctx context.Context, clientID string) (*model.LeftoverStats, error)
	IncrementSaved(ctx context.Context, clientID string) (*model.LeftoverStats, error)
	Rate(ctx context.Context, clientID, recipeID string, score int) error
	Rating(ctx context.Context, clientID, recipeID string) (int, error)
}

func validScore(score int) bool {
	return score >= 1 && score <= 5
}
