package types

import (
	"github.com/pageza/dishcovery/backend/internal/model"
)

// GenerateRecipesRequest represents the request body for recipe generation
type GenerateRecipesRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1,dive,required"`
	Surprise    bool     `json:"surprise"`
}

// SuggestionRequest represents the request body for a quick dish idea
type SuggestionRequest struct {
	Ingredients []string `json:"ingredients" binding:"required,min=1,dive,required"`
}

// SuggestionResponse carries a 2-3 sentence dish idea.
type SuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}

// GenerateLeftoversRequest represents the request body for leftover ideas.
// Either ingredients or a free-form description is needed.
type GenerateLeftoversRequest struct {
	Ingredients  []string `json:"ingredients"`
	CustomPrompt string   `json:"customPrompt"`
}

// ToggleFavoriteRequest carries the full recipe so it can be listed later.
// The recipe id must be set.
type ToggleFavoriteRequest struct {
	Recipe model.Recipe `json:"recipe"`
}

// FavoriteStatus reports whether a recipe is a favorite.
type FavoriteStatus struct {
	RecipeID   string `json:"recipeId"`
	IsFavorite bool   `json:"isFavorite"`
}

// SaveRatingRequest represents the request body for rating a recipe
type SaveRatingRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback" binding:"max=2000"`
}

// LeftoverRatingRequest represents the request body for rating a leftover recipe
type LeftoverRatingRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// LeftoverRatingResponse reports a leftover recipe's score; 0 means unrated.
type LeftoverRatingResponse struct {
	RecipeID string `json:"recipeId"`
	Rating   int    `json:"rating"`
}

// SessionResponse is returned when a session is issued.
type SessionResponse struct {
	Token     string `json:"token"`
	ClientID  string `json:"clientId"`
	ExpiresAt int64  `json:"expiresAt"`
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
