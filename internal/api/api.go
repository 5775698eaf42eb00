package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dishcovery/backend/internal/middleware"
	"github.com/pageza/dishcovery/backend/internal/service"
	"github.com/pageza/dishcovery/backend/internal/types"
)

// Handlers groups every route handler of the v1 API.
type Handlers struct {
	Session   *SessionHandler
	Recipes   *RecipeHandler
	Favorites *FavoritesHandler
	Ratings   *RatingHandler
	Leftovers *LeftoverHandler
	Videos    *VideoHandler
	Events    *EventsHandler
}

// RouteLimits holds the rate limit middleware put in front of session
// creation and of every route that calls the language model.
type RouteLimits struct {
	Session  []gin.HandlerFunc
	Generate []gin.HandlerFunc
}

// RegisterRoutes registers all API routes. Everything except session
// creation needs a session token.
func RegisterRoutes(v1 *gin.RouterGroup, h Handlers, validator middleware.TokenValidator, limits RouteLimits) {
	v1.POST("/session", chain(limits.Session, h.Session.Create)...)

	protected := v1.Group("")
	protected.Use(middleware.SessionMiddleware(validator))

	h.Recipes.RegisterRoutes(protected, limits.Generate...)
	h.Favorites.RegisterRoutes(protected)
	h.Ratings.RegisterRoutes(protected)
	h.Leftovers.RegisterRoutes(protected, limits.Generate...)
	h.Videos.RegisterRoutes(protected)
	h.Events.RegisterRoutes(protected)
}

// chain copies middleware so appending the handler never aliases the
// caller's slice.
func chain(middleware []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	handlers := make([]gin.HandlerFunc, 0, len(middleware)+1)
	handlers = append(handlers, middleware...)
	return append(handlers, handler)
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, types.ErrorResponse{Error: message})
}

// respondServiceError maps service sentinels to status codes and logs
// anything else as an internal error.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		respondError(c, http.StatusNotFound, "Recipe not found")
	case errors.Is(err, service.ErrInvalidRating):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
