package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dishcovery/backend/internal/middleware"
	"github.com/pageza/dishcovery/backend/internal/service"
	"github.com/pageza/dishcovery/backend/internal/types"
)

type FavoritesHandler struct {
	favorites service.IFavoritesService
}

func NewFavoritesHandler(favorites service.IFavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

func (h *FavoritesHandler) RegisterRoutes(router *gin.RouterGroup) {
	favorites := router.Group("/favorites")
	{
		favorites.GET("", h.List)
		favorites.POST("/toggle", h.Toggle)
		favorites.GET("/:id", h.Status)
	}
}

func (h *FavoritesHandler) List(c *gin.Context) {
	favorites, err := h.favorites.List(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, favorites)
}

func (h *FavoritesHandler) Toggle(c *gin.Context) {
	var req types.ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Recipe.ID == "" {
		respondError(c, http.StatusBadRequest, "a recipe with an id is required")
		return
	}

	isFavorite, err := h.favorites.Toggle(c.Request.Context(), middleware.ClientID(c), req.Recipe)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.FavoriteStatus{RecipeID: req.Recipe.ID, IsFavorite: isFavorite})
}

func (h *FavoritesHandler) Status(c *gin.Context) {
	id := c.Param("id")
	isFavorite, err := h.favorites.IsFavorite(c.Request.Context(), middleware.ClientID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.FavoriteStatus{RecipeID: id, IsFavorite: isFavorite})
}
