package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dishcovery/backend/internal/middleware"
	"github.com/pageza/dishcovery/backend/internal/service"
	"github.com/pageza/dishcovery/backend/internal/types"
)

type LeftoverHandler struct {
	leftovers service.ILeftoverService
}

func NewLeftoverHandler(leftovers service.ILeftoverService) *LeftoverHandler {
	return &LeftoverHandler{leftovers: leftovers}
}

func (h *LeftoverHandler) RegisterRoutes(router *gin.RouterGroup, generateLimits ...gin.HandlerFunc) {
	leftovers := router.Group("/leftovers")
	{
		leftovers.POST("/generate", chain(generateLimits, h.Generate)...)
		leftovers.GET("/stats", h.Stats)
		leftovers.POST("/stats/saved", h.IncrementSaved)
		leftovers.GET("/:id/rating", h.Rating)
		leftovers.PUT("/:id/rating", h.Rate)
	}
}

// Generate handles POST /leftovers/generate. Either ingredients or a
// custom prompt is required.
func (h *LeftoverHandler) Generate(c *gin.Context) {
	var req types.GenerateLeftoversRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ingredients := trimAll(req.Ingredients)
	if len(ingredients) == 0 && strings.TrimSpace(req.CustomPrompt) == "" {
		respondError(c, http.StatusBadRequest, "ingredients or customPrompt is required")
		return
	}

	recipes, err := h.leftovers.Generate(c.Request.Context(), middleware.ClientID(c), ingredients, req.CustomPrompt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *LeftoverHandler) Stats(c *gin.Context) {
	stats, err := h.leftovers.Stats(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *LeftoverHandler) IncrementSaved(c *gin.Context) {
	stats, err := h.leftovers.IncrementSaved(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *LeftoverHandler) Rate(c *gin.Context) {
	var req types.LeftoverRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, service.ErrInvalidRating.Error())
		return
	}

	id := c.Param("id")
	if err := h.leftovers.Rate(c.Request.Context(), middleware.ClientID(c), id, req.Rating); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.LeftoverRatingResponse{RecipeID: id, Rating: req.Rating})
}

func (h *LeftoverHandler) Rating(c *gin.Context) {
	id := c.Param("id")
	rating, err := h.leftovers.Rating(c.Request.Context(), middleware.ClientID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.LeftoverRatingResponse{RecipeID: id, Rating: rating})
}
