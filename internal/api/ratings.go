package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dishcovery/backend/internal/middleware"
	"github.com/pageza/dishcovery/backend/internal/model"
	"github.com/pageza/dishcovery/backend/internal/service"
	"github.com/pageza/dishcovery/backend/internal/types"
)

type RatingHandler struct {
	ratings service.IRatingService
}

func NewRatingHandler(ratings service.IRatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	ratings := router.Group("/ratings")
	{
		ratings.GET("", h.List)
		ratings.PUT("/:recipeId", h.Save)
		ratings.GET("/:recipeId", h.Get)
	}
}

func (h *RatingHandler) List(c *gin.Context) {
	ratings, err := h.ratings.List(c.Request.Context(), middleware.ClientID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ratings)
}

func (h *RatingHandler) Save(c *gin.Context) {
	var req types.SaveRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, service.ErrInvalidRating.Error())
		return
	}

	saved, err := h.ratings.Save(c.Request.Context(), middleware.ClientID(c), model.Rating{
		RecipeID: c.Param("recipeId"),
		Rating:   req.Rating,
		Feedback: req.Feedback,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *RatingHandler) Get(c *gin.Context) {
	rating, err := h.ratings.Get(c.Request.Context(), middleware.ClientID(c), c.Param("recipeId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if rating == nil {
		respondError(c, http.StatusNotFound, "Rating not found")
		return
	}
	c.JSON(http.StatusOK, rating)
}
