package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dishcovery/backend/internal/service"
)

type VideoHandler struct {
	videos service.IVideoService
}

func NewVideoHandler(videos service.IVideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

func (h *VideoHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/videos", h.Search)
}

// Search handles GET /videos?q=.
func (h *VideoHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondError(c, http.StatusBadRequest, "q is required")
		return
	}

	videos, err := h.videos.Search(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}
