package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dishcovery/backend/internal/service"
)

// SessionHandler issues anonymous client sessions.
type SessionHandler struct {
	sessions service.ISessionService
}

func NewSessionHandler(sessions service.ISessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create handles POST /session.
func (h *SessionHandler) Create(c *gin.Context) {
	session, err := h.sessions.Issue()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}
