package api

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/internal/middleware"
	"github.com/pageza/dishcovery/backend/internal/store"
)

const defaultKeepAlive = 25 * time.Second

// SlotChange is the payload of a "storage" event.
type SlotChange struct {
	Slot string `json:"slot"`
}

// EventsHandler streams a client's slot changes as server-sent events.
type EventsHandler struct {
	store     store.Store
	keepAlive time.Duration
	logger    *zap.Logger
}

func NewEventsHandler(st store.Store, logger *zap.Logger) *EventsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventsHandler{store: st, keepAlive: defaultKeepAlive, logger: logger}
}

func (h *EventsHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/events", h.Stream)
}

// Stream handles GET /events. It sends a "ready" event once subscribed,
// then one "storage" event per write to the client's slots.
func (h *EventsHandler) Stream(c *gin.Context) {
	clientID := middleware.ClientID(c)
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, err := h.store.Subscribe(ctx)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Streams outlive the server's write timeout.
	_ = http.NewResponseController(c.Writer).SetWriteDeadline(time.Time{})

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	c.SSEvent("ready", gin.H{"clientId": clientID})
	c.Writer.Flush()

	prefix := store.ClientPrefix(clientID)
	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	h.logger.Debug("event stream opened", zap.String("client_id", clientID))
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case e, ok := <-events:
			if !ok {
				return false
			}
			if strings.HasPrefix(e.Key, prefix) {
				c.SSEvent("storage", SlotChange{Slot: store.SlotName(e.Key)})
			}
			return true
		case <-ticker.C:
			_, _ = io.WriteString(w, ": keep-alive\n\n")
			return true
		}
	})
	h.logger.Debug("event stream closed", zap.String("client_id", clientID))
}
