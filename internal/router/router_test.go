package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/config"
	"github.com/pageza/dishcovery/backend/internal/api"
	"github.com/pageza/dishcovery/backend/internal/metrics"
	"github.com/pageza/dishcovery/backend/internal/service"
	"github.com/pageza/dishcovery/backend/internal/store"
	"github.com/pageza/dishcovery/backend/internal/testdb"
)

func setupTestRouter(t *testing.T, checks map[string]HealthCheck) (*gin.Engine, *metrics.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	m := metrics.New()
	st := store.NewMemoryStore()
	llm := service.NewLLMService(config.GeminiConfig{}, service.WithLLMMetrics(m))
	catalog := service.NewCatalog(testdb.SQLite(t), nil, logger)
	sessions := service.NewSessionService("router-secret", time.Hour)

	handlers := api.Handlers{
		Session:   api.NewSessionHandler(sessions),
		Recipes:   api.NewRecipeHandler(service.NewRecipeService(llm, catalog, st, nil, false, logger)),
		Favorites: api.NewFavoritesHandler(service.NewFavoritesService(st)),
		Ratings:   api.NewRatingHandler(service.NewRatingService(st)),
		Leftovers: api.NewLeftoverHandler(service.NewLeftoverService(llm, st, nil, false, logger)),
		Videos:    api.NewVideoHandler(service.NewVideoService(config.YouTubeConfig{}, m, logger)),
		Events:    api.NewEventsHandler(st, logger),
	}

	return SetupRouter(handlers, Options{
		Validator:    sessions,
		Metrics:      m,
		Logger:       logger,
		HealthChecks: checks,
	}), m
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		r, _ := setupTestRouter(t, map[string]HealthCheck{
			"database": func(ctx context.Context) error { return nil },
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, map[string]any{"database": "ok"}, body["checks"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		r, _ := setupTestRouter(t, map[string]HealthCheck{
			"database": func(ctx context.Context) error { return nil },
			"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "connection refused")
	})
}

func TestMetricsEndpoint(t *testing.T) {
	r, _ := setupTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/session", nil))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `dishcovery_http_requests_total{method="POST",path="/api/v1/session",status="201"} 1`)
}

func TestGenerateWithoutModelUsesCatalog(t *testing.T) {
	r, _ := setupTestRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/session", nil))
	require.Equal(t, http.StatusCreated, w.Code)
	var session struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/generate", strings.NewReader(`{"ingredients":["pasta"]}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+session.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
	assert.JSONEq(t, `[]`, w.Body.String(), "empty catalog and no model key")
}

func TestNoRoute(t *testing.T) {
	r, _ := setupTestRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestSessionCreationLimitedPerAddress(t *testing.T) {
	r, _ := setupTestRouter(t, nil)

	issue := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusCreated, issue("192.0.2.50:1000"))
	}
	assert.Equal(t, http.StatusTooManyRequests, issue("192.0.2.50:1001"))
	assert.Equal(t, http.StatusCreated, issue("192.0.2.51:1000"))
}
