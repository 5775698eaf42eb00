package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/internal/api"
	"github.com/pageza/dishcovery/backend/internal/middleware"
	"github.com/pageza/dishcovery/backend/internal/mocks"
	"github.com/pageza/dishcovery/backend/internal/model"
	"github.com/pageza/dishcovery/backend/internal/service"
	"github.com/pageza/dishcovery/backend/internal/store"
)

func withClient(clientID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ClientIDKey, clientID)
		c.Next()
	}
}

func setupRecipeRouter(recipes service.IRecipeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1", withClient("client-1"))
	api.NewRecipeHandler(recipes).RegisterRoutes(group, func(c *gin.Context) { c.Next() })
	return r
}

func TestRecipeHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", service.ErrRecipeNotFound, http.StatusNotFound, `{"error":"Recipe not found"}`},
		{"wrapped not found", errors.Join(errors.New("lookup"), service.ErrRecipeNotFound), http.StatusNotFound, `{"error":"Recipe not found"}`},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes := new(mocks.MockRecipeService)
			recipes.On("Get", mock.Anything, "client-1", "42").Return(nil, tt.err)

			w := httptest.NewRecorder()
			setupRecipeRouter(recipes).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes/42", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			recipes.AssertExpectations(t)
		})
	}
}

func TestRecipeHandlerTrimsIngredients(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	recipes.On("Generate", mock.Anything, "client-1", []string{"rice", "egg"}, true).
		Return([]model.Recipe{{ID: "gen-1", Title: "Egg Fried Rice"}}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/generate",
		strings.NewReader(`{"ingredients":["  rice ","egg"],"surprise":true}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRecipeRouter(recipes).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Egg Fried Rice")
	recipes.AssertExpectations(t)
}

func TestRecipeHandlerRejectsBlankIngredients(t *testing.T) {
	for _, body := range []string{`{"ingredients":["  "," "]}`, `{"ingredients":[]}`} {
		recipes := new(mocks.MockRecipeService)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/generate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		setupRecipeRouter(recipes).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"ingredients must be a non-empty list"}`, w.Body.String())
		recipes.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestRecipeHandlerSuggest(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	recipes.On("Suggest", mock.Anything, []string{"tofu", "spinach"}).
		Return("Sear the tofu and wilt the spinach in its pan.", nil)

	r := setupRecipeRouter(recipes)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggestions", strings.NewReader(`{"ingredients":[" tofu","spinach "]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestion":"Sear the tofu and wilt the spinach in its pan."}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/v1/suggestions", strings.NewReader(`{"ingredients":["   "]}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	recipes.AssertExpectations(t)
}

func TestRecipeHandlerCuisines(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	recipes.On("Cuisines", mock.Anything).Return([]model.Cuisine{
		{Name: "Thai", Slug: "thai", Description: "Spicy, sweet, sour, and savory balance", RecipeCount: 2},
	}, nil).Once()
	recipes.On("Cuisines", mock.Anything).Return(nil, errors.New("db down")).Once()

	r := setupRecipeRouter(recipes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cuisines", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"Thai","slug":"thai","description":"Spicy, sweet, sour, and savory balance","recipeCount":2}]`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cuisines", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	recipes.AssertExpectations(t)
}

func TestRecipeHandlerSearch(t *testing.T) {
	recipes := new(mocks.MockRecipeService)
	recipes.On("Search", mock.Anything, "curry").Return([]model.Recipe{}, nil)
	recipes.On("ByCuisine", mock.Anything, "Thai").Return(nil, errors.New("timeout"))

	r := setupRecipeRouter(recipes)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/recipes?q=curry", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/cuisines/Thai/recipes", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	recipes.AssertExpectations(t)
}

func TestStructuredGenerationSendsSchema(t *testing.T) {
	llm := new(mocks.MockLLMService)
	llm.On("Generate", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(s *service.Schema) bool {
		return s != nil && s.Type == "OBJECT"
	})).Return(`{"title":"Miso Soup","cuisine":"Japanese","cookingTime":"15 mins","ingredients":["miso","tofu"],"instructions":["Simmer."],"tags":["Vegan"]}`, nil)

	recipes := service.NewRecipeService(llm, nil, store.NewMemoryStore(), nil, true, zap.NewNop())
	got, err := recipes.Generate(context.Background(), "client-1", []string{"tofu"}, false)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Miso Soup", got[0].Title)
	llm.AssertExpectations(t)
}

func TestVideoHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	videos := new(mocks.MockVideoService)
	videos.On("Search", mock.Anything, "Paella").Return([]model.Video{{ID: "abc", Title: "Paella at home"}}, nil)

	r := gin.New()
	api.NewVideoHandler(videos).RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/videos?q=Paella", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"abc"`)
	videos.AssertExpectations(t)
}
