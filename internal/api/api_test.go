package api_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/internal/api"
	"github.com/pageza/dishcovery/backend/internal/middleware"
	"github.com/pageza/dishcovery/backend/internal/model"
	"github.com/pageza/dishcovery/backend/internal/service"
	"github.com/pageza/dishcovery/backend/internal/store"
	"github.com/pageza/dishcovery/backend/internal/testdb"
	"github.com/pageza/dishcovery/backend/internal/types"
)

const recipeCompletion = `# Tomato Basil Pasta
Cuisine: Italian
Cooking Time: 20 mins

Ingredients:
- 200g pasta
- 3 tomatoes

Instructions:
1. Boil the pasta.
2. Toss with tomatoes.`

const leftoverCompletion = `**RECIPE 1: Rice Cakes**
**Cuisine:** Korean
**Cooking Time:** 15 minutes

**Ingredients:**
- 2 cups rice (leftover)

**Instructions:**
1. Shape the rice.
2. Fry until crisp.`

// scriptedLLM picks its reply from the prompt so one stub serves every
// generation route.
type scriptedLLM struct {
	mu   sync.Mutex
	fail bool
}

func (s *scriptedLLM) setFail(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = fail
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, schema *service.Schema) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return "", errors.New("model unavailable")
	}
	switch {
	case strings.Contains(prompt, "leftover"):
		return leftoverCompletion, nil
	case strings.Contains(prompt, "substitutes"):
		return "- Olive oil\n- Ghee", nil
	case strings.Contains(prompt, "2-3 sentences"):
		return "Bake the pasta with blistered tomatoes. Finish with basil.", nil
	default:
		return recipeCompletion, nil
	}
}

type stubVideos struct{}

func (stubVideos) Search(ctx context.Context, title string) ([]model.Video, error) {
	return []model.Video{{ID: "vid1", Title: title + " video", Duration: "4:32"}}, nil
}

type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	llm    *scriptedLLM
	store  *store.MemoryStore
	token  string
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	s.llm = &scriptedLLM{}
	s.store = store.NewMemoryStore()
	catalog := service.NewCatalog(testdb.SQLite(s.T()), nil, logger)
	_, err := catalog.Seed(context.Background())
	s.Require().NoError(err)

	sessions := service.NewSessionService("test-secret", time.Hour)
	handlers := api.Handlers{
		Session:   api.NewSessionHandler(sessions),
		Recipes:   api.NewRecipeHandler(service.NewRecipeService(s.llm, catalog, s.store, nil, false, logger)),
		Favorites: api.NewFavoritesHandler(service.NewFavoritesService(s.store)),
		Ratings:   api.NewRatingHandler(service.NewRatingService(s.store)),
		Leftovers: api.NewLeftoverHandler(service.NewLeftoverService(s.llm, s.store, nil, false, logger)),
		Videos:    api.NewVideoHandler(stubVideos{}),
		Events:    api.NewEventsHandler(s.store, logger),
	}

	perClient := middleware.NewLocalRateLimiter(middleware.RateLimitConfig{Window: time.Minute, Limit: 3})
	perAddress := middleware.NewLocalRateLimiter(middleware.RateLimitConfig{Window: time.Minute, Limit: 6})
	sessionLimit := middleware.NewLocalRateLimiter(middleware.RateLimitConfig{Window: time.Minute, Limit: 5})
	s.router = gin.New()
	api.RegisterRoutes(s.router.Group("/api/v1"), handlers, sessions, api.RouteLimits{
		Session: []gin.HandlerFunc{middleware.IPRateLimitMiddleware(sessionLimit, logger)},
		Generate: []gin.HandlerFunc{
			middleware.IPRateLimitMiddleware(perAddress, logger),
			middleware.RateLimitMiddleware(perClient, logger),
		},
	})

	s.token = s.newSession().Token
}

func (s *APITestSuite) newSession() types.SessionResponse {
	w := s.request(http.MethodPost, "/api/v1/session", nil, "")
	s.Require().Equal(http.StatusCreated, w.Code)
	var session types.SessionResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &session))
	return session
}

func (s *APITestSuite) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *APITestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	return s.request(method, path, body, s.token)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *APITestSuite) TestSessionRequired() {
	w := s.request(http.MethodGet, "/api/v1/favorites", nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodGet, "/api/v1/favorites", nil, "not-a-token")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *APITestSuite) TestGenerateAndGetRecipe() {
	w := s.do(http.MethodPost, "/api/v1/recipes/generate", types.GenerateRecipesRequest{Ingredients: []string{"pasta", " tomato "}})
	s.Require().Equal(http.StatusOK, w.Code)
	recipes := decode[[]model.Recipe](s.T(), w)
	s.Require().Len(recipes, 1)
	s.Equal("Tomato Basil Pasta", recipes[0].Title)

	w = s.do(http.MethodGet, "/api/v1/recipes/"+recipes[0].ID, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(recipes[0], decode[model.Recipe](s.T(), w))

	other := s.newSession()
	w = s.request(http.MethodGet, "/api/v1/recipes/"+recipes[0].ID, nil, other.Token)
	s.Equal(http.StatusNotFound, w.Code)
	s.Equal("Recipe not found", decode[types.ErrorResponse](s.T(), w).Error)
}

func (s *APITestSuite) TestGenerateValidation() {
	for _, body := range []any{
		map[string]any{},
		types.GenerateRecipesRequest{Ingredients: []string{}},
		types.GenerateRecipesRequest{Ingredients: []string{""}},
	} {
		w := s.do(http.MethodPost, "/api/v1/recipes/generate", body)
		s.Equal(http.StatusBadRequest, w.Code)
	}
}

func (s *APITestSuite) TestGenerateFallsBackToCatalog() {
	s.llm.setFail(true)

	w := s.do(http.MethodPost, "/api/v1/recipes/generate", types.GenerateRecipesRequest{Ingredients: []string{"mozzarella"}})
	s.Require().Equal(http.StatusOK, w.Code)
	recipes := decode[[]model.Recipe](s.T(), w)
	s.Require().Len(recipes, 1)
	s.Equal("1", recipes[0].ID)
}

func (s *APITestSuite) TestGenerateRateLimit() {
	body := types.GenerateRecipesRequest{Ingredients: []string{"pasta"}}
	for i := 0; i < 3; i++ {
		s.Equal(http.StatusOK, s.do(http.MethodPost, "/api/v1/recipes/generate", body).Code)
	}
	w := s.do(http.MethodPost, "/api/v1/recipes/generate", body)
	s.Equal(http.StatusTooManyRequests, w.Code)

	other := s.newSession()
	w = s.request(http.MethodPost, "/api/v1/recipes/generate", body, other.Token)
	s.Equal(http.StatusOK, w.Code, "limits are per client")
}

func (s *APITestSuite) TestSessionRateLimitPerAddress() {
	// SetupTest already issued one session from the default address.
	for i := 0; i < 4; i++ {
		s.newSession()
	}
	w := s.request(http.MethodPost, "/api/v1/session", nil, "")
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.NotEmpty(w.Header().Get("Retry-After"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/session", nil)
	req.RemoteAddr = "198.51.100.7:4000"
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusCreated, w.Code)
}

func (s *APITestSuite) TestGenerateRateLimitPerAddress() {
	body := types.GenerateRecipesRequest{Ingredients: []string{"pasta"}}
	for _, token := range []string{s.token, s.newSession().Token} {
		for i := 0; i < 3; i++ {
			s.Require().Equal(http.StatusOK, s.request(http.MethodPost, "/api/v1/recipes/generate", body, token).Code)
		}
	}

	fresh := s.newSession()
	w := s.request(http.MethodPost, "/api/v1/recipes/generate", body, fresh.Token)
	s.Equal(http.StatusTooManyRequests, w.Code, "new sessions share the address allowance")

	w = s.request(http.MethodPost, "/api/v1/suggestions", types.SuggestionRequest{Ingredients: []string{"pasta"}}, fresh.Token)
	s.Equal(http.StatusTooManyRequests, w.Code)
}

func (s *APITestSuite) TestSuggestions() {
	w := s.do(http.MethodPost, "/api/v1/suggestions", types.SuggestionRequest{Ingredients: []string{"pasta", "tomato"}})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Bake the pasta with blistered tomatoes. Finish with basil.", decode[types.SuggestionResponse](s.T(), w).Suggestion)

	s.llm.setFail(true)
	w = s.do(http.MethodPost, "/api/v1/suggestions", types.SuggestionRequest{Ingredients: []string{"pasta"}})
	s.Require().Equal(http.StatusOK, w.Code)
	s.NotEmpty(decode[types.SuggestionResponse](s.T(), w).Suggestion)

	w = s.do(http.MethodPost, "/api/v1/suggestions", map[string]any{"ingredients": []string{" "}})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestCuisines() {
	w := s.do(http.MethodGet, "/api/v1/cuisines", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	cuisines := decode[[]model.Cuisine](s.T(), w)
	s.Require().Len(cuisines, 12)
	s.Equal("Italian", cuisines[0].Name)

	w = s.do(http.MethodGet, "/api/v1/cuisines/"+cuisines[0].Slug+"/recipes", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[[]model.Recipe](s.T(), w), cuisines[0].RecipeCount)
}

func (s *APITestSuite) TestCatalogRoutes() {
	w := s.do(http.MethodGet, "/api/v1/recipes?q=chickpea", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Len(decode[[]model.Recipe](s.T(), w), 2)

	w = s.do(http.MethodGet, "/api/v1/cuisines/thai/recipes", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	for _, r := range decode[[]model.Recipe](s.T(), w) {
		s.Equal("Thai", r.Cuisine)
	}

	w = s.do(http.MethodGet, "/api/v1/recipes/5", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Chicken Tacos", decode[model.Recipe](s.T(), w).Title)
}

func (s *APITestSuite) TestSubstitutions() {
	w := s.do(http.MethodGet, "/api/v1/substitutions?ingredient=butter", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal([]string{"Olive oil", "Ghee"}, decode[[]string](s.T(), w))

	w = s.do(http.MethodGet, "/api/v1/substitutions", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	s.llm.setFail(true)
	w = s.do(http.MethodGet, "/api/v1/substitutions?ingredient=butter", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *APITestSuite) TestFavorites() {
	recipe := service.SeedRecipes()[0]

	w := s.do(http.MethodPost, "/api/v1/favorites/toggle", types.ToggleFavoriteRequest{Recipe: recipe})
	s.Require().Equal(http.StatusOK, w.Code)
	s.True(decode[types.FavoriteStatus](s.T(), w).IsFavorite)

	w = s.do(http.MethodGet, "/api/v1/favorites/"+recipe.ID, nil)
	s.True(decode[types.FavoriteStatus](s.T(), w).IsFavorite)

	w = s.do(http.MethodGet, "/api/v1/favorites", nil)
	s.Require().Len(decode[[]model.Recipe](s.T(), w), 1)

	w = s.do(http.MethodPost, "/api/v1/favorites/toggle", types.ToggleFavoriteRequest{Recipe: recipe})
	s.False(decode[types.FavoriteStatus](s.T(), w).IsFavorite)

	w = s.do(http.MethodPost, "/api/v1/favorites/toggle", types.ToggleFavoriteRequest{})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestRatings() {
	w := s.do(http.MethodPut, "/api/v1/ratings/3", types.SaveRatingRequest{Rating: 5, Feedback: "Great"})
	s.Require().Equal(http.StatusOK, w.Code)
	saved := decode[model.Rating](s.T(), w)
	s.Equal("3", saved.RecipeID)
	s.NotEmpty(saved.Date)

	w = s.do(http.MethodGet, "/api/v1/ratings/3", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(5, decode[model.Rating](s.T(), w).Rating)

	w = s.do(http.MethodGet, "/api/v1/ratings/4", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, "/api/v1/ratings/3", types.SaveRatingRequest{Rating: 9})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/ratings", nil)
	s.Len(decode[[]model.Rating](s.T(), w), 1)
}

func (s *APITestSuite) TestLeftovers() {
	w := s.do(http.MethodPost, "/api/v1/leftovers/generate", types.GenerateLeftoversRequest{Ingredients: []string{"rice"}})
	s.Require().Equal(http.StatusOK, w.Code)
	recipes := decode[[]model.LeftoverRecipe](s.T(), w)
	s.Require().Len(recipes, 1)
	s.Equal("Rice Cakes", recipes[0].Name)
	s.Equal("Easy", recipes[0].Difficulty)

	w = s.do(http.MethodPut, "/api/v1/leftovers/"+recipes[0].ID+"/rating", types.LeftoverRatingRequest{Rating: 4})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/leftovers/"+recipes[0].ID+"/rating", nil)
	s.Equal(4, decode[types.LeftoverRatingResponse](s.T(), w).Rating)

	w = s.do(http.MethodPost, "/api/v1/leftovers/generate", types.GenerateLeftoversRequest{})
	s.Equal(http.StatusBadRequest, w.Code)

	s.llm.setFail(true)
	w = s.do(http.MethodPost, "/api/v1/leftovers/generate", types.GenerateLeftoversRequest{CustomPrompt: "some rice"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *APITestSuite) TestLeftoverStats() {
	w := s.do(http.MethodGet, "/api/v1/leftovers/stats", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Zero(decode[model.LeftoverStats](s.T(), w).TotalSavedMeals)

	s.do(http.MethodPost, "/api/v1/leftovers/stats/saved", nil)
	w = s.do(http.MethodPost, "/api/v1/leftovers/stats/saved", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	stats := decode[model.LeftoverStats](s.T(), w)
	s.Equal(2, stats.SavedMealsThisWeek)
	s.Equal(2, stats.TotalSavedMeals)
}

func (s *APITestSuite) TestVideos() {
	w := s.do(http.MethodGet, "/api/v1/videos?q=Pad+Thai", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	videos := decode[[]model.Video](s.T(), w)
	s.Require().Len(videos, 1)
	s.Equal("Pad Thai video", videos[0].Title)

	w = s.do(http.MethodGet, "/api/v1/videos", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *APITestSuite) TestEvents() {
	server := httptest.NewServer(s.router)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/events?access_token="+s.token, nil)
	s.Require().NoError(err)
	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Type"), "text/event-stream")

	lines := bufio.NewScanner(resp.Body)
	next := func(prefix string) string {
		for lines.Scan() {
			if strings.HasPrefix(lines.Text(), prefix) {
				return lines.Text()
			}
		}
		return ""
	}
	s.Require().Equal("event:ready", next("event:"))

	other := s.newSession()
	recipe := service.SeedRecipes()[1]
	s.request(http.MethodPost, "/api/v1/favorites/toggle", types.ToggleFavoriteRequest{Recipe: recipe}, other.Token)
	s.do(http.MethodPut, "/api/v1/ratings/2", types.SaveRatingRequest{Rating: 3})

	s.Equal("event:storage", next("event:"))
	s.Equal(`data:{"slot":"dishcovery-ratings"}`, next("data:"), "other clients' writes are filtered out")
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
