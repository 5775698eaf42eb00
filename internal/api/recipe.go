package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dishcovery/backend/internal/middleware"
	"github.com/pageza/dishcovery/backend/internal/service"
	"github.com/pageza/dishcovery/backend/internal/types"
)

type RecipeHandler struct {
	recipes service.IRecipeService
}

func NewRecipeHandler(recipes service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, generateLimits ...gin.HandlerFunc) {
	recipes := router.Group("/recipes")
	{
		recipes.POST("/generate", chain(generateLimits, h.Generate)...)
		recipes.GET("", h.Search)
		recipes.GET("/:id", h.Get)
	}
	router.POST("/suggestions", chain(generateLimits, h.Suggest)...)
	router.GET("/cuisines", h.Cuisines)
	router.GET("/cuisines/:cuisine/recipes", h.ByCuisine)
	router.GET("/substitutions", h.Substitutions)
}

// Generate handles POST /recipes/generate.
func (h *RecipeHandler) Generate(c *gin.Context) {
	var req types.GenerateRecipesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "ingredients must be a non-empty list")
		return
	}

	ingredients := trimAll(req.Ingredients)
	if len(ingredients) == 0 {
		respondError(c, http.StatusBadRequest, "ingredients must be a non-empty list")
		return
	}

	recipes, err := h.recipes.Generate(c.Request.Context(), middleware.ClientID(c), ingredients, req.Surprise)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Get handles GET /recipes/:id.
func (h *RecipeHandler) Get(c *gin.Context) {
	recipe, err := h.recipes.Get(c.Request.Context(), middleware.ClientID(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Search handles GET /recipes?q=.
func (h *RecipeHandler) Search(c *gin.Context) {
	recipes, err := h.recipes.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// ByCuisine handles GET /cuisines/:cuisine/recipes.
func (h *RecipeHandler) ByCuisine(c *gin.Context) {
	recipes, err := h.recipes.ByCuisine(c.Request.Context(), c.Param("cuisine"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Substitutions handles GET /substitutions?ingredient=.
func (h *RecipeHandler) Substitutions(c *gin.Context) {
	ingredient := strings.TrimSpace(c.Query("ingredient"))
	if ingredient == "" {
		respondError(c, http.StatusBadRequest, "ingredient is required")
		return
	}

	subs, err := h.recipes.Substitutions(c.Request.Context(), ingredient)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// Suggest handles POST /suggestions.
func (h *RecipeHandler) Suggest(c *gin.Context) {
	var req types.SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "ingredients must be a non-empty list")
		return
	}
	ingredients := trimAll(req.Ingredients)
	if len(ingredients) == 0 {
		respondError(c, http.StatusBadRequest, "ingredients must be a non-empty list")
		return
	}

	suggestion, err := h.recipes.Suggest(c.Request.Context(), ingredients)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.SuggestionResponse{Suggestion: suggestion})
}

// Cuisines handles GET /cuisines.
func (h *RecipeHandler) Cuisines(c *gin.Context) {
	cuisines, err := h.recipes.Cuisines(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cuisines)
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
