package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/internal/model"
	"github.com/pageza/dishcovery/backend/internal/parser"
	"github.com/pageza/dishcovery/backend/internal/store"
)

// RecipeService handles recipe operations
type RecipeService struct {
	llm        LLMServiceInterface
	catalog    *Catalog
	store      store.Store
	parser     *parser.Parser
	structured bool
	logger     *zap.Logger
}

// NewRecipeService creates a new RecipeService instance. With structured
// set, completions are requested as JSON and the regex parser is the
// fallback.
func NewRecipeService(llm LLMServiceInterface, catalog *Catalog, st store.Store, p *parser.Parser, structured bool, logger *zap.Logger) *RecipeService {
	if p == nil {
		p = parser.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecipeService{
		llm:        llm,
		catalog:    catalog,
		store:      st,
		parser:     p,
		structured: structured,
		logger:     logger,
	}
}

// Generate asks the model for a recipe and keeps it in the client's
// generated-recipes slot. When the model fails, catalog recipes sharing an
// ingredient are returned instead.
func (s *RecipeService) Generate(ctx context.Context, clientID string, ingredients []string, surprise bool) ([]model.Recipe, error) {
	var schema *Schema
	if s.structured {
		schema = RecipeSchema()
	}

	text, err := s.llm.Generate(ctx, RecipePrompt(ingredients, surprise), schema)
	if err != nil {
		s.logger.Warn("recipe generation failed, using catalog",
			zap.String("client_id", clientID),
			zap.Error(err))
		return s.catalog.MatchingIngredients(ctx, ingredients)
	}

	recipe := s.parser.FromCompletion(text, ingredients, surprise)
	if err := s.saveGenerated(ctx, clientID, recipe); err != nil {
		s.logger.Error("failed to store generated recipe",
			zap.String("client_id", clientID),
			zap.String("recipe_id", recipe.ID),
			zap.Error(err))
	}
	return []model.Recipe{recipe}, nil
}

func (s *RecipeService) saveGenerated(ctx context.Context, clientID string, recipe model.Recipe) error {
	key := store.ClientKey(clientID, store.SlotGeneratedRecipes)
	recipes, err := store.LoadJSON(ctx, s.store, key, []model.Recipe{})
	if err != nil {
		return err
	}

	replaced := false
	for i := range recipes {
		if recipes[i].ID == recipe.ID {
			recipes[i] = recipe
			replaced = true
			break
		}
	}
	if !replaced {
		recipes = append(recipes, recipe)
	}
	return store.SaveJSON(ctx, s.store, key, recipes)
}

// Get looks the id up in the catalog, then in the client's generated
// recipes.
func (s *RecipeService) Get(ctx context.Context, clientID, id string) (*model.Recipe, error) {
	recipe, err := s.catalog.Get(ctx, id)
	if err == nil {
		return recipe, nil
	}
	if !errors.Is(err, ErrRecipeNotFound) {
		return nil, err
	}

	generated, err := store.LoadJSON(ctx, s.store, store.ClientKey(clientID, store.SlotGeneratedRecipes), []model.Recipe{})
	if err != nil {
		return nil, fmt.Errorf("failed to load generated recipes: %w", err)
	}
	for i := range generated {
		if generated[i].ID == id {
			return &generated[i], nil
		}
	}
	return nil, ErrRecipeNotFound
}

// ByCuisine lists catalog recipes of one cuisine.
func (s *RecipeService) ByCuisine(ctx context.Context, cuisine string) ([]model.Recipe, error) {
	return s.catalog.ByCuisine(ctx, cuisine)
}

// Search runs a keyword search over the catalog.
func (s *RecipeService) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	return s.catalog.Search(ctx, query)
}

// Substitutions suggests replacements for an ingredient. Model failures
// yield an empty list.
func (s *RecipeService) Substitutions(ctx context.Context, ingredient string) ([]string, error) {
	text, err := s.llm.Generate(ctx, SubstitutionPrompt(ingredient), nil)
	if err != nil {
		s.logger.Warn("substitution lookup failed",
			zap.String("ingredient", ingredient),
			zap.Error(err))
		return []string{}, nil
	}
	return parser.ParseSubstitutions(text), nil
}

// suggestionFallback is returned when the model cannot produce an idea.
const suggestionFallback = "We couldn't come up with an idea right now. Try generating a full recipe from these ingredients instead."

// Suggest asks the model for a short dish idea. Model failures and empty
// replies yield a fixed fallback message.
func (s *RecipeService) Suggest(ctx context.Context, ingredients []string) (string, error) {
	text, err := s.llm.Generate(ctx, SuggestionPrompt(ingredients), nil)
	if err != nil {
		s.logger.Warn("dish suggestion failed",
			zap.Strings("ingredients", ingredients),
			zap.Error(err))
		return suggestionFallback, nil
	}
	if text = strings.TrimSpace(text); text == "" {
		return suggestionFallback, nil
	}
	return text, nil
}

// Cuisines lists the cuisine index.
func (s *RecipeService) Cuisines(ctx context.Context) ([]model.Cuisine, error) {
	return s.catalog.Cuisines(ctx)
}
