package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/config"
	"github.com/pageza/dishcovery/backend/internal/database"
	"github.com/pageza/dishcovery/backend/internal/model"
	"github.com/pageza/dishcovery/backend/internal/parser"
	"github.com/pageza/dishcovery/backend/internal/service"
	"github.com/pageza/dishcovery/backend/pkg/logger"
)

const (
	ingredientsPerRecipe = 3
	batchDelay           = 2 * time.Second
)

// seed_recipes grows the recipe catalog with model-generated recipes built
// around random produce.
func main() {
	numRecipes := flag.Int("count", 5, "Number of recipes to generate")
	surprise := flag.Bool("surprise", false, "Ask for fusion recipes")
	seed := flag.Int64("seed", 0, "Random seed for ingredient selection (0 picks one)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zapLogger, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console", Development: true})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if cfg.Gemini.APIKey == "" {
		zapLogger.Fatal("gemini.api_key is required to generate recipes")
	}

	db, err := database.New(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx := context.Background()
	catalog := service.NewCatalog(db, service.NewHashEmbedder(), zapLogger)
	llm := service.NewLLMService(cfg.Gemini, service.WithLLMLogger(zapLogger))
	p := parser.New(parser.WithLogger(zapLogger))

	faker := gofakeit.New(*seed)
	created := 0
	for i := 0; i < *numRecipes; i++ {
		ingredients := make([]string, 0, ingredientsPerRecipe)
		for len(ingredients) < ingredientsPerRecipe {
			ingredients = append(ingredients, pickIngredient(faker))
		}
		zapLogger.Info("Generating recipe",
			zap.Int("index", i+1),
			zap.Strings("ingredients", ingredients))

		recipe, err := generate(ctx, llm, p, ingredients, *surprise, cfg.Gemini.StructuredOutput)
		if err != nil {
			zapLogger.Warn("Failed to generate recipe", zap.Error(err))
			continue
		}
		if err := catalog.Add(ctx, recipe); err != nil {
			zapLogger.Error("Failed to save recipe", zap.Error(err))
			continue
		}
		created++
		zapLogger.Info("Created recipe", zap.String("id", recipe.ID), zap.String("title", recipe.Title))

		// Add a small delay between requests to avoid rate limiting
		if i < *numRecipes-1 {
			time.Sleep(batchDelay)
		}
	}

	zapLogger.Info("Seeding finished", zap.Int("created", created), zap.Int("requested", *numRecipes))
}

func pickIngredient(faker *gofakeit.Faker) string {
	if faker.Bool() {
		return faker.Vegetable()
	}
	return faker.Fruit()
}

func generate(ctx context.Context, llm *service.LLMService, p *parser.Parser, ingredients []string, surprise, structured bool) (model.Recipe, error) {
	var schema *service.Schema
	if structured {
		schema = service.RecipeSchema()
	}
	text, err := llm.Generate(ctx, service.RecipePrompt(ingredients, surprise), schema)
	if err != nil {
		return model.Recipe{}, fmt.Errorf("completion failed: %w", err)
	}

	recipe := p.FromCompletion(text, ingredients, surprise)
	recipe.ID = "catalog-" + uuid.NewString()
	return recipe, nil
}
