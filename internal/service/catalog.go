package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/dishcovery/backend/internal/model"
)

// Catalog is the built-in recipe collection stored in catalog_recipes.
type Catalog struct {
	db       *gorm.DB
	embedder EmbeddingServiceInterface
	logger   *zap.Logger
}

// NewCatalog creates a Catalog. A nil embedder uses HashEmbedder.
func NewCatalog(db *gorm.DB, embedder EmbeddingServiceInterface, logger *zap.Logger) *Catalog {
	if embedder == nil {
		embedder = NewHashEmbedder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{db: db, embedder: embedder, logger: logger}
}

// Seed inserts the built-in recipes when the catalog is empty and reports
// how many were inserted.
func (c *Catalog) Seed(ctx context.Context) (int, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(&model.CatalogRecipe{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count catalog recipes: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	seeds := SeedRecipes()
	if err := c.Add(ctx, seeds...); err != nil {
		return 0, err
	}
	c.logger.Info("seeded recipe catalog", zap.Int("recipes", len(seeds)))
	return len(seeds), nil
}

// Add upserts recipes into the catalog by id.
func (c *Catalog) Add(ctx context.Context, recipes ...model.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}
	rows := make([]model.CatalogRecipe, 0, len(recipes))
	for _, r := range recipes {
		row := model.NewCatalogRecipe(r)
		vec, err := c.embedder.GenerateEmbedding(recipeDocument(r.Title, r.Cuisine, r.Ingredients, r.Tags))
		if err != nil {
			return fmt.Errorf("failed to embed recipe %s: %w", r.ID, err)
		}
		row.Embedding = vec
		rows = append(rows, row)
	}

	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "cuisine", "cooking_time", "ingredients", "instructions", "tags", "nutrition", "embedding", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to save catalog recipes: %w", err)
	}
	return nil
}

// Get returns one catalog recipe or ErrRecipeNotFound.
func (c *Catalog) Get(ctx context.Context, id string) (*model.Recipe, error) {
	var row model.CatalogRecipe
	err := c.query(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog recipe: %w", err)
	}
	r := row.ToRecipe()
	return &r, nil
}

// All returns every catalog recipe ordered by title.
func (c *Catalog) All(ctx context.Context) ([]model.Recipe, error) {
	var rows []model.CatalogRecipe
	if err := c.query(ctx).Order("title").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalog recipes: %w", err)
	}
	return toRecipes(rows), nil
}

// ByCuisine matches the cuisine case-insensitively.
func (c *Catalog) ByCuisine(ctx context.Context, cuisine string) ([]model.Recipe, error) {
	var rows []model.CatalogRecipe
	err := c.query(ctx).
		Where("LOWER(cuisine) = ?", strings.ToLower(strings.TrimSpace(cuisine))).
		Order("title").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes by cuisine: %w", err)
	}
	return toRecipes(rows), nil
}

// knownCuisines is the cuisine index shown even before the catalog holds
// a recipe of that cuisine.
var knownCuisines = []model.Cuisine{
	{Name: "Italian", Description: "Pasta, pizza, and Mediterranean flavors"},
	{Name: "Indian", Description: "Spicy curries and aromatic spices"},
	{Name: "Mexican", Description: "Tacos, salsas, and bold flavors"},
	{Name: "Chinese", Description: "Stir-fries, dumplings, and umami flavors"},
	{Name: "Japanese", Description: "Sushi, ramen, and delicate flavors"},
	{Name: "Thai", Description: "Spicy, sweet, sour, and savory balance"},
	{Name: "Mediterranean", Description: "Olive oil, herbs, and fresh ingredients"},
	{Name: "French", Description: "Elegant techniques and rich flavors"},
	{Name: "Korean", Description: "Fermented foods and bold flavors"},
	{Name: "Middle Eastern", Description: "Aromatic spices and hearty dishes"},
	{Name: "American", Description: "Comfort food and regional specialties"},
	{Name: "Spanish", Description: "Paella, tapas, and vibrant flavors"},
}

// Cuisines lists the known cuisines followed by any other cuisine found in
// the catalog, each with its catalog recipe count.
func (c *Catalog) Cuisines(ctx context.Context) ([]model.Cuisine, error) {
	var rows []struct {
		Cuisine string
		Count   int
	}
	err := c.db.WithContext(ctx).Model(&model.CatalogRecipe{}).
		Select("cuisine, COUNT(*) AS count").
		Where("cuisine <> ''").
		Group("cuisine").
		Order("cuisine").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cuisines: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[strings.ToLower(row.Cuisine)] += row.Count
	}

	cuisines := make([]model.Cuisine, 0, len(knownCuisines)+len(rows))
	for _, known := range knownCuisines {
		key := strings.ToLower(known.Name)
		known.Slug = cuisineSlug(known.Name)
		known.RecipeCount = counts[key]
		delete(counts, key)
		cuisines = append(cuisines, known)
	}
	for _, row := range rows {
		key := strings.ToLower(row.Cuisine)
		count, ok := counts[key]
		if !ok {
			continue
		}
		delete(counts, key)
		cuisines = append(cuisines, model.Cuisine{
			Name:        row.Cuisine,
			Slug:        cuisineSlug(row.Cuisine),
			RecipeCount: count,
		})
	}
	return cuisines, nil
}

// cuisineSlug is the path segment accepted by ByCuisine.
func cuisineSlug(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Search finds recipes whose title, cuisine, ingredients or tags contain
// the query. On postgres matches are ordered by embedding distance.
func (c *Catalog) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.All(ctx)
	}

	like := "%" + strings.ToLower(query) + "%"
	dbQuery := c.query(ctx)

	if c.db.Dialector.Name() == "postgres" {
		vec, err := c.embedder.GenerateEmbedding(query)
		if err != nil {
			return nil, fmt.Errorf("failed to embed query: %w", err)
		}
		dbQuery = dbQuery.
			Where("LOWER(title) LIKE ? OR LOWER(cuisine) LIKE ? OR LOWER(ingredients::text) LIKE ? OR LOWER(tags::text) LIKE ?",
				like, like, like, like).
			Order(clause.OrderBy{Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}, WithoutParentheses: true}})
	} else {
		dbQuery = dbQuery.
			Where("LOWER(title) LIKE ? OR LOWER(cuisine) LIKE ? OR LOWER(ingredients) LIKE ? OR LOWER(tags) LIKE ?",
				like, like, like, like).
			Order("title")
	}

	var rows []model.CatalogRecipe
	if err := dbQuery.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	return toRecipes(rows), nil
}

// MatchingIngredients returns recipes with at least one ingredient line
// containing one of the given ingredients, case-insensitively.
func (c *Catalog) MatchingIngredients(ctx context.Context, ingredients []string) ([]model.Recipe, error) {
	all, err := c.All(ctx)
	if err != nil {
		return nil, err
	}

	matches := []model.Recipe{}
	for _, r := range all {
		if containsAnyIngredient(r.Ingredients, ingredients) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

// query reads rows without the embedding column.
func (c *Catalog) query(ctx context.Context) *gorm.DB {
	return c.db.WithContext(ctx).Model(&model.CatalogRecipe{}).Omit("embedding")
}

func containsAnyIngredient(recipeIngredients, wanted []string) bool {
	for _, w := range wanted {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		for _, ing := range recipeIngredients {
			if strings.Contains(strings.ToLower(ing), w) {
				return true
			}
		}
	}
	return false
}

func toRecipes(rows []model.CatalogRecipe) []model.Recipe {
	recipes := make([]model.Recipe, len(rows))
	for i, row := range rows {
		recipes[i] = row.ToRecipe()
	}
	return recipes
}
