package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	pgvector "github.com/pgvector/pgvector-go"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface. It returns a string so that
// lib/pq sends the array as text and postgres can cast it to jsonb.
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONBStringArray: %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// NutritionFact is a single name/value pair shown on a recipe card.
type NutritionFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NutritionFacts is stored as a JSON column.
type NutritionFacts []NutritionFact

// Value implements the driver.Valuer interface
func (n NutritionFacts) Value() (driver.Value, error) {
	if len(n) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (n *NutritionFacts) Scan(value interface{}) error {
	if value == nil {
		*n = NutritionFacts{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for NutritionFacts: %T", value)
	}

	return json.Unmarshal(bytes, n)
}

// Recipe is a single recipe as returned to clients and kept in the
// generated-recipes slot.
type Recipe struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Cuisine      string          `json:"cuisine"`
	CookingTime  string          `json:"cookingTime"`
	Ingredients  []string        `json:"ingredients"`
	Instructions []string        `json:"instructions"`
	Tags         []string        `json:"tags"`
	IsSurprise   bool            `json:"isSurprise,omitempty"`
	Nutrition    []NutritionFact `json:"nutrition"`
}

// CatalogRecipe is a built-in recipe persisted in the catalog table.
type CatalogRecipe struct {
	ID           string           `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Cuisine      string           `gorm:"size:50;index" json:"cuisine"`
	CookingTime  string           `gorm:"size:50" json:"cooking_time"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Tags         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Nutrition    NutritionFacts   `gorm:"type:jsonb;not null;default:'[]'" json:"nutrition"`
	Embedding    pgvector.Vector  `gorm:"type:vector(64)" json:"-"`
}

func (CatalogRecipe) TableName() string {
	return "catalog_recipes"
}

// ToRecipe converts the catalog row to its wire shape.
func (c CatalogRecipe) ToRecipe() Recipe {
	return Recipe{
		ID:           c.ID,
		Title:        c.Title,
		Cuisine:      c.Cuisine,
		CookingTime:  c.CookingTime,
		Ingredients:  append([]string{}, c.Ingredients...),
		Instructions: append([]string{}, c.Instructions...),
		Tags:         append([]string{}, c.Tags...),
		Nutrition:    append([]NutritionFact{}, c.Nutrition...),
	}
}

// NewCatalogRecipe builds a catalog row from a recipe.
func NewCatalogRecipe(r Recipe) CatalogRecipe {
	return CatalogRecipe{
		ID:           r.ID,
		Title:        r.Title,
		Cuisine:      r.Cuisine,
		CookingTime:  r.CookingTime,
		Ingredients:  JSONBStringArray(r.Ingredients),
		Instructions: JSONBStringArray(r.Instructions),
		Tags:         JSONBStringArray(r.Tags),
		Nutrition:    NutritionFacts(r.Nutrition),
	}
}
