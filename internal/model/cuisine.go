package model

// Cuisine is one entry of the cuisine index.
type Cuisine struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	RecipeCount int    `json:"recipeCount"`
}
