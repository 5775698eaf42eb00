package model

// LeftoverRecipe is one of the recipes suggested for a set of leftovers.
type LeftoverRecipe struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	CookingTime     string   `json:"cookingTime"`
	Cuisine         string   `json:"cuisine"`
	Difficulty      string   `json:"difficulty"`
	Ingredients     []string `json:"ingredients"`
	Instructions    []string `json:"instructions"`
	UserIngredients []string `json:"userIngredients"`
	Rating          int      `json:"rating"`
	IsSaved         bool     `json:"isSaved"`
}

// LeftoverStats tracks how many leftover meals were saved.
// LastResetDate is the start of the current week in RFC 3339.
type LeftoverStats struct {
	SavedMealsThisWeek int    `json:"savedMealsThisWeek"`
	TotalSavedMeals    int    `json:"totalSavedMeals"`
	LastResetDate      string `json:"lastResetDate"`
}
