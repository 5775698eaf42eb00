package service

import (
	"fmt"
	"strings"
)

const recipePromptDetails = `Include a title, cuisine type, cooking time, full ingredients list (including the ones provided), step-by-step instructions, and 2-3 dietary tags (like "Vegetarian", "Gluten-Free", etc.). Format the response in a way that's easy to parse.`

const leftoverFormat = `For each recipe, provide EXACTLY this format:

**RECIPE 1: [Unique Creative Recipe Name]**
**Cuisine:** [Indian/Italian/Chinese/etc.]
**Cooking Time:** [X minutes]
**Description:** [2-line creative description of the dish, its flavors, and appeal]

**Ingredients:**
%s

**Instructions:**
%s

**RECIPE 2: [Another Unique Creative Recipe Name]**
[Same format as above]

**RECIPE 3: [Third Unique Creative Recipe Name]**
[Same format as above]`

// RecipePrompt asks for one recipe built around the given ingredients.
func RecipePrompt(ingredients []string, surprise bool) string {
	base := fmt.Sprintf("Create a recipe using these ingredients: %s.", strings.Join(ingredients, ", "))
	if surprise {
		return base + " Make it a creative, fusion dish that combines elements from different global cuisines. " + recipePromptDetails
	}
	return base + " " + recipePromptDetails
}

// LeftoverPrompt asks for three leftover recipes separated by
// "**RECIPE n:" markers. A non-blank customPrompt replaces the ingredient
// list as the description of what is left over.
func LeftoverPrompt(ingredients []string, customPrompt string) string {
	if strings.TrimSpace(customPrompt) != "" {
		format := fmt.Sprintf(leftoverFormat,
			"- [Complete ingredient list including leftovers and additional items needed]\n- [Each ingredient on a new line with quantities]",
			"1. [Detailed first step]\n2. [Detailed second step]\n3. [Detailed third step]\n4. [Detailed fourth step]\n5. [Additional steps as needed]")
		return fmt.Sprintf("Based on this description of leftover ingredients: \"%s\", suggest 3 detailed and creative recipes focusing on Indian and global cuisines.\n\n%s\n\nMake each recipe unique, creative, and practical for home cooking. Focus on transforming leftovers into exciting new dishes.",
			customPrompt, format)
	}

	leftovers := make([]string, len(ingredients))
	for i, ing := range ingredients {
		leftovers[i] = "- " + ing + " (leftover)"
	}
	format := fmt.Sprintf(leftoverFormat,
		strings.Join(leftovers, "\n")+"\n- [Additional ingredients needed with quantities]",
		"1. [Detailed first step with specific actions]\n2. [Detailed second step with specific actions]\n3. [Detailed third step with specific actions]\n4. [Detailed fourth step with specific actions]\n5. [Additional steps as needed for completion]")
	return fmt.Sprintf("Suggest 3 detailed and creative recipes using these leftover ingredients: %s. Focus on Indian and global cuisines and make each recipe unique and exciting.\n\n%s\n\nMake each recipe creative, transforming the leftovers into exciting fusion dishes. Include specific cooking techniques and make them easy to follow for home cooks.",
		strings.Join(ingredients, ", "), format)
}

// SubstitutionPrompt asks for a short list of substitutes.
func SubstitutionPrompt(ingredient string) string {
	return fmt.Sprintf("Suggest 3-5 common substitutes for %s that people might have in their kitchen. Only list the substitutes, no explanations needed.", ingredient)
}

func stringSchema() *Schema {
	return &Schema{Type: "STRING"}
}

func stringListSchema() *Schema {
	return &Schema{Type: "ARRAY", Items: stringSchema()}
}

// RecipeSchema is the response schema for a structured recipe completion.
func RecipeSchema() *Schema {
	return &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"title":        stringSchema(),
			"cuisine":      stringSchema(),
			"cookingTime":  stringSchema(),
			"ingredients":  stringListSchema(),
			"instructions": stringListSchema(),
			"tags":         stringListSchema(),
		},
		Required: []string{"title", "ingredients", "instructions"},
	}
}

// LeftoverSchema is the response schema for structured leftover recipes.
func LeftoverSchema() *Schema {
	return &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"recipes": {
				Type: "ARRAY",
				Items: &Schema{
					Type: "OBJECT",
					Properties: map[string]*Schema{
						"name":         stringSchema(),
						"cuisine":      stringSchema(),
						"cookingTime":  stringSchema(),
						"description":  stringSchema(),
						"ingredients":  stringListSchema(),
						"instructions": stringListSchema(),
					},
					Required: []string{"name", "ingredients", "instructions"},
				},
			},
		},
		Required: []string{"recipes"},
	}
}

// SuggestionPrompt asks for a short dish idea rather than a full recipe.
func SuggestionPrompt(ingredients []string) string {
	return fmt.Sprintf("I have these ingredients: %s. What's a creative dish I could make? Give me a brief suggestion for a dish in 2-3 sentences. Be specific and creative, but keep it simple enough for a home cook.",
		strings.Join(ingredients, ", "))
}
