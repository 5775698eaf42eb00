package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/internal/model"
)

const (
	maxLeftoverRecipes         = 3
	defaultLeftoverCuisine     = "Fusion"
	defaultLeftoverCookingTime = "30 minutes"
)

// Difficulty labels derived from the number of instruction steps.
const (
	DifficultyEasy     = "Easy"
	DifficultyMedium   = "Medium"
	DifficultyAdvanced = "Advanced"
)

// ErrInvalidEncoding is returned for blocks that are not valid UTF-8.
// Completions read from the model's JSON response are always valid UTF-8,
// so this only fires for raw text handed to ParseLeftoverRecipes directly.
var ErrInvalidEncoding = errors.New("block is not valid UTF-8")

var (
	recipeMarkerRe         = regexp.MustCompile(`(?i)\*\*RECIPE \d+:`)
	leftoverNameRe         = regexp.MustCompile(`(?m)^([^*\n]+?)(?:\*\*|$)`)
	leftoverCuisineRe      = regexp.MustCompile(`(?i)\*\*Cuisine:\*\*\s*([^\n]+)`)
	leftoverTimeRe         = regexp.MustCompile(`(?i)\*\*Cooking Time:\*\*\s*([^\n]+)`)
	leftoverDescriptionRe  = regexp.MustCompile(`(?i)\*\*Description:\*\*\s*([^\n]+(?:\n[^*\n]+)*)`)
	leftoverIngredientsRe  = regexp.MustCompile(`(?i)\*\*Ingredients:\*\*\s*((?:\n?[ \t]*(?:[-•]|\*[^*\n])[^\n]*)+)`)
	leftoverInstructionsRe = regexp.MustCompile(`(?i)\*\*Instructions:\*\*\s*((?:\n?[ \t]*\d+\.[ \t]*[^\n]+)+)`)
)

// Difficulty maps a step count to a difficulty label.
func Difficulty(steps int) string {
	switch {
	case steps <= 4:
		return DifficultyEasy
	case steps <= 6:
		return DifficultyMedium
	default:
		return DifficultyAdvanced
	}
}

// SplitRecipeBlocks splits a completion on the "**RECIPE n:" markers. Blank
// blocks are dropped, a leading preamble is dropped when there are more
// blocks than recipes, and at most three blocks are returned.
func SplitRecipeBlocks(text string) []string {
	var blocks []string
	for _, block := range recipeMarkerRe.Split(normalize(text), -1) {
		if strings.TrimSpace(block) != "" {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) > maxLeftoverRecipes {
		blocks = blocks[1:]
	}
	if len(blocks) > maxLeftoverRecipes {
		blocks = blocks[:maxLeftoverRecipes]
	}
	return blocks
}

// ParseLeftoverRecipes extracts up to three recipes from a completion.
// A block that fails to parse is replaced by a synthetic fallback recipe,
// so the result length only depends on the number of blocks.
func (p *Parser) ParseLeftoverRecipes(text string, userIngredients []string) []model.LeftoverRecipe {
	blocks := SplitRecipeBlocks(text)
	recipes := make([]model.LeftoverRecipe, 0, len(blocks))
	for i, block := range blocks {
		r, err := p.safeExtract(block, userIngredients, i)
		if err != nil {
			p.logger.Warn("failed to parse leftover recipe block",
				zap.Int("block", i+1),
				zap.Error(err))
			p.fallback("leftover_block", "block")
			r = FallbackLeftoverRecipe(userIngredients)
		}
		r.ID = p.leftoverID(i)
		r.UserIngredients = append([]string{}, userIngredients...)
		r.Rating = 0
		r.IsSaved = false
		recipes = append(recipes, r)
	}
	return recipes
}

func (p *Parser) safeExtract(block string, userIngredients []string, index int) (r model.LeftoverRecipe, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while parsing block %d: %v", index+1, rec)
		}
	}()
	var defaulted []string
	r, err = p.extract(block, userIngredients, index, func(field string) {
		defaulted = append(defaulted, field)
	})
	if err == nil {
		for _, field := range defaulted {
			p.fallback("leftover", field)
		}
	}
	return r, err
}

func (p *Parser) leftoverID(index int) string {
	return fmt.Sprintf("leftover-%d-%d-%s", p.now().UnixMilli(), index, p.salt())
}

// extractLeftoverFields parses one block. onDefault, when set, is called for
// every field that falls back to its default.
func extractLeftoverFields(block string, userIngredients []string, index int, onDefault func(field string)) (model.LeftoverRecipe, error) {
	if !utf8.ValidString(block) {
		return model.LeftoverRecipe{}, ErrInvalidEncoding
	}
	if onDefault == nil {
		onDefault = func(string) {}
	}
	joined := strings.Join(userIngredients, ", ")

	name := ""
	if m := leftoverNameRe.FindStringSubmatch(block); m != nil {
		name = strings.TrimSpace(strings.ReplaceAll(m[1], "**", ""))
	}
	if name == "" {
		onDefault("name")
		name = fmt.Sprintf("Creative Leftover Recipe %d", index+1)
	}

	cuisine := ""
	if m := leftoverCuisineRe.FindStringSubmatch(block); m != nil {
		cuisine = strings.TrimSpace(m[1])
	}
	if cuisine == "" {
		onDefault("cuisine")
		cuisine = defaultLeftoverCuisine
	}

	cookingTime := ""
	if m := leftoverTimeRe.FindStringSubmatch(block); m != nil {
		cookingTime = strings.TrimSpace(m[1])
	}
	if cookingTime == "" {
		onDefault("cookingTime")
		cookingTime = defaultLeftoverCookingTime
	}

	description := ""
	if m := leftoverDescriptionRe.FindStringSubmatch(block); m != nil {
		description = strings.ReplaceAll(strings.TrimSpace(m[1]), "\n", " ")
	}
	if description == "" {
		onDefault("description")
		description = fmt.Sprintf("A creative fusion dish that transforms your leftover %s into something delicious and exciting.", joined)
	}

	var ingredients []string
	if m := leftoverIngredientsRe.FindStringSubmatch(block); m != nil {
		ingredients = splitLines(m[1], stripBullet)
	}
	if len(ingredients) == 0 {
		onDefault("ingredients")
		ingredients = leftoverIngredients(userIngredients,
			"Salt and pepper to taste",
			"Oil for cooking",
			"Additional spices as needed",
		)
	}

	var instructions []string
	if m := leftoverInstructionsRe.FindStringSubmatch(block); m != nil {
		instructions = splitLines(m[1], stripNumber)
	}
	if len(instructions) == 0 {
		onDefault("instructions")
		first := "ingredients"
		if len(userIngredients) > 0 {
			first = userIngredients[0]
		}
		instructions = []string{
			fmt.Sprintf("Heat oil in a pan and prepare your leftover %s by chopping or breaking them into suitable pieces.", joined),
			"Add aromatics like onions, garlic, or ginger to the pan and sauté until fragrant.",
			fmt.Sprintf("Incorporate the leftover %s and mix well with the aromatics.", first),
			"Season with spices, salt, and pepper according to your taste preferences.",
			"Cook until everything is heated through and flavors are well combined.",
			"Serve hot and enjoy your creative leftover transformation!",
		}
	}

	return model.LeftoverRecipe{
		Name:         name,
		Description:  description,
		CookingTime:  cookingTime,
		Cuisine:      cuisine,
		Difficulty:   Difficulty(len(instructions)),
		Ingredients:  ingredients,
		Instructions: instructions,
	}, nil
}

// FallbackLeftoverRecipe is the complete recipe used in place of a block
// that could not be parsed. Id and user fields are set by the caller.
func FallbackLeftoverRecipe(userIngredients []string) model.LeftoverRecipe {
	first := "Leftover"
	if len(userIngredients) > 0 {
		first = userIngredients[0]
	}
	joined := strings.Join(userIngredients, ", ")

	return model.LeftoverRecipe{
		Name:        fmt.Sprintf("Creative %s Fusion", first),
		Description: fmt.Sprintf("A delicious fusion dish that creatively combines your leftover %s with fresh ingredients to create something entirely new and exciting.", joined),
		CookingTime: "25 minutes",
		Cuisine:     "Fusion",
		Difficulty:  DifficultyEasy,
		Ingredients: leftoverIngredients(userIngredients,
			"2 tbsp cooking oil",
			"1 onion, chopped",
			"2 cloves garlic, minced",
			"Salt and pepper to taste",
			"Fresh herbs for garnish",
		),
		Instructions: []string{
			"Heat oil in a large pan over medium heat.",
			"Add chopped onion and garlic, sauté until golden and fragrant.",
			fmt.Sprintf("Add your leftover %s to the pan and mix well.", joined),
			"Season with salt, pepper, and any preferred spices.",
			"Cook for 5-7 minutes until everything is heated through and flavors meld.",
			"Garnish with fresh herbs and serve hot.",
		},
	}
}

func leftoverIngredients(userIngredients []string, staples ...string) []string {
	out := make([]string, 0, len(userIngredients)+len(staples))
	for _, ing := range userIngredients {
		out = append(out, ing+" (leftover)")
	}
	return append(out, staples...)
}
