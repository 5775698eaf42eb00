package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pageza/dishcovery/backend/internal/model"
)

const (
	defaultTitle       = "Custom Recipe"
	defaultCookingTime = "30 mins"
	maxTags            = 3
)

var (
	defaultInstructions = []string{
		"Combine all ingredients in a bowl",
		"Cook according to your preference",
		"Serve and enjoy!",
	}
	surpriseTags = []string{"Fusion", "Creative"}
	homemadeTags = []string{"Homemade", "Custom"}
)

var (
	titleLabelRe   = regexp.MustCompile(`(?i)^(?:recipe\s+)?(?:title|name)\s*:\s*`)
	cuisineLabelRe = regexp.MustCompile(`(?i)cuisine(?:\s+type)?\**[ \t]*:\**[ \t]*([^\n]+)`)
	cuisineWordRe  = regexp.MustCompile(`(?i)([A-Za-z]+)\s+cuisine`)
	timeLabelRe    = regexp.MustCompile(`(?i)\btime\**[ \t]*:\**[ \t]*([^\n]+)`)
	takesRe        = regexp.MustCompile(`(?i)\btakes\s+([^\n]+)`)
	durationRe     = regexp.MustCompile(`(?i)(\d+\s*(?:minutes|mins|min|hours|hrs))`)
	ingredientsRe  = regexp.MustCompile(`(?i)ingredients\**[ \t]*:?\**\s*\n([\s\S]*?)(?:\n\s*\n|\n\s*#|\n\s*\**instructions)`)
	instructionsRe = regexp.MustCompile(`(?i)instructions\**[ \t]*:?\**\s*\n([\s\S]*?)(?:\n\s*\n|\n\s*#|\z)`)
	bulletLineRe   = regexp.MustCompile(`(?m)^[ \t]*[-*•][ \t]+(\S[^\n]*)`)
	numberedLineRe = regexp.MustCompile(`(?m)^[ \t]*\d+\.[ \t]+(\S[^\n]*)`)
	tagsLabelRe    = regexp.MustCompile(`(?i)\btags\**[ \t]*:\**[ \t]*([^\n]+)`)
	tagKeywordRe   = regexp.MustCompile(`(?i)\b(vegetarian|vegan|gluten-free|dairy-free|quick|easy|healthy|spicy)\b`)
	tagSplitRe     = regexp.MustCompile(`[,|]`)
	bulletPrefixRe = regexp.MustCompile(`^[-*•]\s*`)
	numberPrefixRe = regexp.MustCompile(`^\d+\.\s*`)
)

func stripBullet(s string) string {
	return bulletPrefixRe.ReplaceAllString(s, "")
}

func stripNumber(s string) string {
	return numberPrefixRe.ReplaceAllString(s, "")
}

// ParseRecipe extracts a single recipe from a free-text completion.
func (p *Parser) ParseRecipe(text string, userIngredients []string, surprise bool) model.Recipe {
	text = normalize(text)
	return model.Recipe{
		ID:           p.recipeID(),
		Title:        p.recipeTitle(text),
		Cuisine:      p.recipeCuisine(text, surprise),
		CookingTime:  p.recipeTime(text),
		Ingredients:  p.recipeIngredients(text, userIngredients),
		Instructions: p.recipeInstructions(text),
		Tags:         p.recipeTags(text, surprise),
		IsSurprise:   surprise,
		Nutrition:    p.nutrition(),
	}
}

func (p *Parser) recipeID() string {
	return fmt.Sprintf("gen-%d-%s", p.now().UnixMilli(), p.salt())
}

func (p *Parser) recipeTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "#"))
		line = cleanValue(titleLabelRe.ReplaceAllString(cleanValue(line), ""))
		if line != "" {
			return line
		}
	}
	p.fallback("recipe", "title")
	return defaultTitle
}

func defaultCuisine(surprise bool) string {
	if surprise {
		return "Fusion"
	}
	return "International"
}

func (p *Parser) recipeCuisine(text string, surprise bool) string {
	for _, re := range []*regexp.Regexp{cuisineLabelRe, cuisineWordRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			if v := cleanValue(m[1]); v != "" {
				return v
			}
		}
	}
	p.fallback("recipe", "cuisine")
	return defaultCuisine(surprise)
}

func (p *Parser) recipeTime(text string) string {
	for _, re := range []*regexp.Regexp{timeLabelRe, takesRe, durationRe} {
		if m := re.FindStringSubmatch(text); m != nil {
			if v := cleanValue(m[1]); v != "" {
				return v
			}
		}
	}
	p.fallback("recipe", "cookingTime")
	return defaultCookingTime
}

func (p *Parser) recipeIngredients(text string, userIngredients []string) []string {
	if m := ingredientsRe.FindStringSubmatch(text); m != nil {
		if lines := splitLines(m[1], stripBullet); len(lines) > 0 {
			return lines
		}
	}
	p.fallback("recipe", "ingredients")

	if items := submatches(bulletLineRe, text); len(items) > 0 {
		return items
	}
	return append([]string{}, userIngredients...)
}

func (p *Parser) recipeInstructions(text string) []string {
	if m := instructionsRe.FindStringSubmatch(text); m != nil {
		if lines := splitLines(m[1], stripNumber, stripBullet); len(lines) > 0 {
			return lines
		}
	}
	p.fallback("recipe", "instructions")

	if items := submatches(numberedLineRe, text); len(items) > 0 {
		return items
	}
	return append([]string{}, defaultInstructions...)
}

func (p *Parser) recipeTags(text string, surprise bool) []string {
	var tags []string
	if m := tagsLabelRe.FindStringSubmatch(text); m != nil {
		tags = tagSplitRe.Split(m[1], -1)
	} else {
		tags = tagKeywordRe.FindAllString(text, -1)
	}
	return p.finishTags(tags, surprise)
}

// finishTags drops empty and duplicate tags and caps the list. An empty
// result is replaced by the default pair.
func (p *Parser) finishTags(tags []string, surprise bool) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, maxTags)
	for _, tag := range tags {
		tag = cleanValue(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tag)
		if len(out) == maxTags {
			break
		}
	}
	if len(out) > 0 {
		return out
	}
	p.fallback("recipe", "tags")
	if surprise {
		return append([]string{}, surpriseTags...)
	}
	return append([]string{}, homemadeTags...)
}

// nutrition is not derived from the text.
func (p *Parser) nutrition() []model.NutritionFact {
	return []model.NutritionFact{
		{Name: "Calories", Value: fmt.Sprintf("%d kcal", 300+p.intn(200))},
		{Name: "Protein", Value: fmt.Sprintf("%dg", 10+p.intn(15))},
		{Name: "Carbs", Value: fmt.Sprintf("%dg", 30+p.intn(30))},
		{Name: "Fat", Value: fmt.Sprintf("%dg", 8+p.intn(15))},
	}
}

func submatches(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if v := strings.TrimSpace(m[1]); v != "" {
			out = append(out, v)
		}
	}
	return out
}
