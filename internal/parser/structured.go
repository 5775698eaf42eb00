package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/internal/model"
)

// ErrNotStructured is returned when a completion is not a JSON document of
// the expected shape.
var ErrNotStructured = errors.New("completion is not structured output")

// Text is a JSON string field that also accepts numbers and booleans, so
// `"cookingTime": 30` decodes as "30". Objects and arrays decode as empty
// and the field's default applies.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v.(type) {
	case float64, bool:
		*t = Text(strings.TrimSpace(string(b)))
	default:
		*t = ""
	}
	return nil
}

// TextList is a list of Text. A single scalar decodes as a one-item list.
type TextList []string

func (l *TextList) UnmarshalJSON(b []byte) error {
	var items []Text
	if err := json.Unmarshal(b, &items); err != nil {
		var one Text
		if err := json.Unmarshal(b, &one); err != nil {
			return err
		}
		items = []Text{one}
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = string(item)
	}
	*l = out
	return nil
}

// StructuredRecipe is the JSON shape requested from the model for a single
// recipe.
type StructuredRecipe struct {
	Title        Text     `json:"title"`
	Name         Text     `json:"name"`
	Cuisine      Text     `json:"cuisine"`
	CookingTime  Text     `json:"cookingTime"`
	Ingredients  TextList `json:"ingredients"`
	Instructions TextList `json:"instructions"`
	Tags         TextList `json:"tags"`
}

// StructuredLeftover is one recipe in a structured leftover completion.
type StructuredLeftover struct {
	Name         Text     `json:"name"`
	Title        Text     `json:"title"`
	Cuisine      Text     `json:"cuisine"`
	CookingTime  Text     `json:"cookingTime"`
	Description  Text     `json:"description"`
	Ingredients  TextList `json:"ingredients"`
	Instructions TextList `json:"instructions"`
}

// StructuredLeftovers is the JSON shape requested for leftover recipes.
type StructuredLeftovers struct {
	Recipes []StructuredLeftover `json:"recipes"`
}

var (
	recipeFields   = []string{"title", "name", "ingredients"}
	leftoverFields = []string{"recipes"}
)

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[i+1:]
	} else {
		return ""
	}
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.TrimSuffix(text, "```"))
}

// decodeObject decodes a JSON completion into v. The object must carry at
// least one of the recognized keys, either at the top level or under a
// single wrapping key such as {"recipe": {...}}.
func decodeObject(text string, v any, recognized []string) error {
	text = stripFences(text)
	if !strings.HasPrefix(text, "{") {
		return ErrNotStructured
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return errors.Join(ErrNotStructured, err)
	}

	raw := []byte(text)
	if !hasAnyKey(fields, recognized) {
		inner, ok := unwrap(fields)
		if !ok {
			return fmt.Errorf("%w: none of %v present", ErrNotStructured, recognized)
		}
		var innerFields map[string]json.RawMessage
		if err := json.Unmarshal(inner, &innerFields); err != nil || !hasAnyKey(innerFields, recognized) {
			return fmt.Errorf("%w: none of %v present", ErrNotStructured, recognized)
		}
		raw = inner
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Join(ErrNotStructured, err)
	}
	return nil
}

// unwrap returns the object held by a single-key wrapper. A wrapped array
// yields its first element.
func unwrap(fields map[string]json.RawMessage) (json.RawMessage, bool) {
	if len(fields) != 1 {
		return nil, false
	}
	for _, inner := range fields {
		trimmed := strings.TrimSpace(string(inner))
		switch {
		case strings.HasPrefix(trimmed, "{"):
			return inner, true
		case strings.HasPrefix(trimmed, "["):
			var items []json.RawMessage
			if err := json.Unmarshal(inner, &items); err != nil || len(items) == 0 {
				return nil, false
			}
			return items[0], true
		}
	}
	return nil, false
}

func hasAnyKey(fields map[string]json.RawMessage, keys []string) bool {
	for name := range fields {
		for _, key := range keys {
			if strings.EqualFold(name, key) {
				return true
			}
		}
	}
	return false
}

func firstText(values ...Text) string {
	for _, v := range values {
		if c := cleanValue(string(v)); c != "" {
			return c
		}
	}
	return ""
}

// DecodeStructuredRecipe builds a recipe from a JSON completion. Missing
// fields get the same defaults as the free-text parser.
func (p *Parser) DecodeStructuredRecipe(text string, userIngredients []string, surprise bool) (model.Recipe, error) {
	var s StructuredRecipe
	if err := decodeObject(text, &s, recipeFields); err != nil {
		return model.Recipe{}, err
	}

	r := model.Recipe{
		ID:           p.recipeID(),
		Title:        firstText(s.Title, s.Name),
		Cuisine:      cleanValue(string(s.Cuisine)),
		CookingTime:  cleanValue(string(s.CookingTime)),
		Ingredients:  nonEmpty(s.Ingredients),
		Instructions: nonEmpty(s.Instructions),
		Tags:         p.finishTags(s.Tags, surprise),
		IsSurprise:   surprise,
		Nutrition:    p.nutrition(),
	}
	if r.Title == "" {
		p.fallback("structured", "title")
		r.Title = defaultTitle
	}
	if r.Cuisine == "" {
		p.fallback("structured", "cuisine")
		r.Cuisine = defaultCuisine(surprise)
	}
	if r.CookingTime == "" {
		p.fallback("structured", "cookingTime")
		r.CookingTime = defaultCookingTime
	}
	if len(r.Ingredients) == 0 {
		p.fallback("structured", "ingredients")
		r.Ingredients = append([]string{}, userIngredients...)
	}
	if len(r.Instructions) == 0 {
		p.fallback("structured", "instructions")
		r.Instructions = append([]string{}, defaultInstructions...)
	}
	return r, nil
}

// DecodeStructuredLeftovers builds leftover recipes from a JSON completion.
// At most three recipes are kept.
func (p *Parser) DecodeStructuredLeftovers(text string, userIngredients []string) ([]model.LeftoverRecipe, error) {
	var s StructuredLeftovers
	if err := decodeObject(text, &s, leftoverFields); err != nil {
		return nil, err
	}
	if len(s.Recipes) > maxLeftoverRecipes {
		s.Recipes = s.Recipes[:maxLeftoverRecipes]
	}

	recipes := make([]model.LeftoverRecipe, 0, len(s.Recipes))
	for i, sr := range s.Recipes {
		// Reuse the block defaults by extracting from an empty block.
		r, err := extractLeftoverFields("", userIngredients, i, nil)
		if err != nil {
			return nil, err
		}
		if v := firstText(sr.Name, sr.Title); v != "" {
			r.Name = v
		}
		if v := cleanValue(string(sr.Cuisine)); v != "" {
			r.Cuisine = v
		}
		if v := cleanValue(string(sr.CookingTime)); v != "" {
			r.CookingTime = v
		}
		if v := strings.TrimSpace(string(sr.Description)); v != "" {
			r.Description = v
		}
		if v := nonEmpty(sr.Ingredients); len(v) > 0 {
			r.Ingredients = v
		}
		if v := nonEmpty(sr.Instructions); len(v) > 0 {
			r.Instructions = v
		}
		r.Difficulty = Difficulty(len(r.Instructions))
		r.ID = p.leftoverID(i)
		r.UserIngredients = append([]string{}, userIngredients...)
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// FromCompletion decodes structured output when present and otherwise
// falls back to the free-text parser.
func (p *Parser) FromCompletion(text string, userIngredients []string, surprise bool) model.Recipe {
	r, err := p.DecodeStructuredRecipe(text, userIngredients, surprise)
	if err == nil {
		return r
	}
	p.logger.Debug("completion is not structured, using text parser", zap.Error(err))
	return p.ParseRecipe(text, userIngredients, surprise)
}

// LeftoversFromCompletion is the leftover counterpart of FromCompletion.
func (p *Parser) LeftoversFromCompletion(text string, userIngredients []string) []model.LeftoverRecipe {
	recipes, err := p.DecodeStructuredLeftovers(text, userIngredients)
	if err == nil {
		return recipes
	}
	p.logger.Debug("completion is not structured, using text parser", zap.Error(err))
	return p.ParseLeftoverRecipes(text, userIngredients)
}

func nonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if v := strings.TrimSpace(item); v != "" {
			out = append(out, v)
		}
	}
	return out
}
