// Package parser turns generative-text completions into recipe records.
//
// Every exported parse function is total: a field whose pattern does not
// match gets a fixed default, so callers always receive a populated record.
package parser

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/internal/model"
)

// FallbackFunc is called whenever a field falls back to its default.
// kind is "recipe", "leftover", "leftover_block" or "structured".
type FallbackFunc func(kind, field string)

// Parser holds the injectable clock, random source and hooks used while
// parsing. The zero value is not usable; call New.
type Parser struct {
	now        func() time.Time
	intn       func(n int) int
	salt       func() string
	logger     *zap.Logger
	onFallback FallbackFunc

	// extract parses one leftover block. Tests replace it to simulate failures.
	// onDefault is told each field that fell back to its default.
	extract func(block string, userIngredients []string, index int, onDefault func(field string)) (model.LeftoverRecipe, error)
}

// Option configures a Parser.
type Option func(*Parser)

// WithClock sets the clock used for ids.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		p.now = now
	}
}

// WithSeed makes the nutrition values reproducible.
func WithSeed(seed uint64) Option {
	return func(p *Parser) {
		var mu sync.Mutex
		r := rand.New(rand.NewPCG(seed, seed))
		p.intn = func(n int) int {
			mu.Lock()
			defer mu.Unlock()
			return r.IntN(n)
		}
	}
}

// WithSalt replaces the id salt generator.
func WithSalt(salt func() string) Option {
	return func(p *Parser) {
		p.salt = salt
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithFallbackHook registers a callback for default substitutions.
func WithFallbackHook(fn FallbackFunc) Option {
	return func(p *Parser) {
		p.onFallback = fn
	}
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{
		now:    time.Now,
		intn:   rand.IntN,
		salt:   randomSalt,
		logger: zap.NewNop(),
	}
	p.extract = extractLeftoverFields
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = New()

// ParseRecipe parses a single-recipe completion with the default parser.
func ParseRecipe(text string, userIngredients []string, surprise bool) model.Recipe {
	return defaultParser.ParseRecipe(text, userIngredients, surprise)
}

// ParseLeftoverRecipes parses a multi-recipe completion with the default parser.
func ParseLeftoverRecipes(text string, userIngredients []string) []model.LeftoverRecipe {
	return defaultParser.ParseLeftoverRecipes(text, userIngredients)
}

func (p *Parser) fallback(kind, field string) {
	p.logger.Debug("parser fallback", zap.String("kind", kind), zap.String("field", field))
	if p.onFallback != nil {
		p.onFallback(kind, field)
	}
}

func randomSalt() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

func normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// splitLines splits a block into trimmed lines with the given markers
// removed and empty lines dropped.
func splitLines(block string, strip ...func(string) string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		for _, fn := range strip {
			line = strings.TrimSpace(fn(line))
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func cleanValue(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "*"))
}
