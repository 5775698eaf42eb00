package service

import (
	"context"
	"sync"
	"time"

	"github.com/pageza/dishcovery/backend/internal/parser"
)

// stubLLM returns a canned completion and records the prompts it saw.
type stubLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
	schemas []*Schema
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, schema *Schema) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	s.schemas = append(s.schemas, schema)
	return s.reply, s.err
}

func (s *stubLLM) lastSchema() *Schema {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.schemas) == 0 {
		return nil
	}
	return s.schemas[len(s.schemas)-1]
}

var fixedNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func fixedParser() *parser.Parser {
	return parser.New(
		parser.WithClock(func() time.Time { return fixedNow }),
		parser.WithSalt(func() string { return "abcdef12" }),
		parser.WithSeed(7),
	)
}
