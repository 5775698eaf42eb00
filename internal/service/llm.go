package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/config"
	"github.com/pageza/dishcovery/backend/internal/metrics"
)

const completionCachePrefix = "dishcovery:completion:"

var (
	// ErrMissingAPIKey is returned by Generate when no API key is configured.
	ErrMissingAPIKey = errors.New("gemini api key is not configured")
	// ErrEmptyCompletion is returned when the API answers without any text.
	ErrEmptyCompletion = errors.New("no response from Gemini API")
)

// Schema is the subset of the OpenAPI schema Gemini accepts as a
// response schema.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// LLMService handles interactions with the Gemini generateContent API
type LLMService struct {
	apiKey   string
	baseURL  string
	model    string
	client   *http.Client
	redis    *redis.Client
	cacheTTL time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// LLMOption configures an LLMService.
type LLMOption func(*LLMService)

// WithCompletionCache caches completions in Redis for ttl. A zero ttl
// disables the cache.
func WithCompletionCache(client *redis.Client, ttl time.Duration) LLMOption {
	return func(s *LLMService) {
		s.redis = client
		s.cacheTTL = ttl
	}
}

// WithLLMMetrics records request outcomes.
func WithLLMMetrics(m *metrics.Metrics) LLMOption {
	return func(s *LLMService) {
		s.metrics = m
	}
}

// WithLLMLogger sets the logger.
func WithLLMLogger(logger *zap.Logger) LLMOption {
	return func(s *LLMService) {
		s.logger = logger
	}
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg config.GeminiConfig, opts ...LLMOption) *LLMService {
	s := &LLMService{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate sends one prompt and returns the first candidate's text. When
// schema is set the model is asked for JSON matching it.
func (s *LLMService) Generate(ctx context.Context, prompt string, schema *Schema) (string, error) {
	if s.apiKey == "" {
		s.metrics.LLMRequest("error")
		return "", ErrMissingAPIKey
	}

	reqBody := generateRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if schema != nil {
		reqBody.GenerationConfig = &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	cacheKey := s.cacheKey(jsonData)
	if text, ok := s.cached(ctx, cacheKey); ok {
		s.metrics.LLMRequest("cache_hit")
		return text, nil
	}

	text, err := s.send(ctx, jsonData)
	if err != nil {
		s.metrics.LLMRequest("error")
		s.logger.Warn("gemini request failed", zap.String("model", s.model), zap.Error(err))
		return "", err
	}
	s.metrics.LLMRequest("ok")

	s.store(ctx, cacheKey, text)
	return text, nil
}

func (s *LLMService) send(ctx context.Context, jsonData []byte) (string, error) {
	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, truncate(string(body), 512))
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyCompletion
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

func (s *LLMService) cacheEnabled() bool {
	return s.redis != nil && s.cacheTTL > 0
}

func (s *LLMService) cacheKey(requestBody []byte) string {
	sum := sha256.Sum256(append([]byte(s.model+"\n"), requestBody...))
	return completionCachePrefix + hex.EncodeToString(sum[:])
}

func (s *LLMService) cached(ctx context.Context, key string) (string, bool) {
	if !s.cacheEnabled() {
		return "", false
	}
	text, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("failed to read completion cache", zap.Error(err))
		}
		return "", false
	}
	return text, true
}

func (s *LLMService) store(ctx context.Context, key, text string) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.redis.Set(ctx, key, text, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to write completion cache", zap.Error(err))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
