package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/dishcovery/backend/config"
	"github.com/pageza/dishcovery/backend/internal/metrics"
	"github.com/pageza/dishcovery/backend/internal/testdb"
)

// fakeGemini serves generateContent with a fixed reply and records the
// last request.
type fakeGemini struct {
	server *httptest.Server
	status int
	reply  string
	calls  atomic.Int32

	mu      sync.Mutex
	lastReq generateRequest
	lastKey string
}

func (f *fakeGemini) request() (generateRequest, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastReq, f.lastKey
}

func newFakeGemini(t *testing.T, reply string) *fakeGemini {
	t.Helper()
	f := &fakeGemini{status: http.StatusOK, reply: reply}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		if r.URL.Path != "/models/gemini-test:generateContent" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req generateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.lastReq = req
		f.lastKey = r.Header.Get("x-goog-api-key")
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		if f.status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
			return
		}
		if f.reply == "" {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": f.reply}}}},
			},
		})
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGemini) config() config.GeminiConfig {
	return config.GeminiConfig{
		APIKey:  "test-key",
		BaseURL: f.server.URL,
		Model:   "gemini-test",
		Timeout: 5 * time.Second,
	}
}

func TestLLMService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("should return the first candidate text", func(t *testing.T) {
		fake := newFakeGemini(t, "Pasta Primavera")
		svc := NewLLMService(fake.config())

		text, err := svc.Generate(ctx, "Create a recipe", nil)
		require.NoError(t, err)
		assert.Equal(t, "Pasta Primavera", text)
		req, key := fake.request()
		assert.Equal(t, "test-key", key)
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "Create a recipe", req.Contents[0].Parts[0].Text)
		assert.Nil(t, req.GenerationConfig)
	})

	t.Run("should request JSON when a schema is given", func(t *testing.T) {
		fake := newFakeGemini(t, `{"title":"Soup"}`)
		svc := NewLLMService(fake.config())

		_, err := svc.Generate(ctx, "Create a recipe", RecipeSchema())
		require.NoError(t, err)
		req, _ := fake.request()
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)
		assert.Equal(t, "OBJECT", req.GenerationConfig.ResponseSchema.Type)
		assert.Contains(t, req.GenerationConfig.ResponseSchema.Properties, "ingredients")
	})

	t.Run("should fail on a non-200 status", func(t *testing.T) {
		fake := newFakeGemini(t, "unused")
		fake.status = http.StatusTooManyRequests
		svc := NewLLMService(fake.config())

		_, err := svc.Generate(ctx, "Create a recipe", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("should fail without candidates", func(t *testing.T) {
		fake := newFakeGemini(t, "")
		svc := NewLLMService(fake.config())

		_, err := svc.Generate(ctx, "Create a recipe", nil)
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})

	t.Run("should not call the API without a key", func(t *testing.T) {
		fake := newFakeGemini(t, "unused")
		cfg := fake.config()
		cfg.APIKey = ""
		svc := NewLLMService(cfg)

		_, err := svc.Generate(ctx, "Create a recipe", nil)
		assert.ErrorIs(t, err, ErrMissingAPIKey)
		assert.Equal(t, int32(0), fake.calls.Load())
	})

	t.Run("should fail when the server is unreachable", func(t *testing.T) {
		fake := newFakeGemini(t, "unused")
		cfg := fake.config()
		fake.server.Close()
		svc := NewLLMService(cfg)

		_, err := svc.Generate(ctx, "Create a recipe", nil)
		assert.Error(t, err)
	})
}

func TestLLMService_CacheKey(t *testing.T) {
	svc := NewLLMService(config.GeminiConfig{Model: "gemini-test"})

	a := svc.cacheKey([]byte("prompt one"))
	b := svc.cacheKey([]byte("prompt two"))

	assert.Equal(t, a, svc.cacheKey([]byte("prompt one")))
	assert.NotEqual(t, a, b)
	assert.Contains(t, a, completionCachePrefix)
	assert.False(t, svc.cacheEnabled())
}

func TestLLMService_CompletionCache(t *testing.T) {
	ctx := context.Background()
	client := testdb.Redis(t)
	fake := newFakeGemini(t, "Cached Curry")
	svc := NewLLMService(fake.config(), WithCompletionCache(client, time.Minute), WithLLMMetrics(metrics.New()))

	for i := 0; i < 3; i++ {
		text, err := svc.Generate(ctx, "Create a curry", nil)
		require.NoError(t, err)
		assert.Equal(t, "Cached Curry", text)
	}
	assert.Equal(t, int32(1), fake.calls.Load())

	_, err := svc.Generate(ctx, "Create a soup", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), fake.calls.Load())
}
