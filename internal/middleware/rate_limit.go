package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// Limiter decides whether one more request for key is allowed.
// It returns the remaining allowance and when the window resets.
type Limiter interface {
	IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error)
	Config() RateLimitConfig
}

// RateLimiter is a fixed-window limiter shared through Redis
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	now    func() time.Time
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		now:    time.Now,
	}
}

func (rl *RateLimiter) Config() RateLimitConfig {
	return rl.config
}

func (rl *RateLimiter) windowKey(key string, windowStart time.Time) string {
	return fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())
}

// IsAllowed counts a request for key in the current window
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	redisKey := rl.windowKey(key, windowStart)

	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := windowStart.Add(rl.config.Window)
	return count <= rl.config.Limit, remaining, resetTime, nil
}

// GetRemainingRequests returns the allowance left for key without
// counting a request.
func (rl *RateLimiter) GetRemainingRequests(ctx context.Context, key string) (int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	resetTime := windowStart.Add(rl.config.Window)

	count, err := rl.redis.Get(ctx, rl.windowKey(key, windowStart)).Int()
	if err == redis.Nil {
		return rl.config.Limit, resetTime, nil
	}
	if err != nil {
		return 0, time.Time{}, err
	}

	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, resetTime, nil
}

// LocalRateLimiter is an in-process token bucket per key, used when no
// Redis server is configured. Buckets idle for a full window are refilled
// anyway, so they are dropped on the next sweep.
type LocalRateLimiter struct {
	config    RateLimitConfig
	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
	now       func() time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalRateLimiter(config RateLimitConfig) *LocalRateLimiter {
	return &LocalRateLimiter{
		config:  config,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *LocalRateLimiter) Config() RateLimitConfig {
	return l.config
}

// Len returns the number of tracked keys.
func (l *LocalRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func (l *LocalRateLimiter) limiter(key string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastSweep) >= l.config.Window {
		l.sweep(now)
	}

	b, ok := l.buckets[key]
	if !ok {
		every := rate.Every(l.config.Window / time.Duration(l.config.Limit))
		b = &bucket{limiter: rate.NewLimiter(every, l.config.Limit)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// sweep drops buckets not used for a full window. Callers hold l.mu.
func (l *LocalRateLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.config.Window {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// IsAllowed takes one token from key's bucket.
func (l *LocalRateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	now := l.now()
	lim := l.limiter(key, now)

	allowed := lim.AllowN(now, 1)
	tokens := lim.TokensAt(now)
	remaining := int(tokens)
	if remaining < 0 {
		remaining = 0
	}

	resetTime := now
	if missing := float64(l.config.Limit) - tokens; missing > 0 {
		resetTime = now.Add(time.Duration(missing / float64(lim.Limit()) * float64(time.Second)))
	}
	return allowed, remaining, resetTime, nil
}

// NewGenerationLimiter returns a Redis limiter when a client is given and
// a local one otherwise.
func NewGenerationLimiter(redisClient *redis.Client, requests int, window time.Duration) Limiter {
	return NewLimiter(redisClient, "generate", requests, window)
}

// NewLimiter builds a limiter for one named route group. Keys live under
// dishcovery:rate_limit:<name> in Redis.
func NewLimiter(redisClient *redis.Client, name string, requests int, window time.Duration) Limiter {
	config := RateLimitConfig{
		Window:    window,
		Limit:     requests,
		KeyPrefix: "dishcovery:rate_limit:" + name,
	}
	if redisClient != nil {
		return NewRateLimiter(redisClient, config)
	}
	return NewLocalRateLimiter(config)
}

// RateLimitMiddleware enforces the limiter per client id
func RateLimitMiddleware(limiter Limiter, logger *zap.Logger) gin.HandlerFunc {
	return rateLimit(limiter, logger, "client_id", ClientID)
}

// IPRateLimitMiddleware enforces the limiter per remote address. It guards
// routes a caller could otherwise spread over many sessions.
func IPRateLimitMiddleware(limiter Limiter, logger *zap.Logger) gin.HandlerFunc {
	return rateLimit(limiter, logger, "ip", func(c *gin.Context) string {
		return "ip:" + c.ClientIP()
	})
}

func rateLimit(limiter Limiter, logger *zap.Logger, keyName string, keyFn func(*gin.Context) string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	config := limiter.Config()
	return func(c *gin.Context) {
		key := keyFn(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session required"})
			return
		}

		allowed, remaining, resetTime, err := limiter.IsAllowed(c.Request.Context(), key)
		if err != nil {
			// Log error but don't fail the request
			logger.Warn("rate limit check failed", zap.String(keyName, key), zap.Error(err))
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retryAfter := int(time.Until(resetTime).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":                "rate limit exceeded",
				"message":              fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", config.Limit, config.Window),
				"rate_limit_remaining": remaining,
				"rate_limit_reset":     resetTime.Unix(),
				"retry_after":          retryAfter,
			})
			return
		}

		c.Next()
	}
}
