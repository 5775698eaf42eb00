package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/internal/api"
	"github.com/pageza/dishcovery/backend/internal/metrics"
	"github.com/pageza/dishcovery/backend/internal/middleware"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Options carries everything the router needs besides the handlers.
type Options struct {
	AllowedOrigins []string
	Validator      middleware.TokenValidator
	// Limiter caps generation per client. AddressLimiter caps generation
	// and SessionLimiter caps session creation per remote address.
	Limiter        middleware.Limiter
	AddressLimiter middleware.Limiter
	SessionLimiter middleware.Limiter
	Metrics        *metrics.Metrics
	Logger         *zap.Logger
	HealthChecks   map[string]HealthCheck
}

// SetupRouter configures the application routes
func SetupRouter(handlers api.Handlers, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logger, opts.Metrics),
		middleware.CORS(opts.AllowedOrigins),
	)

	router.GET("/health", healthHandler(opts.HealthChecks))
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	limiter := orLocal(opts.Limiter, 10)
	addressLimiter := orLocal(opts.AddressLimiter, 30)
	sessionLimiter := orLocal(opts.SessionLimiter, 20)
	api.RegisterRoutes(router.Group("/api/v1"), handlers, opts.Validator, api.RouteLimits{
		Session: []gin.HandlerFunc{middleware.IPRateLimitMiddleware(sessionLimiter, logger)},
		Generate: []gin.HandlerFunc{
			middleware.IPRateLimitMiddleware(addressLimiter, logger),
			middleware.RateLimitMiddleware(limiter, logger),
		},
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return router
}

func orLocal(limiter middleware.Limiter, perMinute int) middleware.Limiter {
	if limiter != nil {
		return limiter
	}
	return middleware.NewLocalRateLimiter(middleware.RateLimitConfig{Window: time.Minute, Limit: perMinute})
}

func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = err.Error()
				continue
			}
			results[name] = "ok"
		}

		body := gin.H{"status": "healthy", "checks": results}
		if status != http.StatusOK {
			body["status"] = "unhealthy"
		}
		c.JSON(status, body)
	}
}
