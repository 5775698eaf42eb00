package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/internal/metrics"
	"github.com/pageza/dishcovery/backend/internal/types"
)

// Recovery turns a panic into a JSON 500 response.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", err),
					zap.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{Error: "Internal server error"})
			}
		}()

		c.Next()
	}
}

// RequestLogger logs each request and records its metrics. Metrics use
// the route pattern so ids do not create new series.
func RequestLogger(logger *zap.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if path == "/health" {
			return
		}

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Int("status", statusCode),
			zap.Duration("latency", latency),
		}
		if clientID := ClientID(c); clientID != "" {
			fields = append(fields, zap.String("client_id", clientID))
		}

		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()
		switch {
		case statusCode >= 500:
			logger.Error("Server error", append(fields, zap.String("error", errorMessage))...)
		case statusCode >= 400:
			logger.Warn("Client error", append(fields, zap.String("error", errorMessage))...)
		default:
			logger.Info("Request completed", fields...)
		}

		m.RecordRequest(c.Request.Method, route, statusCode, latency)
	}
}
