package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/dishcovery/backend/internal/types"
)

// ClientIDKey is the gin context key holding the session's client id.
const ClientIDKey = "client_id"

// TokenValidator is an interface for validating session tokens
type TokenValidator interface {
	ValidateToken(token string) (*types.SessionClaims, error)
}

// SessionMiddleware validates the bearer token and stores the client id in
// the context. EventSource clients cannot set headers, so a GET request may
// pass the token as the access_token query parameter instead.
func SessionMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "missing or invalid authorization header"})
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "invalid session token"})
			return
		}

		c.Set(ClientIDKey, claims.ClientID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if c.Request.Method == http.MethodGet {
			if token := c.Query("access_token"); token != "" {
				return token, true
			}
		}
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// ClientID returns the client id set by SessionMiddleware.
func ClientID(c *gin.Context) string {
	return c.GetString(ClientIDKey)
}
