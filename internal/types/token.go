package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims represents the claims in an anonymous session token
type SessionClaims struct {
	jwt.RegisteredClaims
	ClientID string `json:"client_id"`
}
