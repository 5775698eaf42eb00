package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/dishcovery/backend/internal/types"
)

const sessionIssuer = "dishcovery"

// ErrInvalidSession is returned for tokens that fail validation.
var ErrInvalidSession = errors.New("invalid session token")

// SessionService issues and validates anonymous client sessions. A session
// only carries a random client id that namespaces the client's slots.
type SessionService struct {
	jwtSecret []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewSessionService(jwtSecret string, ttl time.Duration) *SessionService {
	return &SessionService{
		jwtSecret: []byte(jwtSecret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Issue creates a session for a new client.
func (s *SessionService) Issue() (*types.SessionResponse, error) {
	clientID := uuid.NewString()
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := &types.SessionClaims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   clientID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return &types.SessionResponse{
		Token:     signed,
		ClientID:  clientID,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

// ValidateToken parses a session token and returns its claims.
func (s *SessionService) ValidateToken(tokenString string) (*types.SessionClaims, error) {
	claims := &types.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if !token.Valid || claims.ClientID == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
