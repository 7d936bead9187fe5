// Package identity turns access tokens issued by the managed auth backend
// into dashboard identities carrying exactly one role.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken is returned when the token is malformed, badly signed or fails a claim check
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when the token has expired
	ErrTokenExpired = errors.New("token expired")
)

// Claims represents the claims carried by the backend's access tokens
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"` // database role of the session, not the dashboard role
}

// ParsedClaims represents validated claims
type ParsedClaims struct {
	Sub       uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenValidator validates access tokens
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*ParsedClaims, error)
}

// Config holds configuration for Validator
type Config struct {
	Secret   string
	Issuer   string // optional
	Audience string // optional
	Leeway   time.Duration
}

// Validator verifies HS256-signed access tokens with a shared secret
type Validator struct {
	secret []byte
	opts   []jwt.ParserOption
}

// NewValidator creates a new HS256 validator. With an empty secret every
// token is rejected.
func NewValidator(cfg Config) *Validator {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}
	return &Validator{secret: []byte(cfg.Secret), opts: opts}
}

// ValidateToken validates a token and returns its parsed claims
func (v *Validator) ValidateToken(ctx context.Context, tokenString string) (*ParsedClaims, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("%w: no signing secret configured", ErrInvalidToken)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, v.opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a UUID", ErrInvalidToken)
	}

	parsed := &ParsedClaims{
		Sub:   sub,
		Email: claims.Email,
	}
	if claims.IssuedAt != nil {
		parsed.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		parsed.ExpiresAt = claims.ExpiresAt.Time
	}
	return parsed, nil
}
