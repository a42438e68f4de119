// Package auth holds the authentication core: password hashing, signed
// access tokens, resolving a token to a user, the username rule and the
// ownership gate used by mutating endpoints.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/hoverboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is the lifetime of an access token.
const DefaultTokenValidity = 24 * time.Hour

var signingMethods = map[string]*jwt.SigningMethodHMAC{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// TokenService issues and validates HMAC-signed JWTs whose subject is a user ID.
// The secret is fixed for the lifetime of the service.
type TokenService struct {
	secret   []byte
	method   *jwt.SigningMethodHMAC
	validity time.Duration
	now      func() time.Time
}

type TokenOption func(*TokenService)

// WithClock replaces time.Now for issuing and validating.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService fails on an empty secret or an algorithm other than
// HS256, HS384 or HS512. A non-positive validity means DefaultTokenValidity.
func NewTokenService(secret []byte, algorithm string, validity time.Duration, opts ...TokenOption) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret must not be empty")
	}
	method, ok := signingMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", algorithm)
	}
	if validity <= 0 {
		validity = DefaultTokenValidity
	}

	s := &TokenService{
		secret:   append([]byte(nil), secret...),
		method:   method,
		validity: validity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue returns a signed token for subjectID expiring after the configured validity.
func (s *TokenService) Issue(subjectID string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(s.method, jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate returns the token's subject. Every failure wraps common.ErrInvalidToken.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}

// Validity is the lifetime given to issued tokens.
func (s *TokenService) Validity() time.Duration {
	return s.validity
}
