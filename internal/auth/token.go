package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the result of authorizing a request. Every parse, scheme,
// signature, or expiry failure yields Allowed=false; callers are not told
// which check failed.
type Identity struct {
	Allowed bool
	Subject string
}

// TokenIssuer signs and verifies bearer tokens for API callers.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a token issuer signing with the given secret.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the issuer's time source.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// Generate signs a token for the given subject with the configured expiry.
func (i *TokenIssuer) Generate(subject string) (string, error) {
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authorize parses a "Bearer <token>" header and verifies the token.
func (i *TokenIssuer) Authorize(bearerHeader string) Identity {
	const scheme = "Bearer "
	if !strings.HasPrefix(bearerHeader, scheme) {
		return Identity{}
	}
	raw := strings.TrimSpace(bearerHeader[len(scheme):])
	if raw == "" {
		return Identity{}
	}

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return Identity{}
	}

	return Identity{Allowed: true, Subject: claims.Subject}
}
