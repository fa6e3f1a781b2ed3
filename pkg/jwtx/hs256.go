package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Signer issues bearer tokens for a subject.
type Signer interface {
	Sign(subject string) (string, error)
}

// Verifier validates a raw bearer token and returns its claims.
// Expired or otherwise invalid tokens never yield a subject.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// HS256 signs and verifies bearer tokens with a process-wide shared secret.
// The secret is loaded once at startup; the service refuses to start
// without one.
type HS256 struct {
	secret []byte
	issuer string
	ttl    time.Duration

	// Now is the clock used for issuance and validation. Overridable in
	// tests to exercise expiry boundaries.
	Now func() time.Time
}

var _ Signer = (*HS256)(nil)
var _ Verifier = (*HS256)(nil)

// NewHS256 builds a signer/verifier from the shared secret. An empty or
// short secret is refused outright.
func NewHS256(secret, issuer string, ttl time.Duration) (*HS256, error) {
	if len(secret) < 32 {
		return nil, ErrWeakSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &HS256{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		Now:    time.Now,
	}, nil
}

// TTL returns the configured token lifetime.
func (h *HS256) TTL() time.Duration { return h.ttl }

// Sign issues a token for subject, valid from now until now+ttl.
func (h *HS256) Sign(subject string) (string, error) {
	claims := NewClaims(subject, h.issuer, h.ttl, h.Now().UTC())
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

// Verify parses and validates raw. It distinguishes expiry from every other
// failure mode; both leave the caller without a subject.
func (h *HS256) Verify(raw string) (Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return h.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(h.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return h.Now().UTC() }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenNotValidYet) {
			return Claims{}, ErrExpired
		}
		return Claims{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
