// Package token issues and verifies the signed bearer tokens used as
// session credentials. Tokens are compact HS256 JWTs embedding the user's
// id, username, and email with a fixed validity window.
//
// A structurally valid token is NOT sufficient to authenticate a request:
// the auth service additionally requires an exact match against the Redis
// session entry, which is what makes logout effective before the signature
// expires.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is returned for any token that fails parsing, signature
// verification, or time-window checks. Callers should not distinguish the
// cases -- the client always gets a generic unauthorized response.
var ErrInvalid = errors.New("invalid token")

// Claims are the identity assertions embedded in every issued token.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Manager signs and verifies tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a token manager. ttl is the signature validity window
// of issued tokens.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Sign issues a new token asserting the given identity, valid from now
// until now+ttl.
func (m *Manager) Sign(userID, username, email string) (string, error) {
	now := m.now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID:   userID,
		Username: username,
		Email:    email,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a token string and returns its claims.
// Returns ErrInvalid for malformed, forged, or expired tokens.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
