package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind selects the lifetime of an issued token.
type TokenKind string

const (
	// TokenAccess is the short-lived bearer credential sent per request.
	TokenAccess TokenKind = "access"
	// TokenRefresh is the long-lived credential exchanged for new access
	// tokens. Exactly one refresh token per user is valid at a time; the
	// stored value is overwritten on every issue.
	TokenRefresh TokenKind = "refresh"
)

var errInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies HS256 JWTs carrying a single userId
// claim. The same process-wide secret signs both token kinds.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// Issue builds and signs a token for the user. The payload carries only
// the user id; expiry is 1 hour for access and 2 weeks for refresh
// under the default configuration.
func (i *TokenIssuer) Issue(userID uint64, kind TokenKind) (string, error) {
	ttl := i.accessTTL
	if kind == TokenRefresh {
		ttl = i.refreshTTL
	}
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    now.Add(ttl).Unix(),
		"iat":    now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses a token, checks signature and expiry, and returns the
// userId claim. Any failure collapses into a single invalid-token error
// so callers can map it straight to 401.
func (i *TokenIssuer) Verify(raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, errInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errInvalidToken
	}
	id, ok := claims["userId"].(float64)
	if !ok || id <= 0 {
		return 0, errInvalidToken
	}
	return uint64(id), nil
}
