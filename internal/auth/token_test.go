package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func testIssuer() *TokenIssuer {
	return NewTokenIssuer("test-secret", time.Hour, 14*24*time.Hour)
}

func TestIssueAndVerify(t *testing.T) {
	iss := testIssuer()
	for _, kind := range []TokenKind{TokenAccess, TokenRefresh} {
		tok, err := iss.Issue(42, kind)
		if err != nil {
			t.Fatalf("issue %s: %v", kind, err)
		}
		id, err := iss.Verify(tok)
		if err != nil {
			t.Fatalf("verify %s: %v", kind, err)
		}
		if id != 42 {
			t.Fatalf("want userId 42, got %d", id)
		}
	}
}

func TestTokenExpiries(t *testing.T) {
	iss := testIssuer()
	now := time.Now().UTC()

	expOf := func(kind TokenKind) time.Time {
		raw, err := iss.Issue(7, kind)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		tok, err := jwt.Parse(raw, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		exp, err := tok.Claims.GetExpirationTime()
		if err != nil {
			t.Fatalf("exp claim: %v", err)
		}
		return exp.Time
	}

	access := expOf(TokenAccess)
	if d := access.Sub(now); d < 59*time.Minute || d > 61*time.Minute {
		t.Fatalf("access expiry off: %v", d)
	}
	refresh := expOf(TokenRefresh)
	if d := refresh.Sub(now); d < 14*24*time.Hour-time.Minute || d > 14*24*time.Hour+time.Minute {
		t.Fatalf("refresh expiry off: %v", d)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	iss := testIssuer()

	if _, err := iss.Verify("garbage"); err == nil {
		t.Fatal("garbage token should fail")
	}

	other := NewTokenIssuer("another-secret", time.Hour, time.Hour)
	tok, err := other.Issue(1, TokenAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := iss.Verify(tok); err == nil {
		t.Fatal("token signed with a different secret should fail")
	}

	expired := NewTokenIssuer("test-secret", -time.Minute, -time.Minute)
	tok, err = expired.Issue(1, TokenAccess)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := iss.Verify(tok); err == nil {
		t.Fatal("expired token should fail")
	}
}
