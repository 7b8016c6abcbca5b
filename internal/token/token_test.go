package token

import (
	"testing"
	"time"
)

func TestSignVerifyRoundtrip(t *testing.T) {
	m := NewManager("test-secret-key-with-enough-length!!", 7*24*time.Hour)

	tok, err := m.Sign("user-1", "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", claims.Email, "alice@example.com")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	issuer := NewManager("issuer-secret-key-with-enough-length", time.Hour)
	verifier := NewManager("different-secret-key-entirely-here!", time.Hour)

	tok, err := issuer.Sign("user-1", "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := verifier.Verify(tok); err != ErrInvalid {
		t.Errorf("Verify with wrong key = %v, want ErrInvalid", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewManager("test-secret-key-with-enough-length!!", time.Hour)

	issued := time.Now()
	m.now = func() time.Time { return issued }

	tok, err := m.Sign("user-1", "alice", "alice@example.com")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	// Jump past the validity window.
	m.now = func() time.Time { return issued.Add(2 * time.Hour) }

	if _, err := m.Verify(tok); err != ErrInvalid {
		t.Errorf("Verify expired token = %v, want ErrInvalid", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret-key-with-enough-length!!", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(tok); err != ErrInvalid {
			t.Errorf("Verify(%q) = %v, want ErrInvalid", tok, err)
		}
	}
}
