package auth

import (
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ThePadawan/beevenue-core/internal/core/domain"
)

// testAdapter uses MinCost to keep the hash fast in tests.
func testAdapter() *Adapter {
	return NewAdapterWithCost("test-secret", bcrypt.MinCost)
}

func TestAdapter_HashAndVerifyPassword(t *testing.T) {
	a := testAdapter()

	hash, err := a.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "hunter2" {
		t.Error("expected hash to differ from plaintext")
	}

	if !a.VerifyPassword("hunter2", hash) {
		t.Error("expected correct password to verify")
	}
	if a.VerifyPassword("wrong", hash) {
		t.Error("expected wrong password to fail")
	}
	if a.VerifyPassword("hunter2", "not a hash") {
		t.Error("expected malformed hash to fail")
	}
}

func TestAdapter_TokenRoundTrip(t *testing.T) {
	a := testAdapter()

	now := time.Now()
	token, err := a.GenerateToken(&domain.TokenClaims{
		UserID:    7,
		Username:  "alice",
		Role:      domain.RoleAdmin,
		SFW:       true,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := a.ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "alice" {
		t.Errorf("unexpected identity claims: %+v", claims)
	}
	if claims.Role != domain.RoleAdmin || !claims.SFW {
		t.Errorf("unexpected visibility claims: %+v", claims)
	}
}

func TestAdapter_ParseToken_Expired(t *testing.T) {
	a := testAdapter()

	past := time.Now().Add(-2 * time.Hour)
	token, err := a.GenerateToken(&domain.TokenClaims{
		UserID:    1,
		Username:  "bob",
		Role:      domain.RoleUser,
		IssuedAt:  past.Unix(),
		ExpiresAt: past.Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := a.ParseToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAdapter_ParseToken_Invalid(t *testing.T) {
	a := testAdapter()

	if _, err := a.ParseToken("garbage"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAdapter_ParseToken_WrongSecret(t *testing.T) {
	a := testAdapter()
	other := NewAdapterWithCost("other-secret", bcrypt.MinCost)

	now := time.Now()
	token, err := other.GenerateToken(&domain.TokenClaims{
		UserID:    1,
		Username:  "mallory",
		Role:      domain.RoleAdmin,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := a.ParseToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for foreign signature, got %v", err)
	}
}
