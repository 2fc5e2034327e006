package session

import (
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/shopcart/pkg/config"
)

func testConfig() config.SessionConfig {
	return config.SessionConfig{
		Secret:     "test-secret",
		Issuer:     "shopcart",
		CookieName: "shopcart_session",
		TTL:        time.Hour,
	}
}

func TestMintAndParse(t *testing.T) {
	cfg := testConfig()
	id := NewID()

	token, err := Mint(cfg, time.Now(), id)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	got, err := Parse(cfg, token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != id {
		t.Fatalf("session id = %q, want %q", got, id)
	}
}

func TestParseRejectsTamperedTokens(t *testing.T) {
	cfg := testConfig()
	token, err := Mint(cfg, time.Now(), NewID())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "another-secret"
	if _, err := Parse(other, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for wrong secret, got %v", err)
	}

	other = cfg
	other.Issuer = "someone-else"
	if _, err := Parse(other, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for wrong issuer, got %v", err)
	}

	if _, err := Parse(cfg, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token for garbage, got %v", err)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	cfg := testConfig()
	token, err := Mint(cfg, time.Now().Add(-2*time.Hour), NewID())
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := Parse(cfg, token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestMintValidation(t *testing.T) {
	cfg := testConfig()
	if _, err := Mint(cfg, time.Now(), "not-a-uuid"); err == nil {
		t.Fatal("expected error for non-uuid id")
	}
	cfg.Secret = ""
	if _, err := Mint(cfg, time.Now(), NewID()); err == nil {
		t.Fatal("expected error without secret")
	}
	cfg = testConfig()
	cfg.TTL = 0
	if _, err := Mint(cfg, time.Now(), NewID()); err == nil {
		t.Fatal("expected error without ttl")
	}
}
