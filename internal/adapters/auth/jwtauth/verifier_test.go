package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"caretrack/internal/platform/clock"
	"caretrack/internal/ports/auth"
)

func TestVerifier_SignAndVerify(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	v, err := NewVerifier("s3cret", clk)
	if err != nil {
		t.Fatalf("NewVerifier error: %v", err)
	}

	tok, err := v.Sign(auth.Claims{UserID: "u1", Name: "Ana"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}

	got, err := v.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if got.UserID != "u1" || got.DisplayName() != "Ana" {
		t.Fatalf("unexpected claims %#v", got)
	}

	clk.Advance(2 * time.Hour)
	if _, err := v.Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestVerifier_RejectsOtherSecret(t *testing.T) {
	a, _ := NewVerifier("one", nil)
	b, _ := NewVerifier("two", nil)

	tok, err := a.Sign(auth.Claims{UserID: "u1"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign error: %v", err)
	}
	if _, err := b.Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected signature mismatch")
	}
	if _, err := b.Verify(context.Background(), "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	if _, err := NewVerifier(" ", nil); !errors.Is(err, ErrSecretMissing) {
		t.Fatalf("expected ErrSecretMissing, got %v", err)
	}
}
