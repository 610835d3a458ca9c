package session

import (
	"errors"
	"strings"
	"testing"

	domainerrors "quorum/contexts/voter-access/registry-service/domain/errors"
)

func TestSignerRoundTrip(t *testing.T) {
	signer, err := NewSigner("test-secret")
	if err != nil {
		t.Fatalf("new signer failed: %v", err)
	}

	token, err := signer.Mint("voter-abc123")
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	voterKey, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if voterKey != "voter-abc123" {
		t.Fatalf("expected voter-abc123, got %q", voterKey)
	}
}

func TestSignerRejectsForgedPayload(t *testing.T) {
	signer, _ := NewSigner("test-secret")
	token, _ := signer.Mint("voter-abc123")

	_, mac, _ := strings.Cut(token, ".")
	forged := "dm90ZXItZXZpbA." + mac
	if _, err := signer.Verify(forged); !errors.Is(err, domainerrors.ErrInvalidSessionToken) {
		t.Fatalf("expected invalid session token, got %v", err)
	}
}

func TestSignerRejectsWrongSecret(t *testing.T) {
	minting, _ := NewSigner("secret-one")
	verifying, _ := NewSigner("secret-two")

	token, _ := minting.Mint("voter-abc123")
	if _, err := verifying.Verify(token); !errors.Is(err, domainerrors.ErrInvalidSessionToken) {
		t.Fatalf("expected invalid session token, got %v", err)
	}
}

func TestSignerRejectsGarbage(t *testing.T) {
	signer, _ := NewSigner("test-secret")
	for _, token := range []string{"", "no-dot-token", "!!!.mac"} {
		if _, err := signer.Verify(token); !errors.Is(err, domainerrors.ErrInvalidSessionToken) {
			t.Fatalf("expected invalid session token for %q, got %v", token, err)
		}
	}
}

func TestNewSignerRequiresSecret(t *testing.T) {
	if _, err := NewSigner(""); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
