package auth

import (
	"testing"
	"time"
)

func TestNewManagerAndTokenLifecycle(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Minute*30)
	if err != nil {
		t.Fatalf("unexpected error creating manager: %v", err)
	}

	token, expiresAt, err := mgr.GenerateToken("uploader-42")
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if expiresAt.Before(time.Now()) {
		t.Fatal("expected future expiry time")
	}

	claims, err := mgr.ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.Subject != "uploader-42" {
		t.Fatalf("expected subject uploader-42, got %s", claims.Subject)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager("   ", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestParseTokenRejectsForeignTokens(t *testing.T) {
	mgr, err := NewManager("test-secret", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	other, err := NewManager("other-secret", "issuer", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	otherIssuer, err := NewManager("test-secret", "someone-else", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, issuer := range map[string]*Manager{"secret": other, "issuer": otherIssuer} {
		token, _, err := issuer.GenerateToken("subject")
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		if _, err := mgr.ParseToken(token); err == nil {
			t.Errorf("expected %s mismatch to be rejected", name)
		}
	}

	if _, _, err := mgr.GenerateToken("  "); err == nil {
		t.Error("expected error for empty subject")
	}
}
