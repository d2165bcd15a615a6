package models

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-key-for-jwt-testing-32chars"

func TestSessionSignerRoundTrip(t *testing.T) {
	s, err := NewSessionSigner(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to create signer: %v", err)
	}

	tok, err := s.Issue("abc-123")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	if strings.Count(tok, ".") != 2 {
		t.Errorf("expected a JWT, got %q", tok)
	}

	claims, err := s.Parse(tok)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if claims.SessionID != "abc-123" || claims.Issuer != SessionTokenIssuer {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestSessionSignerRejects(t *testing.T) {
	s, _ := NewSessionSigner(testSecret, time.Hour)
	other, _ := NewSessionSigner(strings.Repeat("x", 40), time.Hour)
	expired, _ := NewSessionSigner(testSecret, time.Nanosecond)

	foreign, _ := other.Issue("abc")
	old, _ := expired.Issue("abc")
	time.Sleep(1100 * time.Millisecond)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", old},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Parse(tt.token); err == nil {
				t.Error("expected token to be rejected")
			}
		})
	}
}

func TestSessionSignerShortSecret(t *testing.T) {
	if _, err := NewSessionSigner("short", time.Hour); err == nil {
		t.Error("expected short secret to be rejected")
	}
}
