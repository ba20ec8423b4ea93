package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "leo", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "leo" {
		t.Errorf("claims = %d/%q, want 42/leo", claims.UserID, claims.Username)
	}
}

func TestTokensAreUniquePerIssue(t *testing.T) {
	first, err := GenerateToken(1, "leo", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := GenerateToken(1, "leo", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first == second {
		t.Errorf("two sessions for the same identity produced identical tokens")
	}

	claims, err := ParseToken(first)
	if err != nil {
		t.Fatal(err)
	}
	if claims.ID == "" {
		t.Errorf("token carries no unique id")
	}
}

func TestBlacklistingOneSessionKeepsOthers(t *testing.T) {
	revoked, err := GenerateToken(1, "leo", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	kept, err := GenerateToken(1, "leo", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	BlacklistToken(revoked, time.Now().Add(time.Hour))
	if !IsTokenBlacklisted(revoked) {
		t.Errorf("revoked session not blacklisted")
	}
	if IsTokenBlacklisted(kept) {
		t.Errorf("revoking one session revoked a parallel session")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken(1, "leo", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken(token); err == nil {
		t.Errorf("expired token accepted")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Errorf("garbage token accepted")
	}
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken(1, "leo", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseToken(tampered); err == nil {
		t.Errorf("tampered token accepted")
	}
}
