package utils

import (
	"testing"
	"time"
)

func TestTokenBlacklist(t *testing.T) {
	if IsTokenBlacklisted("never-seen") {
		t.Errorf("unknown token reported blacklisted")
	}

	BlacklistToken("revoked-token", time.Now().Add(time.Hour))
	if !IsTokenBlacklisted("revoked-token") {
		t.Errorf("revoked token not reported blacklisted")
	}

	// The entry lives only until the token would have expired anyway.
	mr.FastForward(2 * time.Hour)
	if IsTokenBlacklisted("revoked-token") {
		t.Errorf("blacklist entry outlived the token")
	}
}

func TestBlacklistSkipsExpiredTokens(t *testing.T) {
	BlacklistToken("already-expired", time.Now().Add(-time.Minute))
	if IsTokenBlacklisted("already-expired") {
		t.Errorf("expired token stored in blacklist")
	}
}
