package utils

import (
	"context"
	"time"
)

// BlacklistToken revokes a session token until its natural expiration so
// logout takes effect immediately even though cookies are client-held.
func BlacklistToken(token string, expiresAt time.Time) {
	rc := GetRedis()
	if rc == nil {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = rc.Set(ctx, "session:blacklist:"+token, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether a token was revoked before expiration.
// On Redis errors it fails open to avoid locking everyone out.
func IsTokenBlacklisted(token string) bool {
	rc := GetRedis()
	if rc == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := rc.Exists(ctx, "session:blacklist:"+token).Result()
	return err == nil && n > 0
}
