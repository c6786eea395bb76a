package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srisoftware/portal-api/pkg/cache"
)

// TokenStore tracks revoked session token IDs until they expire.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore constructs a TokenStore.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke blacklists jti for ttl. Expired tokens need no entry.
func (s *TokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if s.client == nil || jti == "" || ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, cache.Key("revoked", jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti was revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if s.client == nil || jti == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, cache.Key("revoked", jti)).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}

// LoginLimiter counts login attempts per key in fixed windows.
type LoginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter constructs a LoginLimiter.
func NewLoginLimiter(client *redis.Client) *LoginLimiter {
	return &LoginLimiter{client: client}
}

// Hit records an attempt and returns the count within the current window and
// the time left until it resets.
func (l *LoginLimiter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if l.client == nil {
		return 0, 0, nil
	}
	redisKey := cache.Key("login", key)
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, window)
	ttl := pipe.PTTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("count login attempt: %w", err)
	}
	return incr.Val(), ttl.Val(), nil
}
