package redis

// Package redis provides Redis-based adapters for campushub.

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/campushub/campushub/internal/domain/auth"
	"github.com/campushub/campushub/internal/ports"
)

const defaultMaxTTL = 5 * time.Minute

// SessionCache is a read-through cache in front of the Postgres session
// store. It is strictly best-effort: every failure is a miss, and entries
// never outlive the session's own expiry. Postgres stays authoritative so
// revocation takes effect as soon as the cache entry is invalidated or ages
// out.
type SessionCache struct {
	client redis.UniversalClient
	prefix string
	maxTTL time.Duration
	logger *slog.Logger
}

var _ ports.SessionCache = (*SessionCache)(nil)

// SessionCacheOptions groups construction parameters for SessionCache.
type SessionCacheOptions struct {
	Client redis.UniversalClient
	MaxTTL time.Duration
	Logger *slog.Logger
}

// NewSessionCache creates a Redis-backed session cache.
func NewSessionCache(opts SessionCacheOptions) *SessionCache {
	maxTTL := opts.MaxTTL
	if maxTTL <= 0 {
		maxTTL = defaultMaxTTL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionCache{
		client: opts.Client,
		prefix: "session:",
		maxTTL: maxTTL,
		logger: logger.With("component", "session_cache"),
	}
}

// Get returns the cached session for token, if present and still live.
func (c *SessionCache) Get(ctx context.Context, token string) (domainauth.Session, bool) {
	if token == "" {
		return domainauth.Session{}, false
	}

	data, err := c.client.Get(ctx, c.prefix+token).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "cache get failed", "error", err)
		}
		return domainauth.Session{}, false
	}

	var sess domainauth.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		c.logger.WarnContext(ctx, "cache entry corrupt", "error", err)
		c.Invalidate(ctx, token)
		return domainauth.Session{}, false
	}

	// The Redis TTL should have removed expired entries already, but the
	// session's absolute expiry is the contract.
	if sess.Expired(time.Now()) {
		c.Invalidate(ctx, token)
		return domainauth.Session{}, false
	}
	return sess, true
}

// Put stores sess with a TTL bounded by both the configured maximum and the
// session's remaining lifetime. Already-expired sessions are not cached.
func (c *SessionCache) Put(ctx context.Context, sess domainauth.Session) {
	if sess.Token == "" {
		return
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return
	}
	if ttl > c.maxTTL {
		ttl = c.maxTTL
	}

	data, err := json.Marshal(sess)
	if err != nil {
		c.logger.WarnContext(ctx, "cache marshal failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, c.prefix+sess.Token, data, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache put failed", "error", err)
	}
}

// Invalidate drops the cache entry for token so the next read hits Postgres.
func (c *SessionCache) Invalidate(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := c.client.Del(ctx, c.prefix+token).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache invalidate failed", "error", err)
	}
}
