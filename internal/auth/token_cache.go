package auth

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	radix "github.com/mediocregopher/radix/v3"
)

// TokenCache keeps parsed session claims in redis so hot sessions skip the
// signature check. Keys are partitioned over the auth node ring.
type TokenCache struct {
	redis radix.Client
	ring  *ConsistentHashRing
	ttl   time.Duration
}

// NewTokenCache builds the cache. A nil redis client turns it into a
// no-op.
func NewTokenCache(redis radix.Client, ring *ConsistentHashRing, ttl time.Duration) *TokenCache {
	if ring == nil {
		ring = NewConsistentHashRing(nil, 0)
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &TokenCache{
		redis: redis,
		ring:  ring,
		ttl:   ttl,
	}
}

func (c *TokenCache) cacheKey(token string) string {
	node := c.ring.GetNode(token)
	sum := sha1.Sum([]byte(token))
	return fmt.Sprintf("auth:jwt:%s:%s", node, hex.EncodeToString(sum[:]))
}

// Get tries to hit the cached claims for a raw token.
func (c *TokenCache) Get(ctx context.Context, token string) (*Claims, bool, error) {
	if c.redis == nil {
		return nil, false, nil
	}
	key := c.cacheKey(token)
	var raw string
	if err := c.redis.Do(radix.Cmd(&raw, "GET", key)); err != nil {
		return nil, false, err
	}
	if raw == "" {
		return nil, false, nil
	}
	var claims Claims
	if err := json.Unmarshal([]byte(raw), &claims); err != nil {
		// corrupt entry, drop it and fall through to a normal parse
		_ = c.redis.Do(radix.Cmd(nil, "DEL", key))
		return nil, false, nil
	}
	return &claims, true, nil
}

// entryTTL caps the cache TTL at the token's remaining validity so an
// entry can never outlive the token it was parsed from.
func (c *TokenCache) entryTTL(claims *Claims, now time.Time) time.Duration {
	ttl := c.ttl
	if claims.ExpiresAt != nil {
		if remaining := claims.ExpiresAt.Sub(now); remaining < ttl {
			ttl = remaining
		}
	}
	return ttl
}

// Set stores parsed claims under the token's cache key. Tokens within a
// second of expiry are not worth caching.
func (c *TokenCache) Set(ctx context.Context, token string, claims *Claims) error {
	if c.redis == nil || claims == nil {
		return nil
	}
	ttl := c.entryTTL(claims, time.Now())
	if ttl < time.Second {
		return nil
	}
	key := c.cacheKey(token)
	body, _ := json.Marshal(claims)
	if err := c.redis.Do(radix.FlatCmd(nil, "SETEX", key, int64(ttl/time.Second), body)); err != nil {
		return err
	}
	return nil
}

// Delete evicts the entry for a token, if any.
func (c *TokenCache) Delete(ctx context.Context, token string) error {
	if c.redis == nil {
		return nil
	}
	return c.redis.Do(radix.Cmd(nil, "DEL", c.cacheKey(token)))
}
