package auth

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/booking-service/internal/domain"
)

const sessionCacheTTL = 5 * time.Minute

// SessionCache is a Redis look-aside cache in front of the sessions table.
// Each cached token hash is also tracked in a per-account set so that
// revoking every session for an account can evict all of its entries, not
// just the one whose token the caller presented.
type SessionCache struct {
	client *redis.Client
}

// NewSessionCache wraps a redis client; client may be nil, in which case
// every lookup misses.
func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client}
}

// Get returns the cached session identity for a token hash.
func (c *SessionCache) Get(ctx context.Context, tokenHash string) (sessionID, accountID string, ok bool) {
	if c == nil || c.client == nil {
		return "", "", false
	}
	val, err := c.client.Get(ctx, tokenKey(tokenHash)).Result()
	if err != nil {
		return "", "", false
	}
	sessionID, accountID, found := strings.Cut(val, "|")
	if !found || sessionID == "" || accountID == "" {
		return "", "", false
	}
	return sessionID, accountID, true
}

// Put caches a session under its token hash.
func (c *SessionCache) Put(ctx context.Context, tokenHash string, session *domain.Session) {
	if c == nil || c.client == nil {
		return
	}
	ttl := sessionCacheTTL
	if remaining := time.Until(session.ExpiresAt); remaining < ttl {
		ttl = remaining
	}
	if ttl <= 0 {
		return
	}
	pipe := c.client.Pipeline()
	pipe.Set(ctx, tokenKey(tokenHash), session.ID+"|"+session.AccountID, ttl)
	pipe.SAdd(ctx, accountKey(session.AccountID), tokenHash)
	pipe.Expire(ctx, accountKey(session.AccountID), ttl)
	_, _ = pipe.Exec(ctx)
}

// DropToken evicts a single cached session.
func (c *SessionCache) DropToken(ctx context.Context, tokenHash, accountID string) {
	if c == nil || c.client == nil {
		return
	}
	pipe := c.client.Pipeline()
	pipe.Del(ctx, tokenKey(tokenHash))
	pipe.SRem(ctx, accountKey(accountID), tokenHash)
	_, _ = pipe.Exec(ctx)
}

// DropAccount evicts every cached session for an account. Called when a
// login revokes all prior tokens.
func (c *SessionCache) DropAccount(ctx context.Context, accountID string) {
	if c == nil || c.client == nil {
		return
	}
	hashes, err := c.client.SMembers(ctx, accountKey(accountID)).Result()
	if err != nil {
		return
	}
	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, tokenKey(hash))
	}
	keys = append(keys, accountKey(accountID))
	_ = c.client.Del(ctx, keys...).Err()
}

func tokenKey(tokenHash string) string {
	return "session:" + tokenHash
}

func accountKey(accountID string) string {
	return "account_sessions:" + accountID
}
