package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hireboard/hireboard/internal/model"
)

const (
	// sessionPrefix is the Redis key prefix for sessions.
	sessionPrefix = "session:"
)

// ErrSessionNotFound indicates the token resolves to no active session.
var ErrSessionNotFound = errors.New("session not found")

// sessionKey builds the Redis key for a hashed session token.
// Callers pass the token hash, never the plaintext token.
func sessionKey(tokenHash string) string {
	return sessionPrefix + tokenHash
}

// SetSession stores a session under the hashed token with the given TTL.
func (c *Cache) SetSession(ctx context.Context, tokenHash string, session *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return c.client.Set(ctx, sessionKey(tokenHash), data, ttl).Err()
}

// GetSession retrieves a session by hashed token.
// Returns ErrSessionNotFound for unknown or expired tokens.
func (c *Cache) GetSession(ctx context.Context, tokenHash string) (*model.Session, error) {
	data, err := c.client.Get(ctx, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		// Corrupted entry - treat as missing so the client re-authenticates.
		return nil, ErrSessionNotFound
	}

	return &session, nil
}

// DeleteSession removes a session. Used by logout for immediate revocation.
func (c *Cache) DeleteSession(ctx context.Context, tokenHash string) error {
	return c.client.Del(ctx, sessionKey(tokenHash)).Err()
}
