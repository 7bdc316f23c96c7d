// Package session provides the Redis-backed bearer token store.
// Tokens are opaque strings issued at registration/login and revoked at
// logout; each live token resolves to exactly one user.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockroom/stockroom/internal/auth"
	"github.com/stockroom/stockroom/internal/model"
)

// sessionKeyPrefix is the Redis key prefix for session entries.
const sessionKeyPrefix = "session:"

// ErrTokenNotFound indicates the token is unknown, expired or revoked.
var ErrTokenNotFound = errors.New("token not found")

// Store provides access to the session token store.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Store with a Redis client.
// ttl bounds how long an issued token stays valid; zero means no expiry.
func New(ctx context.Context, redisURL string, ttl time.Duration) (*Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Connection pool settings
	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Store{client: client, ttl: ttl}, nil
}

// Ping checks Redis connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Client exposes the underlying Redis client for test helpers.
func (s *Store) Client() *redis.Client {
	return s.client
}

// storedSession is the JSON payload persisted per token digest.
type storedSession struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Issue stores a session for the given plaintext token.
// Only the SHA-256 digest of the token is used as the key.
func (s *Store) Issue(ctx context.Context, token string, user *model.User) error {
	data, err := json.Marshal(storedSession{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	key := sessionKeyPrefix + auth.TokenDigest(token)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Resolve looks up the user bound to the given plaintext token.
// Returns ErrTokenNotFound for unknown, expired or revoked tokens.
func (s *Store) Resolve(ctx context.Context, token string) (*model.AuthContext, error) {
	key := sessionKeyPrefix + auth.TokenDigest(token)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		// Corrupted entry - treat as revoked.
		return nil, ErrTokenNotFound
	}

	return &model.AuthContext{
		UserID: stored.UserID,
		Email:  stored.Email,
	}, nil
}

// Revoke deletes the session for the given plaintext token.
// Revoking an already-revoked token is not an error.
func (s *Store) Revoke(ctx context.Context, token string) error {
	key := sessionKeyPrefix + auth.TokenDigest(token)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
