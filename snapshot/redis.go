package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTTL keeps abandoned snapshots from accumulating forever.
const defaultTTL = 30 * 24 * time.Hour

// RedisStore is a redis-backed Store for deployments where the arena
// fronts multiple stations behind one storage service.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL sets the time-to-live for stored documents. Zero disables
// expiration.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix. Default is "arena".
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a redis-backed store.
//
// Example:
//
//	store := NewRedisStore(
//	    redis.NewClient(&redis.Options{Addr: "localhost:6379"}),
//	    WithPrefix("arena:station-1"),
//	)
func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	store := &RedisStore{
		client: client,
		prefix: "arena",
		ttl:    defaultTTL,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *RedisStore) sessionKey() string {
	return s.prefix + ":snapshot"
}

func (s *RedisStore) credsKey() string {
	return s.prefix + ":credentials"
}

func (s *RedisStore) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, key string, out any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// SaveSession overwrites the stored session snapshot.
func (s *RedisStore) SaveSession(ctx context.Context, snap *SessionSnapshot) error {
	if snap == nil {
		return ErrInvalidSnapshot
	}
	return s.set(ctx, s.sessionKey(), snap)
}

// LoadSession retrieves the stored snapshot.
func (s *RedisStore) LoadSession(ctx context.Context) (*SessionSnapshot, error) {
	var snap SessionSnapshot
	if err := s.get(ctx, s.sessionKey(), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// SaveCredentials overwrites the stored credentials.
func (s *RedisStore) SaveCredentials(ctx context.Context, creds *Credentials) error {
	if creds == nil {
		return ErrInvalidSnapshot
	}
	return s.set(ctx, s.credsKey(), creds)
}

// LoadCredentials retrieves stored credentials.
func (s *RedisStore) LoadCredentials(ctx context.Context) (*Credentials, error) {
	var creds Credentials
	if err := s.get(ctx, s.credsKey(), &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// ClearCredentials removes stored credentials.
func (s *RedisStore) ClearCredentials(ctx context.Context) error {
	if err := s.client.Del(ctx, s.credsKey()).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
