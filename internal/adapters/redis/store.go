// Package redis provides Redis-backed adapters for preview-session
// persistence and cross-replica locking.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/vitrinehq/vitrine/pkg/domain"
)

const defaultPrefix = "vitrine:preview:"

// SnapshotStore implements ports.SnapshotStore on Redis. Sessions are
// stored as JSON under a prefixed key, with a ZSET index for listing.
type SnapshotStore struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*SnapshotStore)

// WithTTL sets the expiration for stored sessions. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(s *SnapshotStore) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored sessions.
func WithPrefix(prefix string) Option {
	return func(s *SnapshotStore) {
		s.prefix = prefix
	}
}

// New creates a Redis snapshot store with its own client.
func New(address, password string, db int, opts ...Option) *SnapshotStore {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis snapshot store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *SnapshotStore {
	store := &SnapshotStore{
		client: client,
		prefix: defaultPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *SnapshotStore) key(id string) string {
	return s.prefix + id
}

func (s *SnapshotStore) indexKey() string {
	return s.prefix + "index"
}

// Save persists the session as JSON and registers it in the index.
func (s *SnapshotStore) Save(ctx context.Context, session *domain.PreviewSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Index score doubles as the expiry moment for lazy pruning in List.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01, effectively never
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(session.ID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: session.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves a session by ID.
func (s *SnapshotStore) Load(ctx context.Context, id string) (*domain.PreviewSession, error) {
	val, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var session domain.PreviewSession
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session and its index entry.
func (s *SnapshotStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(id))
	pipe.ZRem(ctx, s.indexKey(), id)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns session IDs, lazily pruning expired index entries first.
func (s *SnapshotStore) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired sessions: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// Client exposes the underlying client for adapters sharing the
// connection, such as the Locker.
func (s *SnapshotStore) Client() *backend.Client {
	return s.client
}

// Close closes the underlying client.
func (s *SnapshotStore) Close() error {
	return s.client.Close()
}
