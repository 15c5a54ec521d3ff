package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/stepedge/concierge/pkg/domain"
)

// Store implements ports.SessionStore using Redis, for deployments where
// conversations must survive a process restart or be shared across replicas.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration for sessions.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "concierge:session:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the session to Redis as JSON, refreshing the TTL and the
// session index.
func (s *Store) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sessionID), data, s.ttl)

	// Index score = expiry time, so List can prune lazily. TTL 0 gets a
	// far-future sentinel.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: sessionID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the session from Redis.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete removes the session and its index entry.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(sessionID))
	pipe.ZRem(ctx, s.indexKey(), sessionID)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns active sessions, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired sessions: %w", err)
	}

	sessions, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
