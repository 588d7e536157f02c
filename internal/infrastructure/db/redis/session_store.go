package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned by Load when nothing is stored under the key.
var ErrNoSession = errors.New("no stored session")

// SessionStore keeps one serialized session under a fixed key.
// Key format: <prefix>luma_session
type SessionStore struct {
	client *redis.Client
	key    string
}

// NewSessionStore stores the session under prefix+key.
func NewSessionStore(client *redis.Client, prefix, key string) *SessionStore {
	return &SessionStore{client: client, key: prefix + key}
}

// Load returns the stored bytes or ErrNoSession.
func (s *SessionStore) Load(ctx context.Context) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}
	return b, nil
}

// Save overwrites the stored session. It never expires.
func (s *SessionStore) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}

// Key is the full redis key the session lives under.
func (s *SessionStore) Key() string { return s.key }

func (s *SessionStore) Close() error { return s.client.Close() }
