// Package session persists the logged-in user between client runs.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/luma/gallery/internal/core/domain"
	redisdb "github.com/luma/gallery/internal/infrastructure/db/redis"
)

// Key names the stored session.
const Key = "luma_session"

// Backend holds the serialized session. Load returns nil, nil when nothing
// is stored.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// Store reads and writes the session user through a Backend.
type Store struct {
	backend Backend
	logger  zerolog.Logger
}

func NewStore(backend Backend, logger zerolog.Logger) *Store {
	return &Store{backend: backend, logger: logger}
}

// Get returns the stored user, or nil when there is none. A stored null and a
// session that no longer decodes are both treated as absent.
func (s *Store) Get(ctx context.Context) (*domain.User, error) {
	data, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.logger.Warn().Err(err).Msg("discarding unreadable session")
		return nil, nil
	}
	return &u, nil
}

func (s *Store) Set(ctx context.Context, u domain.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.backend.Save(ctx, data)
}

func (s *Store) Clear(ctx context.Context) error {
	return s.backend.Clear(ctx)
}

// RedisBackend adapts the redis session store to Backend.
type RedisBackend struct {
	store *redisdb.SessionStore
}

func NewRedisBackend(store *redisdb.SessionStore) *RedisBackend {
	return &RedisBackend{store: store}
}

func (b *RedisBackend) Load(ctx context.Context) ([]byte, error) {
	data, err := b.store.Load(ctx)
	if errors.Is(err, redisdb.ErrNoSession) {
		return nil, nil
	}
	return data, err
}

func (b *RedisBackend) Save(ctx context.Context, data []byte) error {
	return b.store.Save(ctx, data)
}

func (b *RedisBackend) Clear(ctx context.Context) error {
	return b.store.Clear(ctx)
}
