package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/luma/gallery/internal/api/metrics"
	"github.com/luma/gallery/internal/core/domain"
	"github.com/luma/gallery/internal/core/ports"
)

const collectionUsers = "users"

// UserService implements the user collection use cases. It applies no
// validation: any object is stored as received.
type UserService struct {
	repo   ports.UserRepository
	ids    ports.IDGenerator
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, ids ports.IDGenerator, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, ids: ids, logger: logger}
}

// ListUsers returns every user in storage order. Storage failures degrade to
// an empty list.
func (s *UserService) ListUsers(ctx context.Context) []domain.Document {
	users, err := s.repo.List(ctx)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(collectionUsers, "list").Inc()
		s.logger.Warn().Err(err).Msg("failed to list users, returning empty collection")
		return []domain.Document{}
	}
	if users == nil {
		return []domain.Document{}
	}
	return users
}

// CreateUser stores fields as a new user. The id is always assigned here,
// whatever the caller sent.
func (s *UserService) CreateUser(ctx context.Context, fields domain.Document) (domain.Document, error) {
	user := fields.WithID(s.ids.Next())

	if err := s.repo.Append(ctx, user); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(collectionUsers, "insert").Inc()
		s.logger.Error().Err(err).Msg("failed to create user")
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordsWrittenTotal.WithLabelValues(collectionUsers, "insert").Inc()
	s.logger.Info().Interface("id", user[domain.FieldID]).Msg("user created")
	return user, nil
}

// UpdateUser shallow-merges patch over the user with the given id. An id key
// inside patch is merged like any other field.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch domain.Document) (domain.Document, error) {
	updated, err := s.repo.Merge(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.RecordsNotFoundTotal.WithLabelValues(collectionUsers).Inc()
			s.logger.Debug().Int64("id", id).Msg("user not found")
			return nil, err
		}
		metrics.StoreErrorsTotal.WithLabelValues(collectionUsers, "update").Inc()
		s.logger.Error().Err(err).Int64("id", id).Msg("failed to update user")
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}

	metrics.RecordsWrittenTotal.WithLabelValues(collectionUsers, "update").Inc()
	s.logger.Info().Int64("id", id).Int("fields", len(patch)).Msg("user updated")
	return updated, nil
}
