package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/luma/gallery/internal/api/metrics"
	"github.com/luma/gallery/internal/core/domain"
	"github.com/luma/gallery/internal/core/ports"
)

const collectionArt = "art"

// ArtworkService implements the artwork collection use cases.
type ArtworkService struct {
	repo   ports.ArtworkRepository
	ids    ports.IDGenerator
	logger zerolog.Logger
}

func NewArtworkService(repo ports.ArtworkRepository, ids ports.IDGenerator, logger zerolog.Logger) *ArtworkService {
	return &ArtworkService{repo: repo, ids: ids, logger: logger}
}

// ListArtworks returns every artwork, newest upload first.
func (s *ArtworkService) ListArtworks(ctx context.Context) []domain.Document {
	art, err := s.repo.List(ctx)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(collectionArt, "list").Inc()
		s.logger.Warn().Err(err).Msg("failed to list artworks, returning empty collection")
		return []domain.Document{}
	}
	if art == nil {
		return []domain.Document{}
	}
	return art
}

// CreateArtwork stores fields as a new artwork at the front of the collection.
func (s *ArtworkService) CreateArtwork(ctx context.Context, fields domain.Document) (domain.Document, error) {
	art := fields.WithID(s.ids.Next())

	if err := s.repo.Prepend(ctx, art); err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(collectionArt, "insert").Inc()
		s.logger.Error().Err(err).Msg("failed to create artwork")
		return nil, fmt.Errorf("create artwork: %w", err)
	}

	metrics.RecordsWrittenTotal.WithLabelValues(collectionArt, "insert").Inc()
	s.logger.Info().
		Interface("id", art[domain.FieldID]).
		Interface("artist", art["artist"]).
		Msg("artwork created")
	return art, nil
}

// DeleteArtwork removes every artwork with the given id. Deleting an id that
// is not present succeeds.
func (s *ArtworkService) DeleteArtwork(ctx context.Context, id int64) error {
	removed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		metrics.StoreErrorsTotal.WithLabelValues(collectionArt, "delete").Inc()
		s.logger.Error().Err(err).Int64("id", id).Msg("failed to delete artwork")
		return fmt.Errorf("delete artwork %d: %w", id, err)
	}

	if removed == 0 {
		metrics.RecordsNotFoundTotal.WithLabelValues(collectionArt).Inc()
	}
	metrics.RecordsWrittenTotal.WithLabelValues(collectionArt, "delete").Inc()
	s.logger.Info().Int64("id", id).Int("removed", removed).Msg("artwork deleted")
	return nil
}
