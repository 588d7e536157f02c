package ports

import (
	"context"

	"github.com/luma/gallery/internal/core/domain"
)

// IDGenerator hands out record ids.
type IDGenerator interface {
	Next() int64
}

// UserService defines the user collection use cases.
type UserService interface {
	ListUsers(ctx context.Context) []domain.Document
	CreateUser(ctx context.Context, fields domain.Document) (domain.Document, error)
	UpdateUser(ctx context.Context, id int64, patch domain.Document) (domain.Document, error)
}

// ArtworkService defines the artwork collection use cases.
type ArtworkService interface {
	ListArtworks(ctx context.Context) []domain.Document
	CreateArtwork(ctx context.Context, fields domain.Document) (domain.Document, error)
	DeleteArtwork(ctx context.Context, id int64) error
}
