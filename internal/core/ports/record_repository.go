package ports

import (
	"context"

	"github.com/luma/gallery/internal/core/domain"
)

// UserRepository persists the user collection in storage order.
type UserRepository interface {
	// List returns every user. Unreadable or absent storage is an empty list.
	List(ctx context.Context) ([]domain.Document, error)
	// Append adds doc at the end of the collection.
	Append(ctx context.Context, doc domain.Document) error
	// Merge shallow-merges patch over the first user whose id matches and
	// returns the result, or domain.ErrUserNotFound.
	Merge(ctx context.Context, id int64, patch domain.Document) (domain.Document, error)
}

// ArtworkRepository persists the artwork collection, newest first.
type ArtworkRepository interface {
	List(ctx context.Context) ([]domain.Document, error)
	// Prepend adds doc at the front of the collection.
	Prepend(ctx context.Context, doc domain.Document) error
	// DeleteByID removes every artwork with the given id and reports how many
	// were removed. Removing nothing is not an error.
	DeleteByID(ctx context.Context, id int64) (int, error)
}

// Store is the backend both repositories live in.
type Store interface {
	// Location is reported by the health probe: a directory or database name.
	Location() string
	Ping(ctx context.Context) error
}
