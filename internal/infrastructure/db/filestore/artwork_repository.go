package filestore

import (
	"context"

	"github.com/luma/gallery/internal/core/domain"
)

// ArtworkRepository implements ports.ArtworkRepository on a file collection.
type ArtworkRepository struct {
	c *Collection
}

func (r *ArtworkRepository) List(_ context.Context) ([]domain.Document, error) {
	return r.c.Snapshot(), nil
}

func (r *ArtworkRepository) Prepend(_ context.Context, doc domain.Document) error {
	return r.c.Mutate(func(art []domain.Document) ([]domain.Document, error) {
		return append([]domain.Document{doc.Clone()}, art...), nil
	})
}

// DeleteByID drops every matching artwork and rewrites the file even when
// nothing matched.
func (r *ArtworkRepository) DeleteByID(_ context.Context, id int64) (int, error) {
	removed := 0
	err := r.c.Mutate(func(art []domain.Document) ([]domain.Document, error) {
		kept := make([]domain.Document, 0, len(art))
		for _, a := range art {
			if aid, ok := a.ID(); ok && aid == id {
				removed++
				continue
			}
			kept = append(kept, a)
		}
		return kept, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
