package filestore

import (
	"context"

	"github.com/luma/gallery/internal/core/domain"
)

// UserRepository implements ports.UserRepository on a file collection.
type UserRepository struct {
	c *Collection
}

func (r *UserRepository) List(_ context.Context) ([]domain.Document, error) {
	return r.c.Snapshot(), nil
}

func (r *UserRepository) Append(_ context.Context, doc domain.Document) error {
	return r.c.Mutate(func(users []domain.Document) ([]domain.Document, error) {
		return append(users, doc.Clone()), nil
	})
}

// Merge updates the first user with a matching id. On ErrUserNotFound the
// file is not touched.
func (r *UserRepository) Merge(_ context.Context, id int64, patch domain.Document) (domain.Document, error) {
	var updated domain.Document
	err := r.c.Mutate(func(users []domain.Document) ([]domain.Document, error) {
		for i, u := range users {
			if uid, ok := u.ID(); ok && uid == id {
				users[i] = u.Merge(patch)
				updated = users[i].Clone()
				return users, nil
			}
		}
		return nil, domain.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
