package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/luma/gallery/internal/core/domain"
)

// ArtworkRepository implements ports.ArtworkRepository using MongoDB. Newer
// records carry a higher _seq and are listed first.
type ArtworkRepository struct {
	col *mongo.Collection
}

func (r *ArtworkRepository) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := listSorted(ctx, r.col, -1)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}
	return docs, nil
}

func (r *ArtworkRepository) Prepend(ctx context.Context, doc domain.Document) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := toBSON(doc)
	m[fieldSeq] = nextSeq()
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert artwork: %w", err)
	}
	return nil
}

func (r *ArtworkRepository) DeleteByID(ctx context.Context, id int64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"id": id})
	if err != nil {
		return 0, fmt.Errorf("delete artwork: %w", err)
	}
	return int(res.DeletedCount), nil
}
