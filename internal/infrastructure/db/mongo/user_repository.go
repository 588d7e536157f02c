package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luma/gallery/internal/core/domain"
)

// UserRepository implements ports.UserRepository using MongoDB. Users are
// listed in insertion order.
type UserRepository struct {
	col *mongo.Collection
}

func (r *UserRepository) List(ctx context.Context) ([]domain.Document, error) {
	docs, err := listSorted(ctx, r.col, 1)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return docs, nil
}

func (r *UserRepository) Append(ctx context.Context, doc domain.Document) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m := toBSON(doc)
	m[fieldSeq] = nextSeq()
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// Merge overlays patch on the oldest user with the given id and writes the
// whole record back. Patch keys are plain top-level field names: dots and a
// leading $ are stored literally, never read as paths or operators.
func (r *UserRepository) Merge(ctx context.Context, id int64, patch domain.Document) (domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var raw bson.M
	opts := options.FindOne().SetSort(bson.D{{Key: fieldSeq, Value: 1}})
	if err := r.col.FindOne(ctx, bson.M{"id": id}, opts).Decode(&raw); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	current := fromBSON(raw)
	if len(patch) == 0 {
		return current, nil
	}
	merged := current.Merge(patch)

	replacement := toBSON(merged)
	replacement[fieldObjectID] = raw[fieldObjectID]
	replacement[fieldSeq] = raw[fieldSeq]

	// $literal keeps the server from parsing field names in the replacement.
	update := mongo.Pipeline{
		{{Key: "$replaceWith", Value: bson.D{{Key: "$literal", Value: replacement}}}},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{fieldObjectID: raw[fieldObjectID]}, update)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return merged, nil
}
