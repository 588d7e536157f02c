package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luma/gallery/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second

	collectionUsers = "users"
	collectionArt   = "art"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// Store keeps the user and artwork collections in one database.
type Store struct {
	db *mongo.Database
}

// NewStore wraps db and seeds the artwork collection the first time it is
// created.
func NewStore(ctx context.Context, db *mongo.Database) (*Store, error) {
	s := &Store{db: db}
	if err := s.bootstrap(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) bootstrap(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": collectionArt})
	if err != nil {
		return fmt.Errorf("mongo bootstrap: %w", err)
	}
	if len(names) > 0 {
		return nil
	}

	seed := domain.SeedArtworks()
	docs := make([]any, len(seed))
	for i, d := range seed {
		m := toBSON(d)
		// listed by _seq descending, so the first seed record gets the highest
		m[fieldSeq] = int64(len(seed) - i)
		docs[i] = m
	}
	if _, err := s.db.Collection(collectionArt).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("mongo seed artworks: %w", err)
	}

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: fieldSeq, Value: 1}}},
	}
	for _, name := range []string{collectionUsers, collectionArt} {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("mongo indexes %s: %w", name, err)
		}
	}
	return nil
}

// Location is the database name.
func (s *Store) Location() string { return "mongodb:" + s.db.Name() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// Users returns the user repository.
func (s *Store) Users() *UserRepository {
	return &UserRepository{col: s.db.Collection(collectionUsers)}
}

// Artworks returns the artwork repository.
func (s *Store) Artworks() *ArtworkRepository {
	return &ArtworkRepository{col: s.db.Collection(collectionArt)}
}

// nextSeq orders records by insertion time.
func nextSeq() int64 {
	return time.Now().UnixNano()
}

func listSorted(ctx context.Context, col *mongo.Collection, order int) ([]domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: fieldSeq, Value: order}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, fromBSON(m))
	}
	return docs, nil
}
