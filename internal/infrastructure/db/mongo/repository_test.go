package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/luma/gallery/internal/core/domain"
)

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func record(id, seq int64, fields ...bson.E) bson.D {
	d := bson.D{
		{Key: fieldObjectID, Value: primitive.NewObjectID()},
		{Key: "id", Value: id},
	}
	d = append(d, fields...)
	return append(d, bson.E{Key: fieldSeq, Value: seq})
}

// startedCommand pops the next command sent to the mock deployment.
func startedCommand(mt *mtest.T, name string) bson.Raw {
	mt.Helper()
	evt := mt.GetStartedEvent()
	if evt == nil {
		mt.Fatalf("expected a %s command, none was sent", name)
	}
	if evt.CommandName != name {
		mt.Fatalf("expected a %s command, got %s", name, evt.CommandName)
	}
	return evt.Command
}

func TestUserRepository_ListInInsertionOrder(t *testing.T) {
	mt := newMock(t)

	mt.Run("sorted by sequence ascending", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "luma.users", mtest.FirstBatch,
			record(1, 10, bson.E{Key: "name", Value: "Ann"}),
			record(2, 20, bson.E{Key: "name", Value: "Bob"}),
		))

		repo := &UserRepository{col: mt.Coll}
		docs, err := repo.List(context.Background())
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}

		if got := startedCommand(mt, "find").Lookup("sort", fieldSeq).AsInt64(); got != 1 {
			mt.Fatalf("expected ascending sort on %s, got %d", fieldSeq, got)
		}
		if len(docs) != 2 || docs[0]["name"] != "Ann" || docs[1]["name"] != "Bob" {
			mt.Fatalf("unexpected docs %+v", docs)
		}
		if docs[0]["id"] != json.Number("1") {
			mt.Fatalf("id = %#v, want json.Number(1)", docs[0]["id"])
		}
		for _, k := range []string{fieldObjectID, fieldSeq} {
			if _, ok := docs[0][k]; ok {
				mt.Fatalf("internal field %s leaked: %+v", k, docs[0])
			}
		}
	})
}

func TestArtworkRepository_ListNewestFirst(t *testing.T) {
	mt := newMock(t)

	mt.Run("sorted by sequence descending", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "luma.art", mtest.FirstBatch,
			record(9, 30, bson.E{Key: "title", Value: "New"}),
			record(1, 2, bson.E{Key: "title", Value: "Cyber Punk City"}),
		))

		repo := &ArtworkRepository{col: mt.Coll}
		docs, err := repo.List(context.Background())
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}

		if got := startedCommand(mt, "find").Lookup("sort", fieldSeq).AsInt64(); got != -1 {
			mt.Fatalf("expected descending sort on %s, got %d", fieldSeq, got)
		}
		if len(docs) != 2 || docs[0]["title"] != "New" {
			mt.Fatalf("unexpected docs %+v", docs)
		}
	})

	mt.Run("server error is wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 2, Name: "BadValue", Message: "boom",
		}))

		repo := &ArtworkRepository{col: mt.Coll}
		if _, err := repo.List(context.Background()); err == nil {
			mt.Fatal("expected error")
		}
	})
}

func TestUserRepository_AppendStampsSequence(t *testing.T) {
	mt := newMock(t)

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))

		repo := &UserRepository{col: mt.Coll}
		doc := domain.Document{"id": json.Number("5"), "name": "Ann", fieldSeq: json.Number("1")}
		if err := repo.Append(context.Background(), doc); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}

		inserted := startedCommand(mt, "insert").Lookup("documents", "0").Document()
		if got := inserted.Lookup("id").AsInt64(); got != 5 {
			mt.Fatalf("id = %d, want 5", got)
		}
		if got := inserted.Lookup(fieldSeq).AsInt64(); got <= 1 {
			mt.Fatalf("expected a fresh sequence, got %d", got)
		}
	})
}

func TestUserRepository_Merge(t *testing.T) {
	mt := newMock(t)

	mt.Run("missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "luma.users", mtest.FirstBatch))

		repo := &UserRepository{col: mt.Coll}
		_, err := repo.Merge(context.Background(), 404, domain.Document{"name": "x"})
		if !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	mt.Run("keys are stored as literal top-level fields", func(mt *mtest.T) {
		stored := record(5, 7,
			bson.E{Key: "name", Value: "Ann"},
			bson.E{Key: "phone", Value: "555"},
		)
		oid := stored[0].Value.(primitive.ObjectID)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "luma.users", mtest.FirstBatch, stored),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: int32(1)},
				bson.E{Key: "nModified", Value: int32(1)},
			),
		)

		repo := &UserRepository{col: mt.Coll}
		merged, err := repo.Merge(context.Background(), 5, domain.Document{
			"name": "Anne",
			"a.b":  json.Number("1"),
			"$x":   "y",
		})
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if merged["name"] != "Anne" || merged["phone"] != "555" || merged["a.b"] != json.Number("1") || merged["$x"] != "y" {
			mt.Fatalf("unexpected merge result %+v", merged)
		}

		find := startedCommand(mt, "find")
		if got := find.Lookup("sort", fieldSeq).AsInt64(); got != 1 {
			mt.Fatalf("expected the oldest match, sort = %d", got)
		}

		update := startedCommand(mt, "update").Lookup("updates", "0").Document()
		if got := update.Lookup("q", fieldObjectID).ObjectID(); got != oid {
			mt.Fatalf("expected update by _id %s, got %s", oid.Hex(), got.Hex())
		}
		replacement := update.Lookup("u", "0", "$replaceWith", "$literal").Document()
		if got := replacement.Lookup("a.b").AsInt64(); got != 1 {
			mt.Fatalf(`"a.b" = %d, want 1`, got)
		}
		if _, err := replacement.LookupErr("a"); err == nil {
			mt.Fatal(`"a.b" must not be expanded into a nested path`)
		}
		if got := replacement.Lookup("$x").StringValue(); got != "y" {
			mt.Fatalf(`"$x" = %q, want y`, got)
		}
		if got := replacement.Lookup(fieldSeq).AsInt64(); got != 7 {
			mt.Fatalf("sequence must be kept, got %d", got)
		}
	})

	mt.Run("empty patch only reads", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "luma.users", mtest.FirstBatch,
			record(5, 7, bson.E{Key: "name", Value: "Ann"}),
		))

		repo := &UserRepository{col: mt.Coll}
		got, err := repo.Merge(context.Background(), 5, domain.Document{})
		if err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if got["name"] != "Ann" {
			mt.Fatalf("unexpected record %+v", got)
		}
		if n := len(mt.GetAllStartedEvents()); n != 1 {
			mt.Fatalf("expected only the find, got %d commands", n)
		}
	})

	mt.Run("record removed between read and write", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "luma.users", mtest.FirstBatch, record(5, 7)),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: int32(0)},
				bson.E{Key: "nModified", Value: int32(0)},
			),
		)

		repo := &UserRepository{col: mt.Coll}
		_, err := repo.Merge(context.Background(), 5, domain.Document{"name": "x"})
		if !errors.Is(err, domain.ErrUserNotFound) {
			mt.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestArtworkRepository_DeleteIsIdempotent(t *testing.T) {
	mt := newMock(t)

	mt.Run("second delete removes nothing", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(2)}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}),
		)

		repo := &ArtworkRepository{col: mt.Coll}
		n, err := repo.DeleteByID(context.Background(), 7)
		if err != nil || n != 2 {
			mt.Fatalf("first delete = %d, %v; want 2, nil", n, err)
		}
		n, err = repo.DeleteByID(context.Background(), 7)
		if err != nil || n != 0 {
			mt.Fatalf("second delete = %d, %v; want 0, nil", n, err)
		}

		del := startedCommand(mt, "delete").Lookup("deletes", "0").Document()
		if got := del.Lookup("q", "id").AsInt64(); got != 7 {
			mt.Fatalf("filter id = %d, want 7", got)
		}
		if got := del.Lookup("limit").AsInt64(); got != 0 {
			mt.Fatalf("expected a multi-document delete, limit = %d", got)
		}
	})
}

func TestNewStore_Bootstrap(t *testing.T) {
	mt := newMock(t)

	mt.Run("existing art collection is left alone", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "luma.$cmd.listCollections", mtest.FirstBatch,
			bson.D{{Key: "name", Value: collectionArt}, {Key: "type", Value: "collection"}},
		))

		if _, err := NewStore(context.Background(), mt.DB); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
		if n := len(mt.GetAllStartedEvents()); n != 1 {
			mt.Fatalf("expected only listCollections, got %d commands", n)
		}
	})

	mt.Run("fresh database is seeded newest first", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "luma.$cmd.listCollections", mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(2)}),
			mtest.CreateSuccessResponse(),
			mtest.CreateSuccessResponse(),
		)

		if _, err := NewStore(context.Background(), mt.DB); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}

		startedCommand(mt, "listCollections")
		insert := startedCommand(mt, "insert")
		if got := insert.Lookup("insert").StringValue(); got != collectionArt {
			mt.Fatalf("seeded collection = %q, want %q", got, collectionArt)
		}
		first := insert.Lookup("documents", "0").Document()
		second := insert.Lookup("documents", "1").Document()
		if first.Lookup("title").StringValue() != "Cyber Punk City" {
			mt.Fatalf("unexpected first seed %s", first)
		}
		if first.Lookup(fieldSeq).AsInt64() <= second.Lookup(fieldSeq).AsInt64() {
			mt.Fatal("first seed record must list before the second")
		}
		startedCommand(mt, "createIndexes")
		startedCommand(mt, "createIndexes")
	})
}

func TestStore_Ping(t *testing.T) {
	mt := newMock(t)

	mt.Run("ok", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		s := &Store{db: mt.DB}
		if err := s.Ping(context.Background()); err != nil {
			mt.Fatalf("unexpected error: %v", err)
		}
	})

	mt.Run("failure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 13, Name: "Unauthorized", Message: "not authorized",
		}))
		s := &Store{db: mt.DB}
		if err := s.Ping(context.Background()); err == nil {
			mt.Fatal("expected error")
		}
	})
}
