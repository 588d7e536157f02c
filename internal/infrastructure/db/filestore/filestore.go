// Package filestore keeps each record collection as one JSON array file in a
// data directory. Every mutation rewrites the whole file.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/luma/gallery/internal/core/domain"
)

const (
	usersFile = "users.json"
	artFile   = "art.json"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Store owns the data directory and both collections.
type Store struct {
	dir   string
	users *Collection
	art   *Collection
}

// Open creates dir and the collection files when they are missing (the artwork
// file starts with the seed records, the user file empty) and loads both
// collections into memory.
func Open(dir string, logger zerolog.Logger) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: resolve %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, dirPerm); err != nil {
		return nil, fmt.Errorf("filestore: create %s: %w", abs, err)
	}

	usersPath := filepath.Join(abs, usersFile)
	artPath := filepath.Join(abs, artFile)

	if err := createIfMissing(usersPath, []domain.Document{}); err != nil {
		return nil, err
	}
	if err := createIfMissing(artPath, domain.SeedArtworks()); err != nil {
		return nil, err
	}

	return &Store{
		dir:   abs,
		users: openCollection(usersPath, logger),
		art:   openCollection(artPath, logger),
	}, nil
}

// Location is the absolute data directory.
func (s *Store) Location() string { return s.dir }

// Ping checks that the data directory still accepts writes.
func (s *Store) Ping(_ context.Context) error {
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("filestore: data dir not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// Users returns the user repository.
func (s *Store) Users() *UserRepository { return &UserRepository{c: s.users} }

// Artworks returns the artwork repository.
func (s *Store) Artworks() *ArtworkRepository { return &ArtworkRepository{c: s.art} }

func createIfMissing(path string, initial []domain.Document) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("filestore: stat %s: %w", path, err)
	}
	return writeFile(path, initial)
}

// Collection is one in-memory record collection backed by a file. The mutex
// is the single writer for the file: every mutation reads, changes and
// rewrites the collection while holding it.
type Collection struct {
	mu     sync.Mutex
	path   string
	docs   []domain.Document
	logger zerolog.Logger
}

func openCollection(path string, logger zerolog.Logger) *Collection {
	c := &Collection{
		path:   path,
		logger: logger.With().Str("collection", filepath.Base(path)).Logger(),
	}
	c.docs = c.load()
	return c
}

// load reads the file. Anything unreadable is treated as an empty collection.
func (c *Collection) load() []domain.Document {
	data, err := os.ReadFile(c.path)
	if err != nil {
		c.logger.Warn().Err(err).Msg("collection unreadable, starting empty")
		return []domain.Document{}
	}
	docs, err := domain.DecodeDocuments(data)
	if err != nil {
		c.logger.Warn().Err(err).Msg("collection is not a JSON array of objects, starting empty")
		return []domain.Document{}
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	return docs
}

// Snapshot returns a copy of the collection safe for the caller to keep.
func (c *Collection) Snapshot() []domain.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneAll(c.docs)
}

// Mutate applies fn to a copy of the collection and rewrites the file with
// the result. The in-memory collection only changes once the write succeeds.
func (c *Collection) Mutate(fn func([]domain.Document) ([]domain.Document, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := fn(cloneAll(c.docs))
	if err != nil {
		return err
	}
	if next == nil {
		next = []domain.Document{}
	}
	if err := writeFile(c.path, next); err != nil {
		return err
	}
	c.docs = next
	return nil
}

// writeFile serialises docs as a 2-space indented array into a temp file in
// the same directory and renames it over path.
func writeFile(path string, docs []domain.Document) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("filestore: encode %s: %w", filepath.Base(path), err)
	}
	data := bytes.TrimRight(buf.Bytes(), "\n")

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("filestore: write %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("filestore: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("filestore: write %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("filestore: write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("filestore: replace %s: %w", path, err)
	}
	return nil
}

func cloneAll(docs []domain.Document) []domain.Document {
	out := make([]domain.Document, len(docs))
	for i, d := range docs {
		out[i] = d.Clone()
	}
	return out
}
