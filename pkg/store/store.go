// Package store persists tab documents.
//
// A [Document] is a named notation grid. Four backends implement [Store]:
//
//   - [MemoryStore]: process-local, for tests and throwaway servers
//   - [FileStore]: one JSON file per document, for the CLI
//   - [RedisStore]: shared key/value storage for several server instances
//   - [MongoStore]: a MongoDB collection
//
// [Open] picks a backend from configuration:
//
//	s, err := store.Open(ctx, cfg.Storage)
//	doc := store.NewDocument("intro riff", grid)
//	err = s.Put(ctx, doc)
package store

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/tabsmith/pkg/cache"
	"github.com/matzehuels/tabsmith/pkg/config"
	"github.com/matzehuels/tabsmith/pkg/errors"
	"github.com/matzehuels/tabsmith/pkg/tab"
)

// Document is a stored tab.
type Document struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Grid      tab.Grid  `json:"grid" bson:"grid"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewDocument returns a document with a fresh ID.
func NewDocument(name string, grid tab.Grid) *Document {
	now := time.Now().UTC()
	if grid == nil {
		grid = tab.Grid{}
	}
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		Grid:      grid,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch marks the document as modified now.
func (d *Document) Touch() { d.UpdatedAt = time.Now().UTC() }

// Store is the interface for document storage backends.
type Store interface {
	// Get retrieves a document by ID. A missing document is reported with
	// errors.ErrCodeDocumentNotFound.
	Get(ctx context.Context, id string) (*Document, error)

	// Put creates or replaces a document.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// List returns every document, most recently updated first.
	List(ctx context.Context) ([]*Document, error)

	Close() error
}

// Open returns the backend selected by cfg.
func Open(ctx context.Context, cfg config.Storage) (Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile, "":
		dir := cfg.Dir
		if dir == "" {
			d, err := config.DataDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return NewFileStore(dir)
	case config.BackendRedis:
		return NewRedisStore(ctx, cfg.RedisURL, cache.NewScopedKeyer(nil, "tabsmith:"))
	case config.BackendMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown storage backend %q", cfg.Backend)
	}
}

// Resolve finds a document by ID, then by exact name.
func Resolve(ctx context.Context, s Store, ref string) (*Document, error) {
	doc, err := s.Get(ctx, ref)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, errors.ErrCodeDocumentNotFound) {
		return nil, err
	}
	docs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.Name == ref {
			return d, nil
		}
	}
	return nil, notFound(ref)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeDocumentNotFound, "document %q not found", id)
}

func validate(doc *Document) error {
	if doc == nil || doc.ID == "" {
		return errors.New(errors.ErrCodeInvalidDocument, "document has no id")
	}
	return errors.ValidateDocumentName(doc.Name)
}

func sortByUpdated(docs []*Document) {
	slices.SortFunc(docs, func(a, b *Document) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}
