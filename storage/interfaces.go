package storage

import (
	"context"

	"github.com/poiesic/sollex/core"
)

// EntryRepository provides operations for a vector store collection.
// Implementations must be thread-safe and support concurrent access.
type EntryRepository interface {
	// Upsert stores one or more entries.
	// For entries with Id=0, derives the content-based ID from the chunk.
	// A re-inserted entry keeps its original Seq and InsertedAt, so
	// re-ingesting an unchanged corpus is a no-op at the ranking level.
	Upsert(ctx context.Context, entries ...*core.Entry) error

	// FindNearest returns the k entries most similar to the query vector,
	// ordered by cosine similarity descending. Equal scores are broken by
	// Seq ascending (insertion order). An empty collection yields an empty
	// result, not an error.
	FindNearest(ctx context.Context, vector []float32, k int) ([]*core.ScoredEntry, error)

	// Count returns the number of entries in the collection.
	Count(ctx context.Context) (int, error)

	// Close releases repository resources. It does not close the
	// underlying backend, which may be shared.
	Close() error
}
