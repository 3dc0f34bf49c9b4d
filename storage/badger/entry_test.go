package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/sollex/core"
	"github.com/poiesic/sollex/storage"
)

func makeEntry(text string, vector []float32) *core.Entry {
	return &core.Entry{
		Chunk: core.Chunk{
			Source: "corpus.txt",
			Page:   1,
			Index:  0,
			Text:   text,
		},
		Vector: vector,
	}
}

func TestEntryBasics(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	entry := makeEntry("Rent is due on the first of the month.", []float32{0.1, 0.2, 0.3})
	if err := repo.Upsert(ctx, entry); err != nil {
		t.Fatalf("Failed to upsert entry: %v", err)
	}

	if entry.Id == 0 {
		t.Fatal("Expected content-based ID to be derived")
	}
	if entry.Id != entry.Chunk.ContentID() {
		t.Fatalf("Expected ID %d, got %d", entry.Chunk.ContentID(), entry.Id)
	}
	if entry.InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 entry, got %d", count)
	}
}

func TestEntryUpsertIsIdempotent(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	first := makeEntry("Deposits are refundable.", []float32{1, 0})
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	// Same chunk again, as a re-ingestion would produce it.
	second := makeEntry("Deposits are refundable.", []float32{1, 0})
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("Failed to re-upsert: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 entry after re-upsert, got %d", count)
	}
	if second.Seq != first.Seq {
		t.Fatalf("Expected Seq %d to be preserved, got %d", first.Seq, second.Seq)
	}
	if !second.InsertedAt.Equal(first.InsertedAt) {
		t.Fatal("Expected InsertedAt to be preserved on re-upsert")
	}
}

func TestEntryUpsertRejectsInvalid(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	// Missing vector
	bad := makeEntry("text without embedding", nil)
	if err := repo.Upsert(ctx, bad); !errors.Is(err, core.ErrInvalidEntry) {
		t.Fatalf("Expected ErrInvalidEntry, got %v", err)
	}

	count, _ := repo.Count(ctx)
	if count != 0 {
		t.Fatalf("Expected failed upsert to store nothing, got %d entries", count)
	}
}

func TestFindNearestRanking(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	near := makeEntry("about rent payments", []float32{1, 0})
	middling := makeEntry("about lease renewals", []float32{0.7, 0.7})
	far := makeEntry("about fishing licenses", []float32{0, 1})
	if err := repo.Upsert(ctx, far, middling, near); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	results, err := repo.FindNearest(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("FindNearest failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Entry.Chunk.Text != near.Chunk.Text {
		t.Fatalf("Expected nearest first, got %q", results[0].Entry.Chunk.Text)
	}
	if results[1].Entry.Chunk.Text != middling.Chunk.Text {
		t.Fatalf("Expected middling second, got %q", results[1].Entry.Chunk.Text)
	}
	if results[0].Score <= results[1].Score {
		t.Fatalf("Expected descending scores, got %f then %f", results[0].Score, results[1].Score)
	}
}

func TestFindNearestTieBreaksByInsertionOrder(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	ctx := context.Background()

	// Identical vectors produce identical scores.
	older := makeEntry("first inserted", []float32{1, 0})
	newer := makeEntry("second inserted", []float32{1, 0})
	if err := repo.Upsert(ctx, older); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}
	if err := repo.Upsert(ctx, newer); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	results, err := repo.FindNearest(ctx, []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("FindNearest failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Entry.Chunk.Text != "first inserted" {
		t.Fatalf("Expected insertion order to break the tie, got %q first", results[0].Entry.Chunk.Text)
	}
}

func TestFindNearestEmptyCollection(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	results, err := repo.FindNearest(context.Background(), []float32{1, 0}, 2)
	if err != nil {
		t.Fatalf("Expected no error on empty collection, got %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Expected no results, got %d", len(results))
	}
}

func TestFindNearestRejectsEmptyVector(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	if err != nil {
		t.Fatalf("Failed to create repository: %v", err)
	}
	defer func() { repo.Close(); backend.Close() }()

	if _, err := repo.FindNearest(context.Background(), nil, 2); !errors.Is(err, storage.ErrInvalidQuery) {
		t.Fatalf("Expected ErrInvalidQuery, got %v", err)
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	backend, err := OpenBackend("", true)
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}
	defer backend.Close()

	corpusRepo, err := NewEntryRepository(backend, "corpus")
	if err != nil {
		t.Fatalf("Failed to create corpus repo: %v", err)
	}
	defer corpusRepo.Close()

	scratchRepo, err := NewEntryRepository(backend, "scratch")
	if err != nil {
		t.Fatalf("Failed to create scratch repo: %v", err)
	}
	defer scratchRepo.Close()

	ctx := context.Background()
	if err := corpusRepo.Upsert(ctx, makeEntry("corpus only", []float32{1, 0})); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	count, err := scratchRepo.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 0 {
		t.Fatalf("Expected scratch collection to be empty, got %d", count)
	}
}

func TestEntriesPersistAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(dir, false)
	if err != nil {
		t.Fatalf("Failed to open backend: %v", err)
	}
	repo, err := NewEntryRepository(backend, "corpus")
	if err != nil {
		t.Fatalf("Failed to create repo: %v", err)
	}
	if err := repo.Upsert(ctx, makeEntry("durable text", []float32{1, 0})); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}
	repo.Close()
	if err := backend.Close(); err != nil {
		t.Fatalf("Failed to close backend: %v", err)
	}

	backend, err = OpenBackend(dir, false)
	if err != nil {
		t.Fatalf("Failed to reopen backend: %v", err)
	}
	defer backend.Close()
	repo, err = NewEntryRepository(backend, "corpus")
	if err != nil {
		t.Fatalf("Failed to recreate repo: %v", err)
	}
	defer repo.Close()

	results, err := repo.FindNearest(ctx, []float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("FindNearest failed: %v", err)
	}
	if len(results) != 1 || results[0].Entry.Chunk.Text != "durable text" {
		t.Fatalf("Expected persisted entry after reopen, got %v", results)
	}
}
