package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical content
// always maps to the same identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Page is one extracted unit of a source document: a PDF page, or the
// whole body for formats without pagination (numbered 1).
type Page struct {
	Number int
	Text   string
}

// DocumentMetadata holds optional metadata extracted from a source file.
// Fields are empty strings when the format carries no such information.
type DocumentMetadata struct {
	Title  string
	Author string
}

// SourceDocument is one ingested file: an ordered sequence of pages plus
// extracted metadata. It is immutable once produced by an extractor and is
// discarded after chunking.
type SourceDocument struct {
	Filename string
	Pages    []Page
	Metadata DocumentMetadata
}

// Chunk is a bounded slice of normalized text, the unit of retrieval.
// Chunks inherit their document's metadata and remember where they came from.
type Chunk struct {
	Source   string // originating filename
	Page     int    // originating page number
	Index    int    // chunk index within that page
	Text     string
	Metadata DocumentMetadata
}

// ContentID derives the chunk's storage identifier from its source
// coordinates and text. Re-ingesting an unchanged file therefore produces
// the same IDs, making ingestion idempotent at the content level.
func (c *Chunk) ContentID() ID {
	return IDFromContent(fmt.Sprintf("%s:p%d-%d:%s", c.Source, c.Page, c.Index, c.Text))
}

// Entry is a persisted (chunk, embedding vector) pair in a vector store
// collection. Seq records insertion order for ranking tie-breaks.
type Entry struct {
	Id         ID
	Chunk      Chunk
	Vector     []float32
	Seq        uint64
	InsertedAt time.Time
}

// ScoredEntry is an entry returned from a similarity query together with
// its cosine similarity to the query vector.
type ScoredEntry struct {
	Entry *Entry
	Score float32
}
