package chunk

import (
	"github.com/poiesic/sollex/core"
)

// Builder turns extracted documents into retrieval-ready chunks: pages are
// cleaned, split, and stamped with their origin and the document's metadata.
type Builder struct {
	splitter *Splitter
}

// NewBuilder creates a builder around the given splitter. Pass nil to use a
// splitter with default bounds.
func NewBuilder(splitter *Splitter) *Builder {
	if splitter == nil {
		splitter = NewSplitter(DefaultChunkSize, DefaultOverlap)
	}
	return &Builder{splitter: splitter}
}

// Build produces the document's chunks in page order. Chunk indexes restart
// at zero on each page, so (Source, Page, Index) uniquely locates a chunk
// within the corpus.
func (b *Builder) Build(doc *core.SourceDocument) []core.Chunk {
	if doc == nil {
		return nil
	}

	var chunks []core.Chunk
	for _, page := range CleanPages(doc.Pages) {
		for i, text := range b.splitter.Split(page.Text) {
			chunks = append(chunks, core.Chunk{
				Source:   doc.Filename,
				Page:     page.Number,
				Index:    i,
				Text:     text,
				Metadata: doc.Metadata,
			})
		}
	}
	return chunks
}
