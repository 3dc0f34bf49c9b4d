package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/sollex/core"
)

// PlainText extracts .txt files verbatim as a single page.
type PlainText struct{}

var _ Extractor = (*PlainText)(nil)

// NewPlainText creates a plain-text extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// Extract reads the whole file as page 1. Plain text carries no metadata.
func (PlainText) Extract(ctx context.Context, path string) (*core.SourceDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnreadable, filepath.Base(path), err)
	}
	return &core.SourceDocument{
		Filename: filepath.Base(path),
		Pages:    pagesFromText(string(content)),
	}, nil
}
