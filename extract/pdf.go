package extract

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/poiesic/sollex/core"
)

// PDF extracts paginated text through poppler's pdftotext, with Title and
// Author read from pdfinfo. pdftotext separates pages with form feeds, which
// preserves the page numbering the chunker records.
type PDF struct {
	runner CommandRunner
	logger *slog.Logger
}

var _ Extractor = (*PDF)(nil)

// NewPDF creates a PDF extractor using the given runner.
func NewPDF(runner CommandRunner) *PDF {
	return &PDF{
		runner: runner,
		logger: slog.Default().With("extractor", "pdf"),
	}
}

// Extract reads pages and metadata from the PDF at path.
func (p *PDF) Extract(ctx context.Context, path string) (*core.SourceDocument, error) {
	out, err := p.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, fmt.Errorf("%w: pdftotext on %s: %w", ErrToolFailed, filepath.Base(path), err)
	}

	var pages []core.Page
	for i, pageText := range strings.Split(string(out), "\f") {
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, core.Page{Number: i + 1, Text: pageText})
	}

	// Metadata is best effort: a pdfinfo failure loses Title/Author but not
	// the document.
	meta := p.metadata(ctx, path)

	return &core.SourceDocument{
		Filename: filepath.Base(path),
		Pages:    pages,
		Metadata: meta,
	}, nil
}

func (p *PDF) metadata(ctx context.Context, path string) core.DocumentMetadata {
	out, err := p.runner.Run(ctx, "pdfinfo", path)
	if err != nil {
		p.logger.Debug("pdfinfo failed, metadata unavailable", "file", filepath.Base(path), "err", err)
		return core.DocumentMetadata{}
	}
	return parsePDFInfo(string(out))
}

// parsePDFInfo pulls Title and Author out of pdfinfo's "Key: value" output.
func parsePDFInfo(out string) core.DocumentMetadata {
	var meta core.DocumentMetadata
	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "Title":
			meta.Title = value
		case "Author":
			meta.Author = value
		}
	}
	return meta
}
