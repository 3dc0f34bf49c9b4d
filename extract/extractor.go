// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/poiesic/sollex/core"
)

// Extractor turns one source file into a SourceDocument: an ordered sequence
// of (page, text) pairs plus whatever metadata the format carries.
// Implementations report their own failures; a failed file never aborts the
// callers' batch.
type Extractor interface {
	// Extract reads the file at path and returns its pages and metadata.
	// Pages containing only whitespace are dropped. An empty page list with a
	// nil error means the file was readable but carried no text.
	Extract(ctx context.Context, path string) (*core.SourceDocument, error)
}

// Registry dispatches files to a type-specific extractor by extension.
// The extractor set is closed: pdf, docx, txt, eml and msg.
type Registry struct {
	extractors map[string]Extractor
	logger     *slog.Logger
}

// NewRegistry creates a registry with the default extractor per supported
// extension. A runner must be provided for the formats that convert through
// external tools (pdf, msg); pass NewExecRunner() in production.
func NewRegistry(runner CommandRunner) *Registry {
	eml := NewEML()
	return &Registry{
		extractors: map[string]Extractor{
			".pdf":  NewPDF(runner),
			".docx": NewDocx(),
			".txt":  NewPlainText(),
			".eml":  eml,
			".msg":  NewMSG(runner, eml),
		},
		logger: slog.Default().With("component", "extract"),
	}
}

// Supported reports whether the registry has an extractor for the file.
func (r *Registry) Supported(path string) bool {
	_, ok := r.extractors[normalizeExt(path)]
	return ok
}

// Extensions returns the supported extensions, for directory walking.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	return exts
}

// Load extracts the file at path with the extractor for its type.
// Failures are local to the file: the error describes what went wrong and the
// caller is expected to log, skip and continue.
func (r *Registry) Load(ctx context.Context, path string) (*core.SourceDocument, error) {
	ext := normalizeExt(path)
	extractor, ok := r.extractors[ext]
	if !ok {
		return nil, ErrUnsupportedType
	}

	doc, err := extractor.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	if doc == nil || len(doc.Pages) == 0 {
		r.logger.Debug("no content extracted", "file", filepath.Base(path))
		return &core.SourceDocument{Filename: filepath.Base(path)}, nil
	}
	return doc, nil
}

func normalizeExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// pagesFromText wraps a single undifferentiated body as page 1, the
// convention for formats without pagination. Whitespace-only bodies yield no
// pages.
func pagesFromText(text string) []core.Page {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return []core.Page{{Number: 1, Text: text}}
}
