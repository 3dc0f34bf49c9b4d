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


package ingestion

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/sollex/ai"
	"github.com/poiesic/sollex/chunk"
	"github.com/poiesic/sollex/core"
	"github.com/poiesic/sollex/extract"
	"github.com/poiesic/sollex/storage"
)

const (
	// DefaultBatchSize is the number of files embedded per API batch.
	DefaultBatchSize = 20

	// DefaultMaxRetries bounds attempts per embedding batch.
	DefaultMaxRetries = 3

	// DefaultRetryDelay is the base backoff delay between attempts.
	DefaultRetryDelay = 1 * time.Second
)

// Pipeline walks a corpus directory and turns every supported file into
// stored (chunk, vector) entries: extract and chunk concurrently, embed in
// batches, upsert.
type Pipeline struct {
	repo     storage.EntryRepository
	embedder ai.Embedder
	registry *extract.Registry
	builder  *chunk.Builder
	pool     *ants.Pool

	batchSize  int
	maxRetries int
	retryDelay time.Duration
	progress   io.Writer
	logger     *slog.Logger
}

// Report summarizes one ingestion run.
type Report struct {
	FilesFound    int
	FilesIngested int
	FilesSkipped  int
	ChunksStored  int
	BatchesFailed int
	Elapsed       time.Duration
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent extraction.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many files are embedded per API batch.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = DefaultBatchSize
		}
		p.batchSize = size
		return nil
	}
}

// WithMaxRetries sets the attempt bound for each embedding batch.
func WithMaxRetries(attempts int) Option {
	return func(p *Pipeline) error {
		if attempts < 1 {
			attempts = DefaultMaxRetries
		}
		p.maxRetries = attempts
		return nil
	}
}

// WithRetryDelay sets the base backoff delay for embedding retries.
func WithRetryDelay(delay time.Duration) Option {
	return func(p *Pipeline) error {
		if delay <= 0 {
			delay = DefaultRetryDelay
		}
		p.retryDelay = delay
		return nil
	}
}

// WithSplitter sets the chunking bounds.
func WithSplitter(splitter *chunk.Splitter) Option {
	return func(p *Pipeline) error {
		p.builder = chunk.NewBuilder(splitter)
		return nil
	}
}

// WithProgress sets where progress output is written.
// Default is io.Discard.
func WithProgress(writer io.Writer) Option {
	return func(p *Pipeline) error {
		if writer == nil {
			writer = io.Discard
		}
		p.progress = writer
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	repo storage.EntryRepository,
	embedder ai.Embedder,
	registry *extract.Registry,
	opts ...Option,
) (*Pipeline, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if registry == nil {
		return nil, ErrRegistryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repo:       repo,
		embedder:   embedder,
		registry:   registry,
		builder:    chunk.NewBuilder(nil),
		pool:       pool,
		batchSize:  DefaultBatchSize,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
		progress:   io.Discard,
		logger:     slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// Run ingests every supported file under root. Per-file extraction failures
// and per-batch embedding failures are logged and skipped; Run only returns
// an error when the walk itself fails or the context is cancelled.
func (p *Pipeline) Run(ctx context.Context, root string) (*Report, error) {
	files, err := p.collectFiles(root)
	if err != nil {
		return nil, err
	}

	report := &Report{FilesFound: len(files)}
	if len(files) == 0 {
		p.logger.Info("no supported files found", "root", root)
		return report, nil
	}

	p.logger.Info("starting ingestion",
		"root", root,
		"files", len(files),
		"batch_size", p.batchSize)

	tracker := NewProgressTracker(p.progress, len(files), p.batchSize)
	tracker.Start()

	for start := 0; start < len(files); start += p.batchSize {
		if err := ctx.Err(); err != nil {
			report.Elapsed = tracker.Elapsed()
			return report, err
		}

		end := min(start+p.batchSize, len(files))
		p.processBatch(ctx, files[start:end], report)
		tracker.Update(end)
	}

	tracker.Finish()
	report.Elapsed = tracker.Elapsed()

	p.logger.Info("ingestion complete",
		"ingested", report.FilesIngested,
		"skipped", report.FilesSkipped,
		"chunks", report.ChunksStored,
		"failed_batches", report.BatchesFailed,
		"elapsed", report.Elapsed.Round(time.Millisecond))
	return report, nil
}

// collectFiles walks root and returns the supported files in lexical order,
// so batch composition is stable across runs.
func (p *Pipeline) collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if p.registry.Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// processBatch extracts and chunks the batch concurrently, embeds all chunk
// texts in one call, and upserts the resulting entries. Failures stay local:
// a bad file is skipped, a failed batch leaves the store untouched.
func (p *Pipeline) processBatch(ctx context.Context, files []string, report *Report) {
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		chunks    []core.Chunk
		extracted int
	)

	for _, path := range files {
		path := path
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()

			doc, err := p.registry.Load(ctx, path)
			if err != nil {
				p.logger.Warn("skipping file", "file", filepath.Base(path), "error", err)
				mu.Lock()
				report.FilesSkipped++
				mu.Unlock()
				return
			}

			built := p.builder.Build(doc)
			mu.Lock()
			chunks = append(chunks, built...)
			extracted++
			mu.Unlock()
		})
		if err != nil {
			wg.Done()
			p.logger.Warn("skipping file", "file", filepath.Base(path), "error", err)
			mu.Lock()
			report.FilesSkipped++
			mu.Unlock()
		}
	}
	wg.Wait()

	if len(chunks) == 0 {
		return
	}

	// Pool completion order is nondeterministic; sort so Seq assignment in
	// the store follows corpus order.
	slices.SortFunc(chunks, func(a, b core.Chunk) int {
		if c := strings.Compare(a.Source, b.Source); c != 0 {
			return c
		}
		if a.Page != b.Page {
			return a.Page - b.Page
		}
		return a.Index - b.Index
	})

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var embedErr error
		vectors, embedErr = p.embedder.EmbedTexts(ctx, texts)
		return embedErr
	}, p.maxRetries, p.retryDelay)
	if err != nil {
		p.logger.Error("embedding batch failed, skipping batch",
			"files", len(files), "chunks", len(chunks), "error", err)
		report.BatchesFailed++
		return
	}
	if len(vectors) != len(texts) {
		p.logger.Error("embedding result count mismatch, skipping batch",
			"expected", len(texts), "got", len(vectors))
		report.BatchesFailed++
		return
	}

	entries := make([]*core.Entry, len(chunks))
	for i := range chunks {
		entries[i] = &core.Entry{Chunk: chunks[i], Vector: vectors[i]}
	}
	if err := p.repo.Upsert(ctx, entries...); err != nil {
		p.logger.Error("storing batch failed, skipping batch",
			"chunks", len(entries), "error", err)
		report.BatchesFailed++
		return
	}
	report.ChunksStored += len(entries)
	// A file counts as ingested only once its chunks are stored; a failed
	// batch leaves its files out of the count entirely.
	report.FilesIngested += extracted
}
