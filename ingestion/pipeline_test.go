package ingestion

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/sollex/ai/mock"
	"github.com/poiesic/sollex/extract"
	"github.com/poiesic/sollex/storage"
	"github.com/poiesic/sollex/storage/badger"
)

func newTestRepo(t *testing.T) storage.EntryRepository {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(); backend.Close() })
	return repo
}

// writeCorpus creates numbered .txt files with distinct contents.
func writeCorpus(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("doc-%02d.txt", i))
		content := fmt.Sprintf("Document %d discusses a distinct legal topic.", i)
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func TestPipeline_Run(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, 4)

	repo := newTestRepo(t)
	pipeline, err := NewPipeline(repo, mock.NewMockEmbedder(), extract.NewRegistry(extract.NewExecRunner()))
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 4, report.FilesFound)
	assert.Equal(t, 4, report.FilesIngested)
	assert.Equal(t, 0, report.FilesSkipped)
	assert.Equal(t, 4, report.ChunksStored)
	assert.Equal(t, 0, report.BatchesFailed)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestPipeline_Run_CorruptFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, 4)
	// A .docx that is not a zip archive fails extraction.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.docx"), []byte("not a zip"), 0644))

	repo := newTestRepo(t)
	pipeline, err := NewPipeline(repo, mock.NewMockEmbedder(), extract.NewRegistry(extract.NewExecRunner()))
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Run(context.Background(), dir)
	require.NoError(t, err, "a corrupt file must not fail the run")

	assert.Equal(t, 5, report.FilesFound)
	assert.Equal(t, 4, report.FilesIngested)
	assert.Equal(t, 1, report.FilesSkipped)
	assert.Equal(t, 4, report.ChunksStored)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestPipeline_Run_IgnoresUnsupportedFiles(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slides.pptx"), []byte("irrelevant"), 0644))

	repo := newTestRepo(t)
	pipeline, err := NewPipeline(repo, mock.NewMockEmbedder(), extract.NewRegistry(extract.NewExecRunner()))
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 2, report.FilesFound, "unsupported extensions never enter the run")
}

func TestPipeline_Run_Batches(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, 5)

	repo := newTestRepo(t)
	embedder := mock.NewMockEmbedder()
	pipeline, err := NewPipeline(repo, embedder, extract.NewRegistry(extract.NewExecRunner()),
		WithBatchSize(2))
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Run(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, 5, report.ChunksStored)
	assert.Equal(t, 3, embedder.CallCount(), "5 files at batch size 2 means 3 embedding calls")
}

func TestPipeline_Run_EmbeddingFailureSkipsBatchOnly(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, 3)

	repo := newTestRepo(t)
	embedder := mock.NewMockEmbedder()
	calls := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		// First batch fails on every attempt; later batches succeed.
		if calls <= 2 {
			return nil, errors.New("service unavailable")
		}
		vectors := make([][]float32, len(texts))
		for i := range texts {
			vectors[i] = []float32{1, 0}
		}
		return vectors, nil
	}

	pipeline, err := NewPipeline(repo, embedder, extract.NewRegistry(extract.NewExecRunner()),
		WithBatchSize(1),
		WithMaxRetries(2),
		WithRetryDelay(time.Millisecond))
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Run(context.Background(), dir)
	require.NoError(t, err, "an abandoned batch must not fail the run")

	assert.Equal(t, 1, report.BatchesFailed)
	assert.Equal(t, 2, report.ChunksStored, "batches after the failed one are stored")
	assert.Equal(t, 2, report.FilesIngested, "files in the failed batch are not counted as ingested")

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestPipeline_Run_EmptyDirectory(t *testing.T) {
	repo := newTestRepo(t)
	pipeline, err := NewPipeline(repo, mock.NewMockEmbedder(), extract.NewRegistry(extract.NewExecRunner()))
	require.NoError(t, err)
	defer pipeline.Release()

	report, err := pipeline.Run(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 0, report.FilesFound)
	assert.Equal(t, 0, report.ChunksStored)
}

func TestNewPipeline_RequiresCollaborators(t *testing.T) {
	repo := newTestRepo(t)
	registry := extract.NewRegistry(extract.NewExecRunner())

	_, err := NewPipeline(nil, mock.NewMockEmbedder(), registry)
	assert.ErrorIs(t, err, ErrRepositoryRequired)

	_, err = NewPipeline(repo, nil, registry)
	assert.ErrorIs(t, err, ErrEmbedderRequired)

	_, err = NewPipeline(repo, mock.NewMockEmbedder(), nil)
	assert.ErrorIs(t, err, ErrRegistryRequired)
}
