package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/sollex/ai/mock"
	"github.com/poiesic/sollex/core"
	"github.com/poiesic/sollex/storage/badger"
)

func seedRepo(t *testing.T, texts map[string][]float32) *Retriever {
	t.Helper()

	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(); backend.Close() })

	entries := make([]*core.Entry, 0, len(texts))
	for text, vector := range texts {
		entries = append(entries, &core.Entry{
			Chunk:  core.Chunk{Source: "corpus.txt", Page: 1, Text: text},
			Vector: vector,
		})
	}
	require.NoError(t, repo.Upsert(context.Background(), entries...))

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return []float32{1, 0}, nil
	}
	return NewRetriever(embedder, repo, 2)
}

func TestRetriever_Context_RanksAndJoins(t *testing.T) {
	r := seedRepo(t, map[string][]float32{
		"rent is due monthly":    {1, 0},
		"leases renew annually":  {0.7, 0.7},
		"fishing needs a permit": {0, 1},
	})

	got, err := r.Context(context.Background(), "when is rent due?")
	require.NoError(t, err)

	parts := strings.Split(got, ContextSeparator)
	require.Len(t, parts, 2, "only topK chunks are included")
	assert.Equal(t, "rent is due monthly", parts[0], "most similar chunk comes first")
	assert.Equal(t, "leases renew annually", parts[1])
}

func TestRetriever_Context_EmptyStore(t *testing.T) {
	r := seedRepo(t, nil)

	got, err := r.Context(context.Background(), "anything at all?")
	require.NoError(t, err, "an empty corpus is not an error")
	assert.Empty(t, got)
}

func TestRetriever_Context_BlankQuestion(t *testing.T) {
	r := seedRepo(t, nil)

	_, err := r.Context(context.Background(), "   \t")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestRetriever_Context_EmbeddingFailure(t *testing.T) {
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(); backend.Close() })

	boom := errors.New("embedding service down")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
		return nil, boom
	}

	_, err = NewRetriever(embedder, repo, 2).Context(context.Background(), "question")
	assert.ErrorIs(t, err, boom)
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("Rent is due monthly.", "When is rent due?")

	assert.Contains(t, prompt, "Context:\nRent is due monthly.")
	assert.Contains(t, prompt, "Question:\nWhen is rent due?")
	assert.True(t, strings.HasSuffix(prompt, "Answer:"))
	assert.Contains(t, prompt, "solo practice law firm")
}

func TestBuildPrompt_EmptyContext(t *testing.T) {
	prompt := BuildPrompt("", "Can you fix my parking ticket?")

	assert.Contains(t, prompt, "No information is available for this question.")
	assert.Contains(t, prompt, "schedule a consultation")
}
