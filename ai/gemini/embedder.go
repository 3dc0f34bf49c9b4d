package gemini

import (
	"context"
	"log/slog"

	"github.com/poiesic/sollex/ai"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Embedder implements ai.Embedder using the Gemini embedding API.
type Embedder struct {
	client *googleai.GoogleAI
	config *ai.Config
	logger *slog.Logger
}

// newEmbedder is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEmbedder(client *googleai.GoogleAI, config *ai.Config) *Embedder {
	return &Embedder{
		client: client,
		config: config,
		logger: slog.Default().With("component", "gemini-embedder"),
	}
}

// NewEmbedder creates a standalone embedder using the provided configuration.
// Useful for the ingestion job, which never generates text.
//
// Returns ai.Embedder interface to enforce abstraction.
func NewEmbedder(ctx context.Context, config *ai.Config) (ai.Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	client, err := googleai.New(ctx,
		googleai.WithAPIKey(config.APIKey),
		googleai.WithDefaultEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, classify(err)
	}
	return newEmbedder(client, config), nil
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		e.logger.Warn("embedding service returned empty result")
		return []float32{}, nil
	}
	return vectors[0], nil
}

// EmbedTexts generates vector embeddings for multiple text strings in a batch.
// The whole batch fails together; partial results are never returned.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("generating embeddings", "count", len(texts))

	ctx, cancel := context.WithTimeout(ctx, e.config.EmbedTimeout)
	defer cancel()

	vectors, err := e.client.CreateEmbedding(ctx, texts)
	if err != nil {
		e.logger.Error("failed to generate embeddings", "count", len(texts), "err", err)
		return nil, classify(err)
	}
	return vectors, nil
}
