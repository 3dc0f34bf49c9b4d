package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// A failure applies to the whole batch: no partial results are returned and
	// no inputs are silently dropped. The caller decides whether to retry,
	// skip, or abort.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces text from an assembled prompt as an incremental stream.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Stream generates text for the prompt, invoking onDelta for each text
	// fragment in the order the service produces it. Stream returns once the
	// stream ends or fails. If onDelta returns an error, streaming stops and
	// that error is returned.
	Stream(ctx context.Context, prompt string, onDelta func(delta string) error) error
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Generator instances,
// ensuring they share credentials and configuration.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the streaming text generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
