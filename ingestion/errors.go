package ingestion

import "errors"

var (
	// ErrRepositoryRequired indicates NewPipeline was called without a repository.
	ErrRepositoryRequired = errors.New("entry repository is required")

	// ErrEmbedderRequired indicates NewPipeline was called without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrRegistryRequired indicates NewPipeline was called without an extractor registry.
	ErrRegistryRequired = errors.New("extractor registry is required")

	// ErrInvalidMaxAttempts indicates a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be positive")
)
