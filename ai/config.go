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


package ai

import (
	"errors"
	"time"
)

// Config holds configuration for AI service providers.
type Config struct {
	// APIKey authenticates against the Google Generative Language API.
	// It must come from the environment (GOOGLE_API_KEY), never from a
	// literal in source. Required.
	APIKey string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Vectors produced by different embedding models are not comparable, so
	// a store must only ever be queried with the model it was built with.
	// Default: "text-embedding-004"
	EmbeddingModel string

	// GenerationModel is the model identifier to use for answer generation.
	// Default: "gemini-1.5-flash-latest"
	GenerationModel string

	// EmbedTimeout bounds a single embedding call. Default: 30s.
	EmbedTimeout time.Duration

	// GenerateTimeout bounds a full generation stream. Default: 2m.
	GenerateTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithAPIKey sets the API credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithGenerationModel sets the generation model identifier.
func WithGenerationModel(model string) ConfigOption {
	return func(c *Config) {
		c.GenerationModel = model
	}
}

// WithEmbedTimeout sets the embedding call timeout.
func WithEmbedTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.EmbedTimeout = d
	}
}

// WithGenerateTimeout sets the generation stream timeout.
func WithGenerateTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.GenerateTimeout = d
	}
}

// DefaultConfig returns a Config with the production model defaults.
// The API key is intentionally left empty; it must be supplied explicitly.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingModel:  "text-embedding-004",
		GenerationModel: "gemini-1.5-flash-latest",
		EmbedTimeout:    30 * time.Second,
		GenerateTimeout: 2 * time.Minute,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config.
//
// Example:
//
//	cfg := ai.NewConfig(
//	    ai.WithAPIKey(os.Getenv("GOOGLE_API_KEY")),
//	    ai.WithEmbeddingModel("text-embedding-004"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Validate checks that the configuration is valid and complete.
// A missing credential is diagnosed here, at startup, rather than surfacing
// as a failed network call mid-session.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("ai config: APIKey is required (set GOOGLE_API_KEY)")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.GenerationModel == "" {
		return errors.New("ai config: GenerationModel is required")
	}
	if c.EmbedTimeout <= 0 {
		return errors.New("ai config: EmbedTimeout must be positive")
	}
	if c.GenerateTimeout <= 0 {
		return errors.New("ai config: GenerateTimeout must be positive")
	}
	return nil
}
