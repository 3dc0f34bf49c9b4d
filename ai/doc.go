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


// Package ai provides abstractions for the AI services used by Sollex.
//
// This package defines interfaces for text embedding and streaming text
// generation. It follows the dependency inversion principle, allowing the
// ingestion pipeline, retrieval engine and conversation controller to depend
// on abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - Generator: Streams generated text for an assembled prompt
//   - Provider: Aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/gemini: Production implementation backed by the Google Generative
//     Language API (via langchaingo)
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (gemini.NewProvider, gemini.NewEmbedder) return
// interface types to enforce abstraction. Mock constructors return concrete
// types so tests can inject behavior and make assertions.
//
// # Error Taxonomy
//
// Implementations classify upstream failures into ErrRateLimited,
// ErrUnavailable and ErrInvalidInput so that callers can distinguish quota
// exhaustion (surfaced to users with friendlier wording) from generic
// failures. IsQuotaError additionally matches quota keywords in raw upstream
// message text, which is the only signal some services provide.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithAPIKey(os.Getenv("GOOGLE_API_KEY")))
//	provider, err := gemini.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vec, err := provider.Embedder().EmbedText(ctx, "What is Chapter 7 bankruptcy?")
package ai
