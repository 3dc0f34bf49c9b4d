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


package sollex

import (
	"context"
	"log/slog"

	"github.com/poiesic/sollex/ai"
	"github.com/poiesic/sollex/ai/gemini"
	"github.com/poiesic/sollex/conversation"
	"github.com/poiesic/sollex/extract"
	"github.com/poiesic/sollex/ingestion"
	"github.com/poiesic/sollex/retrieval"
	"github.com/poiesic/sollex/storage"
	"github.com/poiesic/sollex/storage/badger"
)

const defaultCollection = "corpus"

// Store bundles the vector store and the AI provider behind one handle.
// It is the composition root: ingestion pipelines, retrievers and
// conversations are all created from it and share its resources.
type Store struct {
	backend  *badger.Backend
	repo     storage.EntryRepository
	provider ai.Provider
	logger   *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	aiConfig   *ai.Config
	collection string
}

// WithAIConfig sets the AI provider configuration.
// Default is ai.DefaultConfig(), which still needs an API key.
func WithAIConfig(config *ai.Config) StoreOption {
	return func(o *storeOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// WithCollection sets the vector store collection name.
// Default is "corpus".
func WithCollection(name string) StoreOption {
	return func(o *storeOptions) {
		if name != "" {
			o.collection = name
		}
	}
}

// Open opens (creating if necessary) the store at filePath.
func Open(ctx context.Context, filePath string, opts ...StoreOption) (*Store, error) {
	options := &storeOptions{
		aiConfig:   ai.DefaultConfig(),
		collection: defaultCollection,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewEntryRepository(backend, options.collection)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider, err := gemini.NewProvider(ctx, options.aiConfig)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Store{
		backend:  backend,
		repo:     repo,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

// Close releases the provider, repository and backend, in that order.
func (s *Store) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.repo.Close(); err != nil {
		s.logger.Error("error closing entry repository", "err", err)
		return err
	}

	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// EntryRepository exposes the underlying collection.
func (s *Store) EntryRepository() storage.EntryRepository {
	return s.repo
}

// NewIngestionPipeline creates a pipeline that ingests into this store.
func (s *Store) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	registry := extract.NewRegistry(extract.NewExecRunner())
	return ingestion.NewPipeline(s.repo, s.provider.Embedder(), registry, opts...)
}

// NewRetriever creates a retriever over this store. A topK of zero or less
// uses retrieval.DefaultTopK.
func (s *Store) NewRetriever(topK int) *retrieval.Retriever {
	return retrieval.NewRetriever(s.provider.Embedder(), s.repo, topK)
}

// NewConversation creates a chat session answering from this store.
func (s *Store) NewConversation(topK int) *conversation.Conversation {
	return conversation.NewConversation(s.NewRetriever(topK), s.provider.Generator())
}
