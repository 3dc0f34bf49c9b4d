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


package retrieval

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/sollex/ai"
	"github.com/poiesic/sollex/storage"
)

const (
	// DefaultTopK is the number of chunks pulled into the answer context.
	DefaultTopK = 2

	// ContextSeparator joins retrieved chunk texts so the model can tell
	// where one source passage ends and the next begins.
	ContextSeparator = "\n\n---\n\n"
)

// Retriever answers "what does the corpus say about this question" by
// embedding the question and pulling the nearest chunks from the store.
type Retriever struct {
	embedder ai.Embedder
	repo     storage.EntryRepository
	topK     int
	logger   *slog.Logger
}

// NewRetriever creates a retriever. A topK of zero or less uses DefaultTopK.
func NewRetriever(embedder ai.Embedder, repo storage.EntryRepository, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{
		embedder: embedder,
		repo:     repo,
		topK:     topK,
		logger:   slog.Default().With("component", "retrieval"),
	}
}

// Context returns the concatenated texts of the chunks nearest to the
// question, similarity-descending. An empty corpus yields an empty context
// and no error; answering proceeds with the no-information instruction.
func (r *Retriever) Context(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	vector, err := r.embedder.EmbedText(ctx, question)
	if err != nil {
		return "", err
	}

	results, err := r.repo.FindNearest(ctx, vector, r.topK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		r.logger.Debug("no chunks retrieved", "question_length", len(question))
		return "", nil
	}

	texts := make([]string, len(results))
	for i, result := range results {
		texts[i] = result.Entry.Chunk.Text
	}
	r.logger.Debug("retrieved context",
		"chunks", len(results),
		"top_score", results[0].Score)
	return strings.Join(texts, ContextSeparator), nil
}
