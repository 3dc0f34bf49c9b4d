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


package conversation

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/sollex/ai"
	"github.com/poiesic/sollex/retrieval"
)

// Seed messages shown before the first question.
const (
	DisclaimerText = "The information provided by Minerva is for general legal information only and does not constitute legal advice. No attorney-client relationship is created by using this service."
	GreetingText   = "I am Minerva, the AI assistant for the Law Office of Alexander S. Chang. How may I help you answer your preliminary questions?"
)

// User-safe replacements for the placeholder when answering fails.
// Upstream error details go to the log, never to the transcript.
const (
	quotaErrorText   = "Minerva is experiencing high demand right now. Please try again in a few moments."
	genericErrorText = "I ran into a problem while answering your question. Please try again."
)

// Message is one turn of the transcript.
type Message struct {
	Text   string
	IsUser bool
}

// Conversation holds one chat session: the transcript and the
// one-question-at-a-time typing gate. All exported methods are safe for
// concurrent use. The lock guards state only; it is never held across an
// embedding, retrieval or generation call, so readers can render the
// transcript while an answer streams in.
type Conversation struct {
	retriever *retrieval.Retriever
	generator ai.Generator
	logger    *slog.Logger

	mu       sync.Mutex
	messages []Message
	typing   bool
}

// NewConversation creates a session seeded with the disclaimer and greeting.
func NewConversation(retriever *retrieval.Retriever, generator ai.Generator) *Conversation {
	return &Conversation{
		retriever: retriever,
		generator: generator,
		logger:    slog.Default().With("component", "conversation"),
		messages: []Message{
			{Text: DisclaimerText},
			{Text: GreetingText},
		},
	}
}

// Submit processes one question end to end: retrieval, prompt assembly and
// streamed generation into the transcript. It blocks until the answer is
// complete or failed.
//
// Returns false without touching the transcript when the question is blank
// or another question is already in flight.
func (c *Conversation) Submit(ctx context.Context, question string) bool {
	question = strings.TrimSpace(question)
	if question == "" {
		return false
	}

	c.mu.Lock()
	if c.typing {
		c.mu.Unlock()
		return false
	}
	c.typing = true
	c.messages = append(c.messages,
		Message{Text: question, IsUser: true},
		Message{}) // placeholder the answer streams into
	placeholder := len(c.messages) - 1
	c.mu.Unlock()

	c.answer(ctx, question, placeholder)
	return true
}

// Typing reports whether an answer is currently being produced.
func (c *Conversation) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// Transcript returns a snapshot of the messages so far. The returned slice
// is the caller's to keep; later streaming never mutates it.
func (c *Conversation) Transcript() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) answer(ctx context.Context, question string, placeholder int) {
	contextText, err := c.retriever.Context(ctx, question)
	if err != nil {
		c.fail(placeholder, err)
		return
	}

	prompt := retrieval.BuildPrompt(contextText, question)
	err = c.generator.Stream(ctx, prompt, func(delta string) error {
		c.appendDelta(placeholder, delta)
		return nil
	})
	if err != nil {
		c.fail(placeholder, err)
		return
	}

	c.mu.Lock()
	c.typing = false
	c.mu.Unlock()
}

// appendDelta grows the placeholder message. Deltas arrive from a single
// streaming goroutine, so text only ever grows, in order.
func (c *Conversation) appendDelta(placeholder int, delta string) {
	c.mu.Lock()
	c.messages[placeholder].Text += delta
	c.mu.Unlock()
}

// fail replaces whatever was streamed so far with a user-safe message and
// clears the typing gate.
func (c *Conversation) fail(placeholder int, err error) {
	c.logger.Error("failed to answer question", "error", err)

	text := genericErrorText
	if ai.IsQuotaError(err) {
		text = quotaErrorText
	}

	c.mu.Lock()
	c.messages[placeholder].Text = text
	c.typing = false
	c.mu.Unlock()
}
