package gemini

import (
	"context"
	"log/slog"

	"github.com/poiesic/sollex/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Generator implements ai.Generator using the Gemini streaming API.
type Generator struct {
	client *googleai.GoogleAI
	config *ai.Config
	logger *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(client *googleai.GoogleAI, config *ai.Config) *Generator {
	return &Generator{
		client: client,
		config: config,
		logger: slog.Default().With("component", "gemini-generator"),
	}
}

// Stream generates text for the prompt, invoking onDelta for each fragment
// in the order the service produces it. The transport delivers fragments in
// order; they are forwarded as-is, never batched or reordered.
func (g *Generator) Stream(ctx context.Context, prompt string, onDelta func(delta string) error) error {
	g.logger.Debug("starting generation stream", "promptLength", len(prompt))

	ctx, cancel := context.WithTimeout(ctx, g.config.GenerateTimeout)
	defer cancel()

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	_, err := g.client.GenerateContent(ctx, content,
		llms.WithModel(g.config.GenerationModel),
		llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			if len(chunk) == 0 {
				return nil
			}
			return onDelta(string(chunk))
		}),
	)
	if err != nil {
		g.logger.Error("generation stream failed", "err", err)
		return classify(err)
	}
	return nil
}
