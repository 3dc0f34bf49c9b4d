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


package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/poiesic/sollex"
	"github.com/poiesic/sollex/ai"
	"github.com/poiesic/sollex/conversation"
	"github.com/poiesic/sollex/ingestion"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "sollex",
		Usage: "Retrieval-backed legal Q&A over a document corpus",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Ingest a directory of documents into the vector store",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "root",
						Aliases:  []string{"r"},
						Usage:    "Directory of documents to ingest",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "collection",
						Usage: "Vector store collection name",
						Value: "corpus",
					},
					&cli.StringFlag{
						Name:  "embedding-model",
						Usage: "Embedding model name",
						Value: "text-embedding-004",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of files to embed in each batch",
						Value: ingestion.DefaultBatchSize,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Worker pool size for concurrent extraction (0 = auto)",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding batches",
						Value: ingestion.DefaultMaxRetries,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: ingestion.DefaultRetryDelay,
					},
				},
			},
			{
				Name:      "ask",
				Usage:     "Ask a single question against the corpus",
				ArgsUsage: "QUESTION",
				Action:    askCommand,
				Flags:     append(storeFlags(), topKFlag()),
			},
			{
				Name:   "chat",
				Usage:  "Interactive chat session against the corpus",
				Action: chatCommand,
				Flags:  append(storeFlags(), topKFlag()),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "collection",
			Usage: "Vector store collection name",
			Value: "corpus",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-004",
		},
		&cli.StringFlag{
			Name:  "generation-model",
			Usage: "Generation model name",
			Value: "gemini-1.5-flash-latest",
		},
	}
}

func topKFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "top-k",
		Usage: "Number of chunks to retrieve per question",
		Value: 2,
	}
}

// apiKeyFromEnv reads the credential from the environment. The key is never
// accepted as a flag: command lines leak through shell history and process
// listings.
func apiKeyFromEnv() (string, error) {
	key := os.Getenv("GOOGLE_API_KEY")
	if key == "" {
		return "", fmt.Errorf("GOOGLE_API_KEY is not set")
	}
	return key, nil
}

func openStore(ctx context.Context, c *cli.Context) (*sollex.Store, error) {
	key, err := apiKeyFromEnv()
	if err != nil {
		return nil, err
	}

	aiConfig := ai.NewConfig(
		ai.WithAPIKey(key),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGenerationModel(c.String("generation-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	store, err := sollex.Open(ctx, c.String("db"),
		sollex.WithAIConfig(aiConfig),
		sollex.WithCollection(c.String("collection")))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	key, err := apiKeyFromEnv()
	if err != nil {
		return err
	}
	aiConfig := ai.NewConfig(
		ai.WithAPIKey(key),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	store, err := sollex.Open(ctx, c.String("db"),
		sollex.WithAIConfig(aiConfig),
		sollex.WithCollection(c.String("collection")))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	opts := []ingestion.Option{
		ingestion.WithBatchSize(c.Int("batch-size")),
		ingestion.WithMaxRetries(c.Int("max-retries")),
		ingestion.WithRetryDelay(c.Duration("retry-delay")),
		ingestion.WithProgress(os.Stderr),
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingestion.WithPoolSize(size))
	}

	pipeline, err := store.NewIngestionPipeline(opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Corpus: %s\n", c.String("root"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	report, err := pipeline.Run(ctx, c.String("root"))
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d/%d files (%d skipped, %d failed batches), %d chunks stored in %v\n",
		report.FilesIngested, report.FilesFound, report.FilesSkipped,
		report.BatchesFailed, report.ChunksStored, report.Elapsed.Round(time.Millisecond))
	return nil
}

func askCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("a question is required")
	}

	ctx := context.Background()
	store, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	conv := store.NewConversation(c.Int("top-k"))
	if !conv.Submit(ctx, question) {
		return fmt.Errorf("question was rejected")
	}

	transcript := conv.Transcript()
	fmt.Println(transcript[len(transcript)-1].Text)
	return nil
}

func chatCommand(c *cli.Context) error {
	ctx := context.Background()
	store, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer store.Close()

	conv := store.NewConversation(c.Int("top-k"))
	rotator := conversation.NewPromptRotator(nil, conversation.DefaultRotationInterval)
	rotator.Start()
	defer rotator.Stop()

	for _, msg := range conv.Transcript() {
		fmt.Printf("minerva> %s\n\n", msg.Text)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("you (try: %s)\n> ", rotator.Current())
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "/quit" || question == "/exit" {
			break
		}

		before := len(conv.Transcript())
		if !conv.Submit(ctx, question) {
			continue
		}
		transcript := conv.Transcript()
		for _, msg := range transcript[before:] {
			if !msg.IsUser {
				fmt.Printf("\nminerva> %s\n\n", msg.Text)
			}
		}
	}
	return scanner.Err()
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
