// Command docchat ingests PDF documents and answers questions grounded
// in their content.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	configfile "github.com/custodia-labs/docchat-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/custodia-labs/docchat-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/docchat-cli/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/extractor/pdf"
	openaillm "github.com/custodia-labs/docchat-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/registry/sqlite"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/vectorindex/memory"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driven/vectorindex/pinecone"
	"github.com/custodia-labs/docchat-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/docchat-cli/internal/chunker"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/services"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; environment wins over the config file.
	_ = godotenv.Load()

	// Backend selection logs below run before cobra parses flags, so
	// pick up the verbose flag here as well.
	for _, arg := range os.Args[1:] {
		if arg == "-v" || arg == "--verbose" {
			logger.SetVerbose(true)
		}
	}

	store, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := store.Config()
	applyEnvOverrides(&cfg)

	splitter, err := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)
	if err != nil {
		return fmt.Errorf("invalid chunking config: %w", err)
	}

	registry, err := sqlite.NewStore(cfg.Registry.DataDir)
	if err != nil {
		return fmt.Errorf("opening registry: %w", err)
	}
	defer registry.Close()

	index, err := buildIndex(cfg)
	if err != nil {
		return err
	}
	defer index.Close()

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	defer embedder.Close()

	ingest := services.NewIngestService(pdf.New(), embedder, index, registry, splitter)
	documents := services.NewDocumentService(registry, index)
	retrieval := services.NewRetrievalService(embedder, index)
	retrieval.SetTopK(cfg.Retrieval.TopK)

	// Chat needs an OpenAI key; without one the ask command reports
	// itself unconfigured and everything else still works.
	var chat *services.ChatService
	if cfg.OpenAI.APIKey != "" {
		llm, err := openaillm.NewLLMService(openaillm.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.ChatModel,
			Timeout: cfg.OpenAI.Timeout(),
		})
		if err != nil {
			return fmt.Errorf("configuring chat: %w", err)
		}
		defer llm.Close()
		chat = services.NewChatService(retrieval, llm)
	}

	cli.SetVersion(version)
	if chat != nil {
		cli.SetServices(ingest, documents, chat)
	} else {
		cli.SetServices(ingest, documents, nil)
	}
	return cli.Execute()
}

// buildIndex selects the vector index backend. Pinecone when a host is
// configured, otherwise the in-memory index (useful for local trials;
// vectors do not survive the process).
func buildIndex(cfg configfile.Config) (driven.VectorIndex, error) {
	if cfg.Pinecone.Host == "" {
		logger.Info("no pinecone host configured, using in-memory vector index")
		return memory.NewIndex(), nil
	}
	index, err := pinecone.NewIndex(pinecone.Config{
		Host:      cfg.Pinecone.Host,
		APIKey:    cfg.Pinecone.APIKey,
		Namespace: cfg.Pinecone.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring pinecone: %w", err)
	}
	return index, nil
}

// buildEmbedder selects the embedding backend. Ollama when a model is
// configured, otherwise OpenAI.
func buildEmbedder(cfg configfile.Config) (driven.EmbeddingService, error) {
	if cfg.Ollama.Model != "" {
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: cfg.Ollama.BaseURL,
			Model:   cfg.Ollama.Model,
		}), nil
	}
	embedder, err := openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:  cfg.OpenAI.APIKey,
		BaseURL: cfg.OpenAI.BaseURL,
		Model:   cfg.OpenAI.EmbeddingModel,
		Timeout: cfg.OpenAI.Timeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("configuring embeddings: %w", err)
	}
	return embedder, nil
}

// applyEnvOverrides lets environment variables override file config.
func applyEnvOverrides(cfg *configfile.Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("PINECONE_HOST"); v != "" {
		cfg.Pinecone.Host = v
	}
	if v := os.Getenv("PINECONE_API_KEY"); v != "" {
		cfg.Pinecone.APIKey = v
	}
	if v := os.Getenv("PINECONE_NAMESPACE"); v != "" {
		cfg.Pinecone.Namespace = v
	}
}
