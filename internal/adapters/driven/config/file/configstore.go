// Package file provides a TOML-backed configuration store.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all tunable settings, loaded from the TOML config file.
// Zero values are replaced with defaults on load.
type Config struct {
	Chunking  ChunkingConfig  `toml:"chunking"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Registry  RegistryConfig  `toml:"registry"`
	Pinecone  PineconeConfig  `toml:"pinecone"`
	OpenAI    OpenAIConfig    `toml:"openai"`
	Ollama    OllamaConfig    `toml:"ollama"`
}

// ChunkingConfig controls text splitting.
type ChunkingConfig struct {
	Size    int `toml:"size"`
	Overlap int `toml:"overlap"`
}

// RetrievalConfig controls context retrieval.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

// RegistryConfig controls document catalog storage.
type RegistryConfig struct {
	// DataDir is the directory holding the registry database.
	// Empty means ~/.docchat/data.
	DataDir string `toml:"data_dir"`
}

// PineconeConfig holds vector index connection settings. When Host is
// empty the in-memory index is used instead.
type PineconeConfig struct {
	Host      string `toml:"host"`
	APIKey    string `toml:"api_key"`
	Namespace string `toml:"namespace"`
}

// OpenAIConfig holds OpenAI API settings for embeddings and chat.
type OpenAIConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	EmbeddingModel string `toml:"embedding_model"`
	ChatModel      string `toml:"chat_model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// OllamaConfig holds local Ollama settings. When Model is set, Ollama
// is used for embeddings instead of OpenAI.
type OllamaConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// Timeout returns the configured OpenAI request timeout.
func (c OpenAIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default configuration values.
const (
	DefaultChunkSize      = 1000
	DefaultChunkOverlap   = 200
	DefaultTopK           = 3
	DefaultTimeoutSeconds = 60
)

// ConfigStore loads and persists the TOML configuration file.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	config   Config
}

// NewConfigStore creates a new TOML-based config store.
// If configDir is empty, defaults to ~/.docchat/config.toml.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".docchat")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}

	if err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Config returns a copy of the current configuration.
func (s *ConfigStore) Config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update applies fn to the configuration and persists the result.
func (s *ConfigStore) Update(fn func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.config)
	applyDefaults(&s.config)
	return s.save()
}

// Save persists the current configuration to disk.
func (s *ConfigStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes configuration to the TOML file (caller must hold lock).
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(s.config)
	if err != nil {
		return err
	}

	// Write with restricted permissions, the file may hold API keys
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads configuration from the TOML file. A missing file yields
// the default configuration.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cfg Config
	data, err := os.ReadFile(s.filePath)
	switch {
	case os.IsNotExist(err):
		// No config file yet - start with defaults
	case err != nil:
		return err
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parsing %s: %w", s.filePath, err)
		}
	}

	applyDefaults(&cfg)
	s.config = cfg
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// applyDefaults fills zero values with defaults.
func applyDefaults(cfg *Config) {
	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = DefaultChunkSize
	}
	if cfg.Chunking.Overlap == 0 {
		cfg.Chunking.Overlap = DefaultChunkOverlap
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = DefaultTopK
	}
	if cfg.OpenAI.TimeoutSeconds == 0 {
		cfg.OpenAI.TimeoutSeconds = DefaultTimeoutSeconds
	}
}
