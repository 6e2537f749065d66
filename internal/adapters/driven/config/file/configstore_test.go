package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_NoFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	cfg := store.Config()
	assert.Equal(t, DefaultChunkSize, cfg.Chunking.Size)
	assert.Equal(t, DefaultChunkOverlap, cfg.Chunking.Overlap)
	assert.Equal(t, DefaultTopK, cfg.Retrieval.TopK)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.OpenAI.TimeoutSeconds)
}

func TestNewConfigStore_LoadsExistingFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[chunking]
size = 500
overlap = 100

[pinecone]
host = "https://index.example.pinecone.io"
api_key = "pc-key"
namespace = "prod"

[openai]
api_key = "sk-test"
chat_model = "gpt-4o"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	cfg := store.Config()
	assert.Equal(t, 500, cfg.Chunking.Size)
	assert.Equal(t, 100, cfg.Chunking.Overlap)
	assert.Equal(t, "https://index.example.pinecone.io", cfg.Pinecone.Host)
	assert.Equal(t, "pc-key", cfg.Pinecone.APIKey)
	assert.Equal(t, "prod", cfg.Pinecone.Namespace)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.ChatModel)

	// Unset sections still get defaults.
	assert.Equal(t, DefaultTopK, cfg.Retrieval.TopK)
}

func TestNewConfigStore_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0600))

	_, err := NewConfigStore(dir)
	assert.Error(t, err)
}

func TestUpdate_Persists(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	err = store.Update(func(cfg *Config) {
		cfg.OpenAI.APIKey = "sk-new"
		cfg.Retrieval.TopK = 5
	})
	require.NoError(t, err)

	// Reload from disk and verify the change survived.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	cfg := reloaded.Config()
	assert.Equal(t, "sk-new", cfg.OpenAI.APIKey)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
}

func TestSave_RestrictedPermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save())

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
