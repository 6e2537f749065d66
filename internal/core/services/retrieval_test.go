package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	registrymem "github.com/custodia-labs/docchat-cli/internal/adapters/driven/registry/memory"
	vectormem "github.com/custodia-labs/docchat-cli/internal/adapters/driven/vectorindex/memory"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func TestRetrieveContext_JoinsMatchesInIndexOrder(t *testing.T) {
	index := vectormem.NewIndex()
	require.NoError(t, index.Upsert(context.Background(), []domain.VectorEntry{
		{ID: "v1", Values: letterFrequency("aaaa"), Metadata: domain.VectorMetadata{Text: "first chunk", OwnerID: "alice"}},
		{ID: "v2", Values: letterFrequency("aaab"), Metadata: domain.VectorMetadata{Text: "second chunk", OwnerID: "alice"}},
		{ID: "v3", Values: letterFrequency("zzzz"), Metadata: domain.VectorMetadata{Text: "unrelated", OwnerID: "alice"}},
	}))

	svc := NewRetrievalService(newMockEmbedder(), index)
	svc.SetTopK(2)

	got := svc.RetrieveContext(context.Background(), "alice", "aaaa")
	assert.Equal(t, "first chunk\n\nsecond chunk", got)
}

func TestRetrieveContext_EmbeddingFailureIsFailOpen(t *testing.T) {
	embedder := newMockEmbedder()
	embedder.err = domain.ErrEmbedding

	svc := NewRetrievalService(embedder, vectormem.NewIndex())
	assert.Empty(t, svc.RetrieveContext(context.Background(), "alice", "anything"))
}

func TestRetrieveContext_IndexFailureIsFailOpen(t *testing.T) {
	index := newRecordingIndex(vectormem.NewIndex())
	index.queryErr = domain.ErrIndexRead

	svc := NewRetrievalService(newMockEmbedder(), index)
	assert.Empty(t, svc.RetrieveContext(context.Background(), "alice", "anything"))
}

func TestRetrieveContext_NoMatches(t *testing.T) {
	svc := NewRetrievalService(newMockEmbedder(), vectormem.NewIndex())
	assert.Empty(t, svc.RetrieveContext(context.Background(), "alice", "anything"))
}

func TestRetrieveContext_OwnerIsolation(t *testing.T) {
	index := vectormem.NewIndex()
	registry := registrymem.NewStore()
	embedder := newMockEmbedder()
	splitter := newTestChunker(t, 80, 16)
	ingest := NewIngestService(&mockExtractor{text: sampleText}, embedder, index, registry, splitter)

	// Both owners ingest identical content.
	_, err := ingest.Ingest(context.Background(), "alice", "report.pdf", []byte("%PDF"))
	require.NoError(t, err)
	_, err = ingest.Ingest(context.Background(), "bob", "report.pdf", []byte("%PDF"))
	require.NoError(t, err)

	svc := NewRetrievalService(embedder, index)
	svc.SetTopK(10)

	got := svc.RetrieveContext(context.Background(), "alice", "quarterly report revenue")
	assert.NotEmpty(t, got)

	// Counting matches through the index directly: every hit for the
	// alice-scoped query belongs to alice.
	matches, err := index.Query(context.Background(), letterFrequency("quarterly report revenue"), 10,
		map[string]string{"ownerId": "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	for _, match := range matches {
		assert.Equal(t, "alice", match.Metadata.OwnerID)
	}
}

func TestRetrieveContext_SeparatorIsBlankLine(t *testing.T) {
	index := vectormem.NewIndex()
	require.NoError(t, index.Upsert(context.Background(), []domain.VectorEntry{
		{ID: "v1", Values: letterFrequency("abc"), Metadata: domain.VectorMetadata{Text: "alpha", OwnerID: "alice"}},
		{ID: "v2", Values: letterFrequency("abd"), Metadata: domain.VectorMetadata{Text: "beta", OwnerID: "alice"}},
	}))

	svc := NewRetrievalService(newMockEmbedder(), index)
	got := svc.RetrieveContext(context.Background(), "alice", "abc")
	assert.Equal(t, 2, len(strings.Split(got, "\n\n")))
}
