package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockExtractor implements driven.TextExtractor for testing.
type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func (m *mockExtractor) SupportedMIMETypes() []string {
	return []string{"application/pdf"}
}

// mockEmbedder implements driven.EmbeddingService for testing.
// It produces letter-frequency vectors, so identical texts embed
// identically and overlapping texts land close together. failAfter
// makes the n+1th call fail when set to n >= 0.
type mockEmbedder struct {
	err       error
	failAfter int
	calls     int
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{failAfter: -1}
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.failAfter >= 0 && m.calls >= m.failAfter {
		return nil, domain.ErrEmbedding
	}
	m.calls++
	return letterFrequency(text), nil
}

func (m *mockEmbedder) Dimensions() int { return 26 }

func (m *mockEmbedder) ModelName() string { return "mock-embed" }

func (m *mockEmbedder) Close() error { return nil }

// letterFrequency embeds text as counts of a-z.
func letterFrequency(text string) []float32 {
	vector := make([]float32, 26)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			vector[r-'a']++
		}
	}
	return vector
}

// recordingIndex implements driven.VectorIndex, recording upsert
// batches and optionally failing a chosen batch. Successful batches
// are forwarded to the wrapped index so their entries stay queryable.
type recordingIndex struct {
	inner       driven.VectorIndex
	batchSizes  []int
	failOnBatch int // 1-based, 0 means never
	queryErr    error
	deleteErr   error
	deletedIDs  [][]string
}

func newRecordingIndex(inner driven.VectorIndex) *recordingIndex {
	return &recordingIndex{inner: inner}
}

func (r *recordingIndex) Upsert(ctx context.Context, entries []domain.VectorEntry) error {
	if r.failOnBatch > 0 && len(r.batchSizes)+1 == r.failOnBatch {
		return domain.ErrIndexWrite
	}
	r.batchSizes = append(r.batchSizes, len(entries))
	return r.inner.Upsert(ctx, entries)
}

func (r *recordingIndex) Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]domain.VectorMatch, error) {
	if r.queryErr != nil {
		return nil, r.queryErr
	}
	return r.inner.Query(ctx, vector, topK, filter)
}

func (r *recordingIndex) DeleteByID(ctx context.Context, ids []string) error {
	r.deletedIDs = append(r.deletedIDs, ids)
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.inner.DeleteByID(ctx, ids)
}

func (r *recordingIndex) DeleteByFilter(ctx context.Context, filter map[string]string) error {
	return r.inner.DeleteByFilter(ctx, filter)
}

func (r *recordingIndex) Close() error { return nil }

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	answer   string
	err      error
	messages []driven.ChatMessage
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.messages = messages
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }

func (m *mockLLM) Close() error { return nil }

// mockRetrieval implements driving.RetrievalService for chat tests.
type mockRetrieval struct {
	context string
}

func (m *mockRetrieval) RetrieveContext(_ context.Context, _, _ string) string {
	return m.context
}
