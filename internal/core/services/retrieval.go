package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// DefaultTopK is the number of chunks retrieved per query.
const DefaultTopK = 3

// RetrievalService assembles the grounding context for a chat turn.
// It is fail-open: every failure degrades to an empty context, because
// an ungrounded answer beats a broken chat turn. This is the opposite
// of ingestion's policy and intentionally so.
type RetrievalService struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	topK     int
}

// NewRetrievalService creates a new retrieval service.
func NewRetrievalService(embedder driven.EmbeddingService, index driven.VectorIndex) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		index:    index,
		topK:     DefaultTopK,
	}
}

// SetTopK overrides the number of chunks retrieved per query.
// Values below one are ignored.
func (s *RetrievalService) SetTopK(k int) {
	if k > 0 {
		s.topK = k
	}
}

// RetrieveContext returns the owner's most relevant chunk texts joined
// by blank lines, in the order ranked by the index. On any failure it
// logs and returns "".
func (s *RetrievalService) RetrieveContext(ctx context.Context, ownerID, query string) string {
	logger.Section("Retrieval")
	logger.Debug("Query for owner %s: %q", ownerID, query)

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Retrieval degraded, embedding failed: %v", err)
		return ""
	}

	matches, err := s.index.Query(ctx, vector, s.topK, map[string]string{
		driven.FilterOwnerID: ownerID,
	})
	if err != nil {
		logger.Warn("Retrieval degraded, index query failed: %v", err)
		return ""
	}
	logger.Debug("Index returned %d matches", len(matches))

	texts := make([]string, 0, len(matches))
	for _, match := range matches {
		texts = append(texts, match.Metadata.Text)
	}
	return strings.Join(texts, "\n\n")
}
