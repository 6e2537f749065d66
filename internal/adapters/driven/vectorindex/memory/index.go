// Package memory provides an in-process implementation of the vector
// index port. It does exact cosine-similarity search over all stored
// vectors, which is plenty for tests and small local corpora.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an in-memory vector index.
type Index struct {
	mu      sync.RWMutex
	entries map[string]domain.VectorEntry
}

// NewIndex creates an empty in-memory index.
func NewIndex() *Index {
	return &Index{
		entries: make(map[string]domain.VectorEntry),
	}
}

// Upsert writes the entries, replacing any with the same id.
func (idx *Index) Upsert(_ context.Context, entries []domain.VectorEntry) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, entry := range entries {
		if entry.ID == "" {
			return fmt.Errorf("%w: vector entry without id", domain.ErrInvalidInput)
		}
		idx.entries[entry.ID] = entry
	}
	return nil
}

// Query returns the topK entries most similar to vector, restricted to
// entries whose metadata matches every filter key.
func (idx *Index) Query(_ context.Context, vector []float32, topK int, filter map[string]string) ([]domain.VectorMatch, error) {
	if topK <= 0 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	matches := make([]domain.VectorMatch, 0, len(idx.entries))
	for _, entry := range idx.entries {
		if !matchesFilter(entry.Metadata, filter) {
			continue
		}
		matches = append(matches, domain.VectorMatch{
			ID:       entry.ID,
			Score:    cosineSimilarity(vector, entry.Values),
			Metadata: entry.Metadata,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// DeleteByID removes the identified entries. Unknown ids are ignored.
func (idx *Index) DeleteByID(_ context.Context, ids []string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, id := range ids {
		delete(idx.entries, id)
	}
	return nil
}

// DeleteByFilter removes every entry matching all filter keys.
func (idx *Index) DeleteByFilter(_ context.Context, filter map[string]string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for id, entry := range idx.entries {
		if matchesFilter(entry.Metadata, filter) {
			delete(idx.entries, id)
		}
	}
	return nil
}

// Close releases resources.
func (idx *Index) Close() error {
	return nil
}

// Len returns the number of stored vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Has reports whether a vector with the given id is stored.
func (idx *Index) Has(id string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, ok := idx.entries[id]
	return ok
}

// matchesFilter checks metadata equality for every filter key.
// An empty filter matches everything.
func matchesFilter(md domain.VectorMetadata, filter map[string]string) bool {
	for key, want := range filter {
		switch key {
		case driven.FilterOwnerID:
			if md.OwnerID != want {
				return false
			}
		case driven.FilterFilename:
			if md.Filename != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// cosineSimilarity returns the cosine of the angle between a and b.
// Mismatched dimensions or zero vectors score zero.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
