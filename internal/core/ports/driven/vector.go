package driven

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// VectorIndex stores (vector, metadata) pairs and answers filtered
// similarity queries. The index has no native tenancy: owner isolation
// is enforced entirely by callers including the owner id in every
// query and delete filter.
type VectorIndex interface {
	// Upsert writes the entries to the index. Callers are responsible
	// for batching; a single call should stay within the backend's
	// batch limits.
	Upsert(ctx context.Context, entries []domain.VectorEntry) error

	// Query returns the topK nearest vectors to the query vector,
	// restricted to vectors whose metadata matches every filter entry.
	// Results are ranked by the index; callers do not re-rank.
	Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]domain.VectorMatch, error)

	// DeleteByID removes the identified vectors. IDs that do not exist
	// are ignored.
	DeleteByID(ctx context.Context, ids []string) error

	// DeleteByFilter removes every vector whose metadata matches all
	// filter entries.
	DeleteByFilter(ctx context.Context, filter map[string]string) error

	// Close releases resources.
	Close() error
}

// Metadata filter keys understood by every VectorIndex implementation.
const (
	// FilterOwnerID scopes an operation to one owner. Required on every
	// query and filtered delete; omitting it risks cross-tenant leakage.
	FilterOwnerID = "ownerId"

	// FilterFilename scopes an operation to one source document.
	FilterFilename = "fileName"
)
