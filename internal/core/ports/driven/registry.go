package driven

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// DocumentRegistry persists the document catalog.
// Backed by SQLite for metadata storage.
//
// The registry is the authoritative record of what a user sees: a
// document exists for the user exactly when its record exists here,
// regardless of what the vector index holds.
type DocumentRegistry interface {
	// Create stores a new record and assigns its ID.
	Create(ctx context.Context, record *domain.DocumentRecord) error

	// Get retrieves a record by ID.
	// Returns domain.ErrNotFound if no record exists.
	Get(ctx context.Context, id string) (*domain.DocumentRecord, error)

	// ListByOwner returns all records for an owner, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.DocumentRecord, error)

	// Delete removes a record by ID.
	// Returns domain.ErrNotFound if no record exists.
	Delete(ctx context.Context, id string) error

	// Close releases resources.
	Close() error
}
