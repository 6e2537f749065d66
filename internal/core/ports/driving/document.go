package driving

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// DocumentService manages the document catalog.
type DocumentService interface {
	// List returns the owner's documents, newest first.
	List(ctx context.Context, ownerID string) ([]domain.DocumentRecord, error)

	// Get retrieves a single document owned by ownerID.
	Get(ctx context.Context, ownerID, documentID string) (*domain.DocumentRecord, error)

	// DeleteDocuments removes the identified documents and their
	// vectors. Documents not owned by ownerID are silently excluded
	// from the batch. Vector cleanup is best-effort; registry removal
	// is authoritative. Returns the number of documents deleted.
	DeleteDocuments(ctx context.Context, ownerID string, documentIDs []string) (int, error)
}
