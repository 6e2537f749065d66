package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages the document catalog and deletion.
type DocumentService struct {
	registry driven.DocumentRegistry
	index    driven.VectorIndex
}

// NewDocumentService creates a new document service.
func NewDocumentService(registry driven.DocumentRegistry, index driven.VectorIndex) *DocumentService {
	return &DocumentService{
		registry: registry,
		index:    index,
	}
}

// List returns the owner's documents, newest first.
func (s *DocumentService) List(ctx context.Context, ownerID string) ([]domain.DocumentRecord, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", domain.ErrInvalidInput)
	}
	return s.registry.ListByOwner(ctx, ownerID)
}

// Get retrieves a single document owned by ownerID.
// A record owned by someone else yields domain.ErrUnauthorized.
func (s *DocumentService) Get(ctx context.Context, ownerID, documentID string) (*domain.DocumentRecord, error) {
	record, err := s.registry.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if record.OwnerID != ownerID {
		return nil, domain.ErrUnauthorized
	}
	return record, nil
}

// DeleteDocuments removes the identified documents and their vectors.
//
// Ownership is validated per document: ids belonging to another owner
// are excluded from the batch rather than failing it, so one user can
// never delete another's document by listing its id. The union of the
// selected records' vector ids is removed from the index in a single
// best-effort call; an index failure is logged and registry cleanup
// proceeds anyway, since refusing would permanently strand a document
// whose index-side metadata has become unreachable. Registry deletion
// failures are fatal for that record.
func (s *DocumentService) DeleteDocuments(ctx context.Context, ownerID string, documentIDs []string) (int, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("%w: owner id is required", domain.ErrInvalidInput)
	}
	if len(documentIDs) == 0 {
		return 0, fmt.Errorf("%w: no document ids provided", domain.ErrInvalidInput)
	}

	logger.Section("Deletion")

	var (
		owned     []domain.DocumentRecord
		vectorIDs []string
	)
	for _, id := range documentIDs {
		record, err := s.registry.Get(ctx, id)
		if err != nil {
			logger.Debug("Skipping %s: %v", id, err)
			continue
		}
		if record.OwnerID != ownerID {
			logger.Debug("Skipping %s: owned by another user", id)
			continue
		}
		owned = append(owned, *record)
		if record.HasVectorIDs() {
			vectorIDs = append(vectorIDs, record.VectorIDs...)
		} else {
			// Legacy records predate vector id tracking. There is
			// nothing safe to delete from the index for them.
			logger.Warn("Document %s has no vector ids, vector cleanup skipped", record.ID)
		}
	}

	if len(owned) == 0 {
		return 0, fmt.Errorf("%w: no documents found", domain.ErrNotFound)
	}

	if len(vectorIDs) > 0 {
		logger.Debug("Deleting %d vectors", len(vectorIDs))
		if err := s.index.DeleteByID(ctx, vectorIDs); err != nil {
			// Best effort: the registry is what the user sees, and an
			// unreachable index must not make a document undeletable.
			logger.Warn("Vector delete failed, proceeding with registry cleanup: %v", err)
		}
	}

	deleted := 0
	for _, record := range owned {
		if err := s.registry.Delete(ctx, record.ID); err != nil {
			logger.Error("Registry delete failed for %s: %v", record.ID, err)
			continue
		}
		deleted++
	}

	if deleted == 0 {
		return 0, fmt.Errorf("delete documents: registry removal failed for all %d documents", len(owned))
	}

	logger.Info("Deleted %d of %d documents", deleted, len(owned))
	return deleted, nil
}
