// Package memory provides an in-memory implementation of the document
// registry port, used in tests and as a throwaway local mode.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DocumentRegistry = (*Store)(nil)

// Store is an in-memory document registry.
type Store struct {
	mu      sync.RWMutex
	records map[string]domain.DocumentRecord
}

// NewStore creates an empty in-memory registry.
func NewStore() *Store {
	return &Store{
		records: make(map[string]domain.DocumentRecord),
	}
}

// Create stores a new record and assigns its ID.
func (s *Store) Create(_ context.Context, record *domain.DocumentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	s.records[record.ID] = *record
	return nil
}

// Get retrieves a record by ID.
func (s *Store) Get(_ context.Context, id string) (*domain.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &record, nil
}

// ListByOwner returns all records for an owner, newest first.
func (s *Store) ListByOwner(_ context.Context, ownerID string) ([]domain.DocumentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var records []domain.DocumentRecord
	for _, record := range s.records {
		if record.OwnerID == ownerID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UploadedAt.After(records[j].UploadedAt)
	})
	return records, nil
}

// Delete removes a record by ID.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return nil
}
