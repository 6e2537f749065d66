package driving

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// IngestService turns an uploaded file into an indexed document.
type IngestService interface {
	// Ingest extracts, chunks, embeds and indexes the file, then
	// records the resulting document in the registry. It is
	// fail-closed: any error leaves no registry entry, though vectors
	// from batches written before a late failure may remain in the
	// index.
	Ingest(ctx context.Context, ownerID, filename string, data []byte) (*domain.DocumentRecord, error)
}
