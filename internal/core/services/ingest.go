package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docchat-cli/internal/chunker"
	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// MinTextLength is the minimum number of extracted characters required
// to index a document. Shorter extractions are almost always scanned,
// image-only PDFs that would end up silently unsearchable.
const MinTextLength = 50

// UpsertBatchSize is the number of vectors sent to the index per upsert
// call, matching the backend's batch limits.
const UpsertBatchSize = 50

// IngestService drives extract, chunk, embed and upsert for uploads.
// It is fail-closed: any failure rejects the upload and leaves no
// registry entry, so a half-indexed document is never visible as done.
type IngestService struct {
	extractor driven.TextExtractor
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	registry  driven.DocumentRegistry
	splitter  *chunker.Chunker
	now       func() time.Time
}

// NewIngestService creates a new ingest service.
// Splitter may be nil, in which case the default chunking parameters
// are used.
func NewIngestService(
	extractor driven.TextExtractor,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	registry driven.DocumentRegistry,
	splitter *chunker.Chunker,
) *IngestService {
	if splitter == nil {
		// Defaults are always valid.
		splitter, _ = chunker.New()
	}
	return &IngestService{
		extractor: extractor,
		embedder:  embedder,
		index:     index,
		registry:  registry,
		splitter:  splitter,
		now:       time.Now,
	}
}

// Ingest processes an uploaded file into an indexed, cataloged document.
func (s *IngestService) Ingest(ctx context.Context, ownerID, filename string, data []byte) (*domain.DocumentRecord, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", domain.ErrInvalidInput)
	}
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", domain.ErrInvalidInput)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", domain.ErrInvalidInput)
	}

	// External stores reject non-ASCII metadata, so only the sanitized
	// name ever leaves this process. The original stays on the record
	// for display.
	sanitized := domain.SanitizeFilename(filename)

	logger.Section("Ingestion")
	logger.Info("Processing document %q for owner %s", sanitized, ownerID)

	text, err := s.extractor.Extract(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", sanitized, err)
	}
	logger.Debug("Extracted %d characters", len(text))

	if len(strings.TrimSpace(text)) < MinTextLength {
		return nil, fmt.Errorf("%w: could not extract text - likely a scanned document", domain.ErrEmptyDocument)
	}

	chunks := s.splitter.Split(text)
	logger.Debug("Generated %d chunks", len(chunks))

	entries, err := s.embedChunks(ctx, chunks, ownerID, sanitized)
	if err != nil {
		return nil, err
	}

	if err := s.upsertBatches(ctx, entries); err != nil {
		return nil, err
	}

	vectorIDs := make([]string, len(entries))
	for i, entry := range entries {
		vectorIDs[i] = entry.ID
	}

	record := &domain.DocumentRecord{
		OwnerID:          ownerID,
		Filename:         sanitized,
		OriginalFilename: filename,
		SizeBytes:        int64(len(data)),
		ChunkCount:       len(chunks),
		VectorIDs:        vectorIDs,
		UploadedAt:       s.now().UTC(),
	}

	// The record is created only now, after every vector is in the
	// index, so the catalog never lists a vectorless document.
	if err := s.registry.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create document record: %w", err)
	}

	logger.Info("Document %s indexed: %d chunks", record.ID, record.ChunkCount)
	return record, nil
}

// embedChunks embeds every chunk in index order. Chunks are processed
// sequentially to cap external API concurrency and keep error
// attribution unambiguous; a single failure aborts the whole upload.
func (s *IngestService) embedChunks(ctx context.Context, chunks []string, ownerID, filename string) ([]domain.VectorEntry, error) {
	entries := make([]domain.VectorEntry, 0, len(chunks))
	for i, chunk := range chunks {
		values, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("%w: chunk %d of %d: %v", domain.ErrEmbedding, i, len(chunks), err)
		}
		entries = append(entries, domain.VectorEntry{
			ID:     uuid.NewString(),
			Values: values,
			Metadata: domain.VectorMetadata{
				Text:       chunk,
				OwnerID:    ownerID,
				Filename:   filename,
				ChunkIndex: i,
			},
		})
	}
	return entries, nil
}

// upsertBatches writes the entries in sequential fixed-size batches.
// A batch failure aborts the remaining batches; entries from earlier
// batches stay in the index and are not rolled back.
func (s *IngestService) upsertBatches(ctx context.Context, entries []domain.VectorEntry) error {
	total := (len(entries) + UpsertBatchSize - 1) / UpsertBatchSize
	for i := 0; i < len(entries); i += UpsertBatchSize {
		end := i + UpsertBatchSize
		if end > len(entries) {
			end = len(entries)
		}
		batchNum := i/UpsertBatchSize + 1
		logger.Debug("Upserting batch %d of %d", batchNum, total)
		if err := s.index.Upsert(ctx, entries[i:end]); err != nil {
			return fmt.Errorf("%w: batch %d of %d: %v", domain.ErrIndexWrite, batchNum, total, err)
		}
	}
	return nil
}
