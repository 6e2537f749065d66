package domain

import (
	"strings"
	"time"
)

// DocumentRecord is the durable catalog entry for an uploaded document.
// It is created only after ingestion has fully succeeded, never before,
// so the catalog never lists a document that has no vectors behind it.
type DocumentRecord struct {
	// ID is the registry-assigned identifier.
	ID string

	// OwnerID identifies the uploading user. Every vector operation
	// downstream of the record is scoped by this value.
	OwnerID string

	// Filename is the sanitized storage name (ASCII only).
	Filename string

	// OriginalFilename is the display name as uploaded.
	OriginalFilename string

	// SizeBytes is the size of the uploaded file.
	SizeBytes int64

	// ChunkCount is the number of chunks produced at ingestion.
	// Equals len(VectorIDs) for every record this pipeline creates.
	ChunkCount int

	// VectorIDs lists, in chunk order, the identifier of every vector
	// produced from this document. Records predating this field may
	// carry an empty list; deletion treats those as "skip vector cleanup".
	VectorIDs []string

	// UploadedAt is when ingestion completed.
	UploadedAt time.Time
}

// HasVectorIDs reports whether the record carries its vector identifiers.
// Legacy records created before vector ids were tracked return false.
func (r *DocumentRecord) HasVectorIDs() bool {
	return len(r.VectorIDs) > 0
}

// VectorEntry is a single (vector, metadata) pair destined for the
// vector index. IDs are generated by the ingestion pipeline before the
// upsert call so the registry can reference them even if the upsert
// has to be retried by a caller.
type VectorEntry struct {
	// ID is the pipeline-generated unique identifier.
	ID string

	// Values is the embedding. Dimensionality is fixed by the embedding
	// model and constant across the whole index.
	Values []float32

	// Metadata carries the chunk text plus the isolation and diagnostic
	// fields. OwnerID here is the sole tenancy mechanism: the index has
	// no native partitioning, so every query and filtered delete must
	// include it.
	Metadata VectorMetadata
}

// VectorMetadata is the metadata attached to every vector.
type VectorMetadata struct {
	// Text is the chunk content.
	Text string

	// OwnerID scopes the vector to the uploading user.
	OwnerID string

	// Filename is the sanitized name of the source document.
	Filename string

	// ChunkIndex is the chunk's position in the source document.
	// Diagnostic only; retrieval does not reorder by it.
	ChunkIndex int
}

// VectorMatch is a similarity search hit.
type VectorMatch struct {
	// ID is the matched vector's identifier.
	ID string

	// Score is the similarity score as ranked by the index.
	Score float64

	// Metadata is the stored metadata for the matched vector.
	Metadata VectorMetadata
}

// SanitizeFilename replaces every non-ASCII byte of name with an
// underscore. Some external stores reject non-ASCII metadata values,
// so the sanitized form is used for every external call while the
// original is kept for display.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r > 0x7F {
			b.WriteByte('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
