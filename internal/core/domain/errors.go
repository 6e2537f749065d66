package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates an entity exists but belongs to another owner.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidInput indicates malformed input or misconfiguration.
	ErrInvalidInput = errors.New("invalid input")

	// Ingestion Errors.

	// ErrExtraction indicates text could not be extracted from the file.
	// The format is unsupported or the file is unreadable.
	ErrExtraction = errors.New("text extraction failed")

	// ErrEmptyDocument indicates extraction yielded too little text to
	// index. Typical cause is a scanned, image-only PDF.
	ErrEmptyDocument = errors.New("document contains no extractable text")

	// ErrEmbedding indicates the embedding service failed for a chunk.
	// Ingestion aborts rather than leaving a partially searchable document.
	ErrEmbedding = errors.New("embedding failed")

	// Vector Index Errors.

	// ErrIndexWrite indicates a batch upsert to the vector index failed.
	// Earlier batches of the same document may already be written; the
	// pipeline does not roll them back.
	ErrIndexWrite = errors.New("vector index write failed")

	// ErrIndexRead indicates a similarity query failed.
	// Retrieval recovers from this with an empty context.
	ErrIndexRead = errors.New("vector index read failed")

	// ErrIndexDelete indicates a vector deletion failed.
	// Deletion logs this and still removes the registry entry.
	ErrIndexDelete = errors.New("vector index delete failed")
)
