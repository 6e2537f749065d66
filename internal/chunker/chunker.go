// Package chunker provides fixed-size overlapping text splitting.
package chunker

import (
	"fmt"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultOverlap is the default number of overlapping characters
// between consecutive chunks.
const DefaultOverlap = 200

// Chunker splits text into fixed-size overlapping segments.
// Chunk k+1 starts (size - overlap) characters after chunk k, so
// consecutive chunks share exactly overlap characters. The final chunk
// is clipped to the end of the text rather than padded.
type Chunker struct {
	size    int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		c.size = size
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a chunker with the given options.
// A size of zero or less, a negative overlap, or an overlap that
// reaches the chunk size (which would stop the split from advancing)
// is a configuration error.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		size:    DefaultChunkSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrInvalidInput, c.size)
	}
	if c.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d", domain.ErrInvalidInput, c.overlap)
	}
	if c.overlap >= c.size {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d", domain.ErrInvalidInput, c.overlap, c.size)
	}

	return c, nil
}

// ChunkSize returns the configured chunk size.
func (c *Chunker) ChunkSize() int {
	return c.size
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split divides text into chunks. The result is deterministic and
// order-preserving: a chunk's slice index is its position in the text.
// Empty text yields no chunks.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}

	step := c.size - c.overlap
	chunks := make([]string, 0, len(text)/step+1)

	for start := 0; start < len(text); start += step {
		end := start + c.size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[start:end])
	}

	return chunks
}
