package driven

import "context"

// TextExtractor converts an uploaded file into plain text.
//
// Implementations may include:
//   - PDF (ledongthuc/pdf)
//   - Plain text passthrough
type TextExtractor interface {
	// Extract returns the plain text content of the file.
	// An unsupported or unreadable format yields domain.ErrExtraction.
	Extract(ctx context.Context, data []byte) (string, error)

	// SupportedMIMETypes returns the MIME types this extractor handles.
	SupportedMIMETypes() []string
}
