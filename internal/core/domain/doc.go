// Package domain defines the core business entities for docchat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DocumentRecord: The durable catalog entry for an uploaded document
//   - VectorEntry: A (vector, metadata) pair held in the vector index
//   - VectorMatch: A similarity search hit with its metadata
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
