// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the pipeline to function:
//
//   - TextExtractor: Converts an uploaded file into plain text
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndex: Stores vectors and answers filtered similarity queries
//   - DocumentRegistry: Document catalog persistence
//
// # Optional Interfaces
//
//   - LLMService: Text generation for grounded chat answers. When nil,
//     upload/list/delete still work; only "ask" is unavailable.
package driven
