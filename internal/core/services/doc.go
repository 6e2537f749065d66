// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The failure policy differs deliberately per service and must stay
// that way: ingestion is fail-closed, retrieval is fail-open, and
// deletion is best-effort toward the vector index with the registry
// as the authority. Retries belong to callers, never to this layer.
package services
