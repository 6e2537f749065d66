// Package pinecone provides a vector index adapter backed by the
// Pinecone data-plane REST API.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// DefaultTimeout bounds every index call.
const DefaultTimeout = 30 * time.Second

// Config holds configuration for the Pinecone index.
type Config struct {
	// Host is the index's data-plane host, e.g.
	// https://my-index-abc123.svc.us-east-1-aws.pinecone.io (required).
	Host string

	// APIKey is the Pinecone API key (required).
	APIKey string

	// Namespace optionally scopes all operations to one namespace.
	Namespace string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Index is a minimal REST client to a Pinecone index.
type Index struct {
	client    *http.Client
	host      string
	apiKey    string
	namespace string
}

// Wire formats for the Pinecone data-plane API.

type wireVector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type upsertRequest struct {
	Vectors   []wireVector `json:"vectors"`
	Namespace string       `json:"namespace,omitempty"`
}

type queryRequest struct {
	Vector          []float32      `json:"vector"`
	TopK            int            `json:"topK"`
	Filter          map[string]any `json:"filter,omitempty"`
	IncludeMetadata bool           `json:"includeMetadata"`
	Namespace       string         `json:"namespace,omitempty"`
}

type queryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float64        `json:"score"`
		Metadata map[string]any `json:"metadata"`
	} `json:"matches"`
}

type deleteRequest struct {
	IDs       []string       `json:"ids,omitempty"`
	Filter    map[string]any `json:"filter,omitempty"`
	Namespace string         `json:"namespace,omitempty"`
}

// NewIndex creates a new Pinecone-backed vector index.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("pinecone: host is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Index{
		client:    &http.Client{Timeout: cfg.Timeout},
		host:      cfg.Host,
		apiKey:    cfg.APIKey,
		namespace: cfg.Namespace,
	}, nil
}

// Upsert writes the entries to the index.
func (idx *Index) Upsert(ctx context.Context, entries []domain.VectorEntry) error {
	if len(entries) == 0 {
		return nil
	}

	vectors := make([]wireVector, len(entries))
	for i, entry := range entries {
		vectors[i] = wireVector{
			ID:     entry.ID,
			Values: entry.Values,
			Metadata: map[string]any{
				"text":                entry.Metadata.Text,
				"chunkIndex":          entry.Metadata.ChunkIndex,
				driven.FilterOwnerID:  entry.Metadata.OwnerID,
				driven.FilterFilename: entry.Metadata.Filename,
			},
		}
	}

	err := idx.postJSON(ctx, "/vectors/upsert", upsertRequest{
		Vectors:   vectors,
		Namespace: idx.namespace,
	}, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexWrite, err)
	}
	return nil
}

// Query returns the topK nearest vectors matching the filter.
func (idx *Index) Query(ctx context.Context, vector []float32, topK int, filter map[string]string) ([]domain.VectorMatch, error) {
	var resp queryResponse
	err := idx.postJSON(ctx, "/query", queryRequest{
		Vector:          vector,
		TopK:            topK,
		Filter:          equalityFilter(filter),
		IncludeMetadata: true,
		Namespace:       idx.namespace,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndexRead, err)
	}

	matches := make([]domain.VectorMatch, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		matches = append(matches, domain.VectorMatch{
			ID:       m.ID,
			Score:    m.Score,
			Metadata: metadataFromWire(m.Metadata),
		})
	}
	return matches, nil
}

// DeleteByID removes the identified vectors.
func (idx *Index) DeleteByID(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	err := idx.postJSON(ctx, "/vectors/delete", deleteRequest{
		IDs:       ids,
		Namespace: idx.namespace,
	}, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexDelete, err)
	}
	return nil
}

// DeleteByFilter removes every vector matching all filter entries.
func (idx *Index) DeleteByFilter(ctx context.Context, filter map[string]string) error {
	if len(filter) == 0 {
		return fmt.Errorf("%w: refusing unfiltered delete", domain.ErrInvalidInput)
	}
	err := idx.postJSON(ctx, "/vectors/delete", deleteRequest{
		Filter:    equalityFilter(filter),
		Namespace: idx.namespace,
	}, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndexDelete, err)
	}
	return nil
}

// Close releases resources.
func (idx *Index) Close() error {
	return nil
}

// equalityFilter converts a flat key/value filter into Pinecone's
// metadata filter expression.
func equalityFilter(filter map[string]string) map[string]any {
	if len(filter) == 0 {
		return nil
	}
	out := make(map[string]any, len(filter))
	for key, value := range filter {
		out[key] = map[string]any{"$eq": value}
	}
	return out
}

// metadataFromWire rebuilds typed metadata from the API's loose map.
func metadataFromWire(md map[string]any) domain.VectorMetadata {
	out := domain.VectorMetadata{}
	if v, ok := md["text"].(string); ok {
		out.Text = v
	}
	if v, ok := md[driven.FilterOwnerID].(string); ok {
		out.OwnerID = v
	}
	if v, ok := md[driven.FilterFilename].(string); ok {
		out.Filename = v
	}
	// JSON numbers decode as float64.
	if v, ok := md["chunkIndex"].(float64); ok {
		out.ChunkIndex = int(v)
	}
	return out
}

// postJSON posts body to path and decodes the response into out when
// out is not nil.
func (idx *Index) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, idx.host+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Key", idx.apiKey)

	resp, err := idx.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("pinecone POST %s failed: %s", path, resp.Status)
		}
		return fmt.Errorf("pinecone POST %s failed: %s: %s", path, resp.Status, string(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
