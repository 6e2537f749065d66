package driving

import "context"

// RetrievalService assembles grounding context for a chat turn.
type RetrievalService interface {
	// RetrieveContext embeds the query, finds the owner's most similar
	// chunks and concatenates their text into a single context block.
	// It is fail-open: on any failure it returns the empty string so
	// the chat turn can proceed ungrounded.
	RetrieveContext(ctx context.Context, ownerID, query string) string
}
