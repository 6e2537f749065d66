package driving

import (
	"context"

	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
)

// ChatService answers questions grounded in the owner's documents.
type ChatService interface {
	// Ask retrieves context for the question, builds the grounded
	// prompt and returns the model's answer. History carries prior
	// turns of the conversation, oldest first.
	Ask(ctx context.Context, ownerID, question string, history []driven.ChatMessage) (string, error)
}
