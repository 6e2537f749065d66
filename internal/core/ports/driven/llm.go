package driven

import "context"

// LLMService provides text generation for grounded chat answers.
// This is an optional service - when nil, the ask command is disabled.
//
// Implementations may include:
//   - OpenAI (gpt-4o-mini, gpt-4o)
//   - Any OpenAI-compatible inference server
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the
	// assistant's reply.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
