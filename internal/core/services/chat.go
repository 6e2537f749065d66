package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docchat-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docchat-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ungroundedPrompt is used when retrieval produced no context.
const ungroundedPrompt = `You are a helpful assistant helping a user with their uploaded documents.
IMPORTANT: If the user asks a question about specific data, files, or facts, and you do not see the answer in the context provided below, you MUST say "I cannot find that information in your uploaded documents."
Do NOT make up facts. Do NOT use general knowledge to answer questions about specific entities if they are not in the context.`

// groundedPromptFormat wraps the retrieved context block.
const groundedPromptFormat = `You are a precise assistant. Your goal is to answer based ONLY on the provided context.

Strict Rules:
1. Use ONLY the information in the "Context from uploaded documents" below to answer the question.
2. If the answer is not explicitly in the context, say "I cannot find that information in your documents."
3. Do NOT use your general training data to answer questions about specific entities in the documents.
4. Do not mention that you are using a context block, just answer the question naturally but strictly based on the text.

Context from uploaded documents:
%s`

// ChatService answers questions grounded in the owner's documents.
// Retrieval is fail-open, so a retrieval problem shows up only as an
// ungrounded answer; an LLM failure is a real error.
type ChatService struct {
	retrieval driving.RetrievalService
	llm       driven.LLMService
}

// NewChatService creates a new chat service.
func NewChatService(retrieval driving.RetrievalService, llm driven.LLMService) *ChatService {
	return &ChatService{
		retrieval: retrieval,
		llm:       llm,
	}
}

// Ask answers the question using the owner's indexed documents.
func (s *ChatService) Ask(ctx context.Context, ownerID, question string, history []driven.ChatMessage) (string, error) {
	if s.llm == nil {
		return "", fmt.Errorf("%w: no language model configured", domain.ErrInvalidInput)
	}
	if question == "" {
		return "", fmt.Errorf("%w: question is required", domain.ErrInvalidInput)
	}

	system := ungroundedPrompt
	if block := s.retrieval.RetrieveContext(ctx, ownerID, question); block != "" {
		system = fmt.Sprintf(groundedPromptFormat, block)
		logger.Debug("Context injected into system prompt (%d characters)", len(block))
	} else {
		logger.Debug("No relevant context found")
	}

	messages := make([]driven.ChatMessage, 0, len(history)+2)
	messages = append(messages, driven.ChatMessage{Role: "system", Content: system})
	messages = append(messages, history...)
	messages = append(messages, driven.ChatMessage{Role: "user", Content: question})

	answer, err := s.llm.Chat(ctx, messages, driven.ChatOptions{})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return answer, nil
}
