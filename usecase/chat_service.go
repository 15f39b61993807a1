package usecase

import (
	"context"

	"github.com/andriga/assistant-api/domain"
)

// ChatService runs the conversational pipeline: prompt assembly followed
// by a streaming model call. Everything is request-scoped; no
// conversation state survives the call.
type ChatService struct {
	llm domain.Llm
}

// NewChatService wraps the streaming provider. A nil provider puts the
// service in fallback-only mode, which is a supported configuration.
func NewChatService(llm domain.Llm) *ChatService {
	return &ChatService{llm: llm}
}

// Configured reports whether a live model call is possible.
func (s *ChatService) Configured() bool {
	return s.llm != nil
}

// Stream assembles the grounding prompt and opens the streaming call.
// The request's original message stays untouched; only the text handed
// to the model is enhanced for short replies.
func (s *ChatService) Stream(ctx context.Context, req domain.ChatRequest) (<-chan domain.StreamChunk, error) {
	system := BuildSystemPrompt(req.Context)
	history := NormalizeHistory(req.History)
	message := EnhanceShortMessage(req.Message, history)
	return s.llm.StreamChat(ctx, system, history, message)
}

// Fallback returns the canned answer for a message.
func (s *ChatService) Fallback(message string) string {
	return FallbackResponse(message)
}
