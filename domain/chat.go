package domain

import "context"

// Llm abstracts the streaming chat provider.
type Llm interface {
	// StreamChat opens a streaming generation call. The returned channel
	// yields incremental text in the order the model produces it and is
	// closed once generation completes. A chunk carrying a non-nil Err is
	// the last chunk sent before close.
	StreamChat(ctx context.Context, system string, history []ChatTurn, message string) (<-chan StreamChunk, error)
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is part of the accepted vocabulary.
// History entries with any other role are rejected at the boundary.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ChatTurn is one message of a conversation. Turns are supplied by the
// client per request and never stored server-side.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ChatRequest carries one user utterance plus its rolling conversation
// state. Context is the free-text grounding document, treated as opaque.
type ChatRequest struct {
	Message string
	Context string
	History []ChatTurn
}

// StreamChunk is one incremental unit of generated text.
type StreamChunk struct {
	Text string
	Err  error
}
