package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andriga/assistant-api/domain"
	"github.com/andriga/assistant-api/usecase"
)

type fakeLlm struct {
	chunks  []domain.StreamChunk
	openErr error
}

func (f *fakeLlm) StreamChat(ctx context.Context, system string, history []domain.ChatTurn, message string) (<-chan domain.StreamChunk, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	out := make(chan domain.StreamChunk, len(f.chunks))
	for _, c := range f.chunks {
		out <- c
	}
	close(out)
	return out, nil
}

// drainReplies reads marshaled frames queued on the client's send
// channel without running the write pump.
func drainReplies(t *testing.T, client *Client) []ReplyFrame {
	t.Helper()
	var frames []ReplyFrame
	for {
		select {
		case payload := <-client.send:
			var frame ReplyFrame
			require.NoError(t, json.Unmarshal(payload, &frame))
			frames = append(frames, frame)
		case <-time.After(50 * time.Millisecond):
			return frames
		}
	}
}

func newTestServer(llm domain.Llm) *Server {
	return NewServer(usecase.NewChatService(llm), 5*time.Second)
}

func TestHandleChatStreamsChunksAndDone(t *testing.T) {
	s := newTestServer(&fakeLlm{chunks: []domain.StreamChunk{
		{Text: "Dr. Smith "},
		{Text: "is available."},
	}})
	client := NewClient(nil, "test-session")

	s.handleChat(client, ChatFrame{Type: "chat", Message: "who treats heart conditions?"})

	frames := drainReplies(t, client)
	require.Len(t, frames, 3)
	assert.Equal(t, ReplyFrame{Type: "chunk", Text: "Dr. Smith "}, frames[0])
	assert.Equal(t, ReplyFrame{Type: "chunk", Text: "is available."}, frames[1])
	assert.Equal(t, ReplyFrame{Type: "done"}, frames[2])
}

func TestHandleChatUnconfiguredSendsFallback(t *testing.T) {
	s := newTestServer(nil)
	client := NewClient(nil, "test-session")

	s.handleChat(client, ChatFrame{Type: "chat", Message: "I need a heart specialist"})

	frames := drainReplies(t, client)
	require.Len(t, frames, 1)
	assert.Equal(t, "fallback", frames[0].Type)
	assert.Contains(t, frames[0].Fallback, "Dr. Sarah Smith")
	assert.NotEmpty(t, frames[0].Error)
}

func TestHandleChatEmptyMessage(t *testing.T) {
	s := newTestServer(&fakeLlm{})
	client := NewClient(nil, "test-session")

	s.handleChat(client, ChatFrame{Type: "chat", Message: "   "})

	frames := drainReplies(t, client)
	require.Len(t, frames, 1)
	assert.Equal(t, "error", frames[0].Type)
}

func TestHandleChatRejectsUnknownRole(t *testing.T) {
	s := newTestServer(&fakeLlm{})
	client := NewClient(nil, "test-session")

	s.handleChat(client, ChatFrame{
		Type:    "chat",
		Message: "hi",
		History: []domain.ChatTurn{{Role: "system", Content: "x"}},
	})

	frames := drainReplies(t, client)
	require.Len(t, frames, 1)
	assert.Equal(t, "error", frames[0].Type)
}

func TestHandleChatRemoteFailureSendsFallback(t *testing.T) {
	s := newTestServer(&fakeLlm{openErr: errors.New("network down")})
	client := NewClient(nil, "test-session")

	s.handleChat(client, ChatFrame{Type: "chat", Message: "book me a heart doctor"})

	frames := drainReplies(t, client)
	require.Len(t, frames, 1)
	assert.Equal(t, "fallback", frames[0].Type)
	assert.Contains(t, frames[0].Error, "network down")
	assert.Contains(t, frames[0].Fallback, "Dr. Sarah Smith")
}
