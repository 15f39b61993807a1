package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/andriga/assistant-api/domain"
	"github.com/andriga/assistant-api/usecase"
	"github.com/andriga/assistant-api/utils/log"
)

// Server streams the same conversational pipeline as the SSE endpoint
// over a WebSocket, framed as JSON messages for the demo widget.
type Server struct {
	upgrader websocket.Upgrader
	svc      *usecase.ChatService
	hub      *Hub
	timeout  time.Duration
}

func NewServer(svc *usecase.ChatService, timeout time.Duration) *Server {
	return &Server{
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		svc:      svc,
		hub:      NewHub(),
		timeout:  timeout,
	}
}

func (s *Server) RunHub() {
	s.hub.Run()
}

func (s *Server) GetHub() *Hub {
	return s.hub
}

// NotifyShutdown tells every connected widget the server is going away.
func (s *Server) NotifyShutdown() {
	payload, _ := json.Marshal(ReplyFrame{Type: "closing"})
	s.hub.Broadcast(payload)
}

// serve processes chat frames for one client until it disconnects.
func (s *Server) serve(client *Client) {
	for {
		select {
		case frame := <-client.Incoming():
			s.handleChat(client, frame)
		case <-client.Context().Done():
			return
		}
	}
}

func (s *Server) handleChat(client *Client, frame ChatFrame) {
	logger := log.WithCtx(client.Context())

	if strings.TrimSpace(frame.Message) == "" {
		client.SendReply(ReplyFrame{Type: "error", Error: "Message is required"})
		return
	}
	for _, turn := range frame.History {
		if !turn.Role.Valid() {
			client.SendReply(ReplyFrame{Type: "error", Error: "Unrecognized role in history"})
			return
		}
	}

	logger.Info("incoming chat frame",
		zap.String("message", frame.Message),
		zap.Int("history_length", len(frame.History)))

	if !s.svc.Configured() {
		client.SendReply(ReplyFrame{
			Type:     "fallback",
			Error:    "Gemini API key not configured",
			Fallback: s.svc.Fallback(frame.Message),
		})
		return
	}

	ctx, cancel := context.WithTimeout(client.Context(), s.timeout)
	defer cancel()

	chunks, err := s.svc.Stream(ctx, domain.ChatRequest{
		Message: frame.Message,
		Context: frame.Context,
		History: frame.History,
	})
	if err != nil {
		logger.Error("chat stream failed to open", zap.Error(err))
		client.SendReply(ReplyFrame{
			Type:     "fallback",
			Error:    err.Error(),
			Fallback: s.svc.Fallback(frame.Message),
		})
		return
	}

	var full strings.Builder
	streamed := false
	for chunk := range chunks {
		if chunk.Err != nil {
			logger.Error("streaming error", zap.Error(chunk.Err))
			if streamed {
				client.SendReply(ReplyFrame{Type: "error", Error: "Stream interrupted"})
			} else {
				client.SendReply(ReplyFrame{
					Type:     "fallback",
					Error:    chunk.Err.Error(),
					Fallback: s.svc.Fallback(frame.Message),
				})
			}
			return
		}
		streamed = true
		full.WriteString(chunk.Text)
		if err := client.SendReply(ReplyFrame{Type: "chunk", Text: chunk.Text}); err != nil {
			logger.Error("failed to send chunk", zap.Error(err))
			return
		}
	}

	client.SendReply(ReplyFrame{Type: "done"})
	logger.Info("chat response complete", zap.String("response", full.String()))
}
