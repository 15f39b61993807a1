package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/andriga/assistant-api/domain"
	"github.com/andriga/assistant-api/usecase"
	"github.com/andriga/assistant-api/utils/log"
)

type AssistantHandler struct {
	chat    *usecase.ChatService
	tts     domain.Synthesizer // nil when no speech provider is configured
	timeout time.Duration
}

func NewAssistantHandler(chat *usecase.ChatService, tts domain.Synthesizer, timeout time.Duration) *AssistantHandler {
	return &AssistantHandler{
		chat:    chat,
		tts:     tts,
		timeout: timeout,
	}
}

type ChatRequest struct {
	Message string            `json:"message"`
	Context string            `json:"context"`
	History []domain.ChatTurn `json:"history"`
}

type VoiceRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// ChatFallbackEnvelope is returned with success status when the live
// model path is unconfigured or failed. The client never sees a hard
// failure for a foreseeable misconfiguration.
type ChatFallbackEnvelope struct {
	Error    string `json:"error"`
	Fallback string `json:"fallback"`
}

// VoiceFallbackEnvelope signals the caller to use on-device speech
// synthesis instead of treating remote unavailability as an error.
type VoiceFallbackEnvelope struct {
	Error    string `json:"error"`
	Fallback bool   `json:"fallback"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Chat handles the conversation endpoint. Success is either an SSE
// stream of {"text": ...} events terminated by [DONE], or a fallback
// envelope with success status when the model is unreachable.
func (h *AssistantHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Message is required"})
	}
	for _, turn := range req.History {
		if !turn.Role.Valid() {
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: fmt.Sprintf("Unrecognized role %q in history", turn.Role),
			})
		}
	}

	ctx := context.WithValue(c.Request().Context(), "request_id", uuid.NewString())
	logger := log.WithCtx(ctx)
	logger.Info("incoming chat request",
		zap.String("message", req.Message),
		zap.Int("history_length", len(req.History)))

	if !h.chat.Configured() {
		return c.JSON(http.StatusOK, ChatFallbackEnvelope{
			Error:    "Gemini API key not configured. Please add GEMINI_API_KEY to your environment.",
			Fallback: h.chat.Fallback(req.Message),
		})
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	chunks, err := h.chat.Stream(ctx, domain.ChatRequest{
		Message: req.Message,
		Context: req.Context,
		History: req.History,
	})
	if err != nil {
		logger.Error("chat stream failed to open", zap.Error(err))
		return c.JSON(http.StatusOK, ChatFallbackEnvelope{
			Error:    err.Error(),
			Fallback: h.chat.Fallback(req.Message),
		})
	}

	// Hold off on SSE headers until the first chunk arrives, so an
	// immediate remote failure still gets the JSON fallback envelope.
	first, open := <-chunks
	if open && first.Err != nil {
		logger.Error("chat stream failed before first chunk", zap.Error(first.Err))
		return c.JSON(http.StatusOK, ChatFallbackEnvelope{
			Error:    first.Err.Error(),
			Fallback: h.chat.Fallback(req.Message),
		})
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)

	var full strings.Builder
	writeChunk := func(text string) error {
		payload, err := json.Marshal(map[string]string{"text": text})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(res, "data: %s\n\n", payload); err != nil {
			return err
		}
		res.Flush()
		full.WriteString(text)
		return nil
	}

	if open {
		if err := writeChunk(first.Text); err != nil {
			return err
		}
		for chunk := range chunks {
			if chunk.Err != nil {
				// Headers are gone; terminate the stream abnormally and
				// let the client treat it as an incomplete response.
				logger.Error("streaming error", zap.Error(chunk.Err))
				return chunk.Err
			}
			if err := writeChunk(chunk.Text); err != nil {
				return err
			}
		}
	}

	if _, err := fmt.Fprint(res, "data: [DONE]\n\n"); err != nil {
		return err
	}
	res.Flush()

	logger.Info("chat response complete", zap.String("response", full.String()))
	return nil
}

// Voice handles the speech-synthesis endpoint. Remote unavailability is
// never a hard failure: the caller is told to use local synthesis.
func (h *AssistantHandler) Voice(c echo.Context) error {
	var req VoiceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
	}
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Text is required"})
	}

	ctx := context.WithValue(c.Request().Context(), "request_id", uuid.NewString())
	logger := log.WithCtx(ctx)

	if h.tts == nil {
		return c.JSON(http.StatusOK, VoiceFallbackEnvelope{
			Error:    "Speech synthesis not configured",
			Fallback: true,
		})
	}

	preset := domain.PresetByName(req.Voice)

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	audio, err := h.tts.Synthesize(ctx, req.Text, preset)
	if err != nil {
		logger.Error("voice synthesis failed",
			zap.String("voice", preset.Name),
			zap.Error(err))
		return c.JSON(http.StatusOK, VoiceFallbackEnvelope{
			Error:    "Voice synthesis failed",
			Fallback: true,
		})
	}

	// Audio for identical text never changes, cache it hard.
	c.Response().Header().Set("Cache-Control", "public, max-age=31536000")
	return c.Blob(http.StatusOK, "audio/mpeg", audio)
}

// Context serves the default grounding document and the assistant's
// opening greeting for the demo widget.
func (h *AssistantHandler) Context(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"context":  domain.ContextDocument(),
		"greeting": domain.Greeting(),
	})
}

// HealthCheck endpoint.
func (h *AssistantHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "demo-assistant",
	})
}
