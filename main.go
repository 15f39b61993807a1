package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/subosito/gotenv"

	adapterhttp "github.com/andriga/assistant-api/adapters/http"
	"github.com/andriga/assistant-api/adapters/llm"
	"github.com/andriga/assistant-api/adapters/tts"
	"github.com/andriga/assistant-api/adapters/websocket"
	"github.com/andriga/assistant-api/config"
	"github.com/andriga/assistant-api/domain"
	"github.com/andriga/assistant-api/usecase"
)

func main() {
	gotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Missing credentials are a supported mode: the endpoints answer
	// from their fallback paths instead of failing at startup.
	var geminiLlm domain.Llm
	if cfg.ChatConfigured() {
		client, err := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, llm.ThresholdFromName(cfg.GeminiSafety))
		if err != nil {
			log.Fatal(err)
		}
		geminiLlm = client
	} else {
		log.Println("GEMINI_API_KEY not set; chat runs in fallback mode")
	}

	svc := usecase.NewChatService(geminiLlm)

	var synth domain.Synthesizer
	switch cfg.TTSProvider {
	case "google":
		googleTTS, err := tts.NewGoogleTTS(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		synth = googleTTS
	default:
		if cfg.ElevenLabsAPIKey != "" {
			synth = tts.NewElevenLabs(cfg.ElevenLabsAPIKey)
		} else {
			log.Println("ELEVENLABS_API_KEY not set; voice runs in fallback mode")
		}
	}

	wsServer := websocket.NewServer(svc, cfg.RequestTimeout)
	go wsServer.RunHub()

	handler := adapterhttp.NewAssistantHandler(svc, synth, cfg.RequestTimeout)

	e := echo.New()

	// Security middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20))) // 20 requests per minute

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // In production, specify exact origins
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
		},
		MaxAge: 86400, // 24 hours
	}))

	// Request size limit; chat payloads are small text bodies
	e.Use(middleware.BodyLimit("1MB"))

	api := e.Group("/api")
	api.GET("/health", handler.HealthCheck)
	api.GET("/context", handler.Context)
	api.POST("/chat", handler.Chat)
	api.POST("/voice", handler.Voice)

	e.GET("/ws/chat", wsServer.Handler)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		wsServer.NotifyShutdown()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on :%d", cfg.Port)
	log.Println("Available endpoints:")
	log.Println("  GET  /api/health   - Health check")
	log.Println("  GET  /api/context  - Default context document + greeting")
	log.Println("  POST /api/chat     - Conversation (SSE stream or fallback)")
	log.Println("  POST /api/voice    - Speech synthesis (audio or fallback)")
	log.Println("  GET  /ws/chat      - WebSocket chat transport")
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
