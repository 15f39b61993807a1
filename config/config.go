package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment configuration. Both remote credentials
// are optional: running without them is a supported mode in which the
// chat and voice endpoints answer from their fallback paths.
type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	// Generative text
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash-001"`
	GeminiSafety string `env:"GEMINI_SAFETY" envDefault:"BLOCK_NONE"`

	// Speech synthesis
	ElevenLabsAPIKey string `env:"ELEVENLABS_API_KEY"`
	TTSProvider      string `env:"TTS_PROVIDER" envDefault:"elevenlabs"`

	// Upper bound on any single remote call, chat streaming included.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ChatConfigured reports whether the generative-text credential is set.
func (c *Config) ChatConfigured() bool {
	return c.GeminiAPIKey != ""
}

// VoiceConfigured reports whether a speech provider can be constructed.
func (c *Config) VoiceConfigured() bool {
	return c.TTSProvider == "google" || c.ElevenLabsAPIKey != ""
}
