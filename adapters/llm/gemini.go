package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/andriga/assistant-api/domain"
)

type GeminiClient struct {
	client *genai.Client
	model  string
	safety []*genai.SafetySetting
}

// NewGeminiClient builds the streaming chat provider. The safety
// threshold applies to all harm categories; the default policy is the
// most permissive setting so benign medical conversation is not blocked.
func NewGeminiClient(ctx context.Context, apiKey, model string, threshold genai.HarmBlockThreshold) (*GeminiClient, error) {
	client, err := genai.NewClient(
		ctx,
		&genai.ClientConfig{
			APIKey:      apiKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	safety := make([]*genai.SafetySetting, len(categories))
	for i, category := range categories {
		safety[i] = &genai.SafetySetting{Category: category, Threshold: threshold}
	}

	return &GeminiClient{client: client, model: model, safety: safety}, nil
}

// ThresholdFromName maps a configuration string to a safety threshold,
// defaulting to BLOCK_NONE for unknown values.
func ThresholdFromName(name string) genai.HarmBlockThreshold {
	switch name {
	case "BLOCK_LOW_AND_ABOVE":
		return genai.HarmBlockThresholdBlockLowAndAbove
	case "BLOCK_MEDIUM_AND_ABOVE":
		return genai.HarmBlockThresholdBlockMediumAndAbove
	case "BLOCK_ONLY_HIGH":
		return genai.HarmBlockThresholdBlockOnlyHigh
	default:
		return genai.HarmBlockThresholdBlockNone
	}
}

// StreamChat implements domain.Llm.
func (g *GeminiClient) StreamChat(ctx context.Context, system string, history []domain.ChatTurn, message string) (<-chan domain.StreamChunk, error) {
	contents := make([]*genai.Content, len(history))
	for i, turn := range history {
		role := genai.RoleModel
		if turn.Role == domain.RoleUser {
			role = genai.RoleUser
		}
		contents[i] = &genai.Content{
			Role: role,
			Parts: []*genai.Part{
				{Text: turn.Content},
			},
		}
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		TopP:            genai.Ptr[float32](0.95),
		TopK:            genai.Ptr[float32](40),
		MaxOutputTokens: 512,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: system},
			},
		},
		SafetySettings: g.safety,
	}

	chat, err := g.client.Chats.Create(ctx, g.model, cfg, contents)
	if err != nil {
		return nil, fmt.Errorf("creating chat: %w", err)
	}

	out := make(chan domain.StreamChunk)
	go func() {
		defer close(out)
		for resp, err := range chat.SendMessageStream(ctx, genai.Part{Text: message}) {
			if err != nil {
				select {
				case out <- domain.StreamChunk{Err: fmt.Errorf("streaming generation: %w", err)}:
				case <-ctx.Done():
				}
				return
			}
			text := resp.Text()
			if text == "" {
				continue
			}
			select {
			case out <- domain.StreamChunk{Text: text}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}
