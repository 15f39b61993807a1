package tts

import (
	"context"
	"fmt"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/andriga/assistant-api/domain"
)

// googleVoices maps the demo's voice presets onto the closest Google
// Cloud TTS voices.
var googleVoices = map[string]struct {
	name   string
	gender texttospeechpb.SsmlVoiceGender
}{
	"rachel": {"en-US-Neural2-F", texttospeechpb.SsmlVoiceGender_FEMALE},
	"adam":   {"en-US-Neural2-D", texttospeechpb.SsmlVoiceGender_MALE},
	"bella":  {"en-US-Neural2-C", texttospeechpb.SsmlVoiceGender_FEMALE},
	"antoni": {"en-US-Neural2-J", texttospeechpb.SsmlVoiceGender_MALE},
}

// GoogleTTS is the alternate speech provider, selected with
// TTS_PROVIDER=google. It honors the same Synthesizer contract as the
// ElevenLabs adapter.
type GoogleTTS struct {
	client *texttospeech.Client
}

func NewGoogleTTS(ctx context.Context) (*GoogleTTS, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating Google tts client: %w", err)
	}
	return &GoogleTTS{client: client}, nil
}

// Synthesize implements domain.Synthesizer.
func (g *GoogleTTS) Synthesize(ctx context.Context, text string, voice domain.VoicePreset) ([]byte, error) {
	gv, ok := googleVoices[voice.Name]
	if !ok {
		gv = googleVoices[domain.DefaultPreset().Name]
	}

	req := texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{
				Text: text,
			},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: "en-US",
			Name:         gv.name,
			SsmlGender:   gv.gender,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}
	resp, err := g.client.SynthesizeSpeech(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("synthesizing speech: %w", err)
	}

	return resp.GetAudioContent(), nil
}
