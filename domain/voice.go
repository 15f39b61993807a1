package domain

import "context"

// Synthesizer abstracts the speech-synthesis provider.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice VoicePreset) ([]byte, error)
}

// VoicePreset maps a short name to a remote voice identifier plus a
// descriptive character. The table is fixed at process start.
type VoicePreset struct {
	Name      string
	RemoteID  string
	Character string
}

var voicePresets = []VoicePreset{
	{Name: "rachel", RemoteID: "21m00Tcm4TlvDq8ikWAM", Character: "professional, calm female voice"},
	{Name: "adam", RemoteID: "pNInz6obpgDQGcFmaJgB", Character: "clear, authoritative male voice"},
	{Name: "bella", RemoteID: "EXAVITQu4vr4xnSDxMaL", Character: "warm, friendly female voice"},
	{Name: "antoni", RemoteID: "ErXwobaYiN019PkySvjV", Character: "deep, confident male voice"},
}

// DefaultPreset is the voice used when the caller names no preset.
func DefaultPreset() VoicePreset {
	return voicePresets[0]
}

// PresetByName resolves a preset name, falling back to the default for
// unknown or empty names so a bad voice selection never fails a request.
func PresetByName(name string) VoicePreset {
	for _, p := range voicePresets {
		if p.Name == name {
			return p
		}
	}
	return DefaultPreset()
}

// Presets returns the full preset table.
func Presets() []VoicePreset {
	out := make([]VoicePreset, len(voicePresets))
	copy(out, voicePresets)
	return out
}
