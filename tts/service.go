// Package tts provides text-to-speech synthesis for debate turns.
//
// Services return base64-encoded LINEAR16 audio (mono 16-bit PCM at
// 24 kHz) ready for the audio playback queue. An empty payload means
// synthesis was suppressed; the caller skips enqueueing without treating
// it as an error.
package tts

import (
	"context"
	"errors"
)

// Audio characteristics of synthesized payloads.
const (
	SampleRate  = 24000
	BitDepth    = 16
	NumChannels = 1
)

// Prebuilt voices assigned to the debate sides.
const (
	VoiceSideA = "Puck"
	VoiceSideB = "Kore"
)

// Common synthesis errors.
var (
	// ErrEmptyText is returned when attempting to synthesize empty text.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrSynthesisFailed is returned when the upstream service fails.
	ErrSynthesisFailed = errors.New("speech synthesis failed")
)

// SynthesisConfig configures one synthesis request.
type SynthesisConfig struct {
	// Voice is the prebuilt voice name. Defaults to VoiceSideA.
	Voice string
}

// Service converts text to speech audio.
type Service interface {
	// Name returns the provider identifier (for logging/metrics).
	Name() string

	// Synthesize converts text to base64-encoded LINEAR16 audio.
	// An empty result with a nil error means synthesis was suppressed.
	Synthesize(ctx context.Context, text string, config SynthesisConfig) (string, error)
}

// VoiceForSide maps a debate side tag to its prebuilt voice.
func VoiceForSide(side string) string {
	if side == "B" {
		return VoiceSideB
	}
	return VoiceSideA
}
