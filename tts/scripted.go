package tts

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"sync"
)

// ScriptedService is a deterministic in-process TTS for tests and offline
// demos. It emits a short silent PCM payload per request, or nothing when
// Suppress is set.
type ScriptedService struct {
	mu sync.Mutex

	// Samples is the number of PCM samples per synthesized payload.
	// Zero means a 10 ms clip at the standard sample rate.
	Samples int

	// Suppress makes every call return an empty payload.
	Suppress bool

	calls  int
	voices []string
}

// Name returns the provider identifier.
func (s *ScriptedService) Name() string {
	return "scripted"
}

// Synthesize returns a base64 LINEAR16 payload of silence.
func (s *ScriptedService) Synthesize(ctx context.Context, text string, config SynthesisConfig) (string, error) {
	if text == "" {
		return "", ErrEmptyText
	}

	s.mu.Lock()
	s.calls++
	s.voices = append(s.voices, config.Voice)
	suppress := s.Suppress
	samples := s.Samples
	s.mu.Unlock()

	if suppress {
		return "", nil
	}
	if samples == 0 {
		samples = SampleRate / 100
	}

	pcm := make([]byte, samples*2)
	for i := 0; i < samples; i++ {
		binary.LittleEndian.PutUint16(pcm[i*2:], 0)
	}
	return base64.StdEncoding.EncodeToString(pcm), nil
}

// Calls reports how many synthesis requests were made.
func (s *ScriptedService) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Voices reports the voice used by each request, in order.
func (s *ScriptedService) Voices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.voices))
	copy(out, s.voices)
	return out
}
