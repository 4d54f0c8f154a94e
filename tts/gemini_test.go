package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceForSide(t *testing.T) {
	assert.Equal(t, VoiceSideA, VoiceForSide("A"))
	assert.Equal(t, VoiceSideB, VoiceForSide("B"))
}

func TestGeminiService_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req speechRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"AUDIO"}, req.GenerationConfig.ResponseModalities)
		assert.Equal(t, VoiceSideB, req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName)

		resp := map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]any{{
						"inlineData": map[string]any{"mimeType": "audio/L16;rate=24000", "data": "AAAA"},
					}},
				},
			}},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	s := NewGemini("key", WithBaseURL(srv.URL))
	data, err := s.Synthesize(context.Background(), "hello", SynthesisConfig{Voice: VoiceSideB})
	require.NoError(t, err)
	assert.Equal(t, "AAAA", data)
}

func TestGeminiService_SuppressesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewGemini("key", WithBaseURL(srv.URL))
	data, err := s.Synthesize(context.Background(), "hello", SynthesisConfig{})
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestGeminiService_EmptyText(t *testing.T) {
	s := NewGemini("key")
	_, err := s.Synthesize(context.Background(), "", SynthesisConfig{})
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestScriptedService(t *testing.T) {
	s := &ScriptedService{Samples: 4}
	data, err := s.Synthesize(context.Background(), "hi", SynthesisConfig{Voice: VoiceSideA})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, 1, s.Calls())
	assert.Equal(t, []string{VoiceSideA}, s.Voices())

	s.Suppress = true
	data, err = s.Synthesize(context.Background(), "hi", SynthesisConfig{})
	require.NoError(t, err)
	assert.Empty(t, data)
}
