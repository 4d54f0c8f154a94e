package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/podiumlabs/arena/logger"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// ModelFlashTTS is the Gemini speech synthesis model.
	ModelFlashTTS = "gemini-2.5-flash-preview-tts"

	defaultTimeout = 30 * time.Second
)

// GeminiService implements Service against the Gemini TTS API.
// Responses carry raw LINEAR16 PCM at 24 kHz, base64-encoded inline.
type GeminiService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	model   string
}

// GeminiOption configures the Gemini TTS service.
type GeminiOption func(*GeminiService)

// WithBaseURL sets a custom base URL (for testing or proxies).
func WithBaseURL(url string) GeminiOption {
	return func(s *GeminiService) {
		s.baseURL = url
	}
}

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) GeminiOption {
	return func(s *GeminiService) {
		s.client = client
	}
}

// WithModel sets the TTS model to use.
func WithModel(model string) GeminiOption {
	return func(s *GeminiService) {
		s.model = model
	}
}

// NewGemini creates a Gemini TTS service.
func NewGemini(apiKey string, opts ...GeminiOption) *GeminiService {
	s := &GeminiService{
		apiKey:  apiKey,
		baseURL: geminiBaseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		model:   ModelFlashTTS,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the provider identifier.
func (s *GeminiService) Name() string {
	return "gemini"
}

type speechPart struct {
	Text string `json:"text"`
}

type speechContent struct {
	Parts []speechPart `json:"parts"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type speechGenerationConfig struct {
	ResponseModalities []string     `json:"responseModalities"`
	SpeechConfig       speechConfig `json:"speechConfig"`
}

// speechRequest is the request body for speech-model generateContent calls.
type speechRequest struct {
	Contents         []speechContent        `json:"contents"`
	GenerationConfig speechGenerationConfig `json:"generationConfig"`
}

type speechResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData,omitempty"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Synthesize converts text to base64-encoded LINEAR16 audio. Upstream
// failures are logged and suppressed (empty result, nil error) so speech
// never blocks turn progression.
func (s *GeminiService) Synthesize(ctx context.Context, text string, config SynthesisConfig) (string, error) {
	if text == "" {
		return "", ErrEmptyText
	}

	voice := config.Voice
	if voice == "" {
		voice = VoiceSideA
	}
	logger.SpeechCall(s.Name(), voice, len(text))

	reqBody := speechRequest{
		Contents: []speechContent{{Parts: []speechPart{{Text: text}}}},
		GenerationConfig: speechGenerationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: voice},
				},
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("speech synthesis failed", "provider", s.Name(), "error", err)
		return "", nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("speech synthesis failed", "provider", s.Name(), "error", err)
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		logger.Warn("speech synthesis failed", "provider", s.Name(),
			"status", resp.StatusCode, "body", logger.RedactSensitiveData(string(body)))
		return "", nil
	}

	var parsed speechResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		logger.Warn("speech synthesis failed", "provider", s.Name(), "error", err)
		return "", nil
	}

	for _, cand := range parsed.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				return part.InlineData.Data, nil
			}
		}
	}
	return "", nil
}
