package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/podiumlabs/arena/logger"
	"github.com/podiumlabs/arena/metrics"
	"github.com/podiumlabs/arena/types"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// ModelFlash is the default fast text model.
	ModelFlash = "gemini-3-flash-preview"

	defaultGeminiTimeout = 60 * time.Second

	providerGemini = "gemini"
)

// GeminiProvider implements ContentProvider against the Gemini
// generateContent API.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	model   string
}

// GeminiOption configures a GeminiProvider.
type GeminiOption func(*GeminiProvider)

// WithGeminiBaseURL sets a custom base URL (for testing or proxies).
func WithGeminiBaseURL(url string) GeminiOption {
	return func(p *GeminiProvider) {
		p.baseURL = url
	}
}

// WithGeminiClient sets a custom HTTP client.
func WithGeminiClient(client *http.Client) GeminiOption {
	return func(p *GeminiProvider) {
		p.client = client
	}
}

// WithGeminiModel sets the text generation model.
func WithGeminiModel(model string) GeminiOption {
	return func(p *GeminiProvider) {
		p.model = model
	}
}

// NewGemini creates a Gemini-backed content provider.
func NewGemini(apiKey string, opts ...GeminiOption) *GeminiProvider {
	p := &GeminiProvider{
		apiKey:  apiKey,
		baseURL: geminiBaseURL,
		client:  &http.Client{Timeout: defaultGeminiTimeout},
		model:   ModelFlash,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ID returns the provider identifier.
func (p *GeminiProvider) ID() string {
	return providerGemini
}

// geminiPart is one content part of a generateContent payload.
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

// geminiRequest is the request body for the generateContent endpoint.
type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// generate performs one generateContent call and returns the first
// candidate's text.
func (p *GeminiProvider) generate(ctx context.Context, op, system, prompt string, jsonOutput bool) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if system != "" {
		reqBody.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	if jsonOutput {
		reqBody.GenerationConfig = &geminiGenerationConfig{ResponseMimeType: "application/json"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	start := time.Now()
	resp, err := p.client.Do(req)
	metrics.ObserveProviderCall(providerGemini, op, time.Since(start), err == nil)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, logger.RedactSensitiveData(string(body)))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// generatedPersona is the provider-side persona shape, before side
// assignment.
type generatedPersona struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Style       string `json:"style"`
}

// GeneratePersonas creates two opposing personas for the topic. On any
// upstream failure it degrades to the neutral stand-in pair so the session
// can still proceed.
func (p *GeminiProvider) GeneratePersonas(ctx context.Context, topic string, lang types.Language) (types.PersonaPair, error) {
	logger.GenCall(providerGemini, "personas", 0, "topic", topic)

	text, err := p.generate(ctx, "personas", personaGeneratorSystem, personaPrompt(topic, lang), true)
	if err != nil {
		logger.GenError(providerGemini, "personas", err)
		return FallbackPersonas(lang), nil
	}

	var data struct {
		PersonaA generatedPersona `json:"personaA"`
		PersonaB generatedPersona `json:"personaB"`
	}
	if err := json.Unmarshal([]byte(CleanJSON(text)), &data); err != nil {
		logger.GenError(providerGemini, "personas", err)
		return FallbackPersonas(lang), nil
	}
	if data.PersonaA.Name == "" || data.PersonaB.Name == "" {
		logger.GenError(providerGemini, "personas", fmt.Errorf("incomplete persona payload"))
		return FallbackPersonas(lang), nil
	}

	return types.PersonaPair{
		A: types.Persona{
			ID:          types.SideA,
			Name:        data.PersonaA.Name,
			Role:        data.PersonaA.Role,
			Description: data.PersonaA.Description,
			Avatar:      data.PersonaA.Avatar,
			Style:       data.PersonaA.Style,
			Color:       "blue",
		},
		B: types.Persona{
			ID:          types.SideB,
			Name:        data.PersonaB.Name,
			Role:        data.PersonaB.Role,
			Description: data.PersonaB.Description,
			Avatar:      data.PersonaB.Avatar,
			Style:       data.PersonaB.Style,
			Color:       "red",
		},
	}, nil
}

// GenerateTurn produces the next utterance for req.Speaker. On upstream
// failure it returns the neutral "thinking" line so the turn owner still
// advances.
func (p *GeminiProvider) GenerateTurn(ctx context.Context, req TurnRequest) (string, error) {
	logger.GenCall(providerGemini, "turn", len(req.Transcript),
		"speaker", string(req.Speaker.ID), "modifier", req.Modifier != "")

	text, err := p.generate(ctx, "turn", debaterInstruction(req.Config), turnPrompt(req), false)
	if err != nil {
		logger.GenError(providerGemini, "turn", err)
		return FallbackTurnText(req.Lang), nil
	}
	if text == "" {
		text = "..."
	}
	return text, nil
}

// GenerateAudienceComment produces a short audience reaction. A failed
// call returns an empty string, which suppresses the audience message.
func (p *GeminiProvider) GenerateAudienceComment(ctx context.Context, topic, lastText string, lang types.Language) (string, error) {
	text, err := p.generate(ctx, "audience", "", audiencePrompt(topic, lastText, lang), false)
	if err != nil {
		logger.GenError(providerGemini, "audience", err)
		return "", nil
	}
	text = trimReaction(text)
	if text == "" {
		return FallbackAudienceText(lang), nil
	}
	return text, nil
}

// EvaluateDebate scores the transcript. The judge response must pass JSON
// Schema validation; anything malformed degrades to the neutral result.
func (p *GeminiProvider) EvaluateDebate(ctx context.Context, topic string, transcript []types.Message, lang types.Language, cfg types.DebateConfig) (types.MatchResult, error) {
	logger.GenCall(providerGemini, "evaluate", len(transcript))

	text, err := p.generate(ctx, "evaluate", judgeInstruction(cfg), evalPrompt(topic, transcript, lang), true)
	if err != nil {
		logger.GenError(providerGemini, "evaluate", err)
		return types.NeutralResult(), nil
	}

	raw := []byte(CleanJSON(text))
	if err := ValidateMatchResult(raw); err != nil {
		logger.GenError(providerGemini, "evaluate", err)
		return types.NeutralResult(), nil
	}

	var result types.MatchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		logger.GenError(providerGemini, "evaluate", err)
		return types.NeutralResult(), nil
	}
	return result, nil
}
