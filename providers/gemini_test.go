package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podiumlabs/arena/types"
)

// fakeGemini returns a test server that answers every generateContent call
// with the given candidate text.
func fakeGemini(t *testing.T, candidate string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("x-goog-api-key"))

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": candidate}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestGeminiProvider_GeneratePersonas(t *testing.T) {
	payload := `{"personaA":{"name":"Dr. Vale","role":"Futurist","description":"Techno-optimist","avatar":"🚀","style":"Rapid-fire"},"personaB":{"name":"Maeve","role":"Traditionalist","description":"Skeptic of progress","avatar":"🕯️","style":"Measured"}}`
	srv := fakeGemini(t, "```json\n"+payload+"\n```")
	defer srv.Close()

	p := NewGemini("key", WithGeminiBaseURL(srv.URL))
	pair, err := p.GeneratePersonas(context.Background(), "AI", types.LangEN)
	require.NoError(t, err)
	assert.Equal(t, types.SideA, pair.A.ID)
	assert.Equal(t, "Dr. Vale", pair.A.Name)
	assert.Equal(t, "blue", pair.A.Color)
	assert.Equal(t, types.SideB, pair.B.ID)
	assert.Equal(t, "Maeve", pair.B.Name)
	assert.Equal(t, "red", pair.B.Color)
}

func TestGeminiProvider_PersonaFallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := NewGemini("key", WithGeminiBaseURL(srv.URL))
	pair, err := p.GeneratePersonas(context.Background(), "AI", types.LangEN)
	require.NoError(t, err)
	assert.Equal(t, "Proponent", pair.A.Name)
	assert.Equal(t, "Opponent", pair.B.Name)
}

func TestGeminiProvider_PersonaFallbackOnGarbage(t *testing.T) {
	srv := fakeGemini(t, "I refuse to answer in JSON")
	defer srv.Close()

	p := NewGemini("key", WithGeminiBaseURL(srv.URL))
	pair, err := p.GeneratePersonas(context.Background(), "AI", types.LangZH)
	require.NoError(t, err)
	assert.Equal(t, "正方", pair.A.Name)
}

func TestGeminiProvider_GenerateTurn(t *testing.T) {
	srv := fakeGemini(t, "Remote work frees people from commutes.")
	defer srv.Close()

	p := NewGemini("key", WithGeminiBaseURL(srv.URL))
	text, err := p.GenerateTurn(context.Background(), TurnRequest{
		Topic:   "Remote Work",
		Speaker: types.Persona{ID: types.SideA, Name: "Ada"},
		Lang:    types.LangEN,
	})
	require.NoError(t, err)
	assert.Equal(t, "Remote work frees people from commutes.", text)
}

func TestGeminiProvider_TurnFallbackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGemini("key", WithGeminiBaseURL(srv.URL))
	text, err := p.GenerateTurn(context.Background(), TurnRequest{Lang: types.LangEN})
	require.NoError(t, err)
	assert.Equal(t, FallbackTurnText(types.LangEN), text)
}

func TestGeminiProvider_AudienceCommentSuppressedOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewGemini("key", WithGeminiBaseURL(srv.URL))
	text, err := p.GenerateAudienceComment(context.Background(), "AI", "last", types.LangEN)
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestGeminiProvider_EvaluateDebate(t *testing.T) {
	payload := `{"scores":{"A":{"logic":8,"evidence":7,"novelty":6,"total":7,"comment":"ok"},"B":{"logic":5,"evidence":5,"novelty":5,"total":5,"comment":"meh"}},"winner":"A"}`
	srv := fakeGemini(t, payload)
	defer srv.Close()

	p := NewGemini("key", WithGeminiBaseURL(srv.URL))
	result, err := p.EvaluateDebate(context.Background(), "AI", nil, types.LangEN, types.DebateConfig{})
	require.NoError(t, err)
	assert.Equal(t, types.WinnerA, result.Winner)
	assert.Equal(t, 7, result.Scores.A.Total)
}

func TestGeminiProvider_EvaluateNeutralOnInvalidSchema(t *testing.T) {
	// Winner outside the enum must not be accepted.
	payload := `{"scores":{"A":{"logic":8,"evidence":7,"novelty":6,"total":7,"comment":"ok"},"B":{"logic":5,"evidence":5,"novelty":5,"total":5,"comment":"meh"}},"winner":"C"}`
	srv := fakeGemini(t, payload)
	defer srv.Close()

	p := NewGemini("key", WithGeminiBaseURL(srv.URL))
	result, err := p.EvaluateDebate(context.Background(), "AI", nil, types.LangEN, types.DebateConfig{})
	require.NoError(t, err)
	assert.Equal(t, types.WinnerTie, result.Winner)
	assert.Zero(t, result.Scores.A.Total)
}
