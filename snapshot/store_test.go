package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podiumlabs/arena/types"
)

func sampleSnapshot() *SessionSnapshot {
	result := types.NeutralResult()
	result.Scores.A = types.Score{Logic: 8, Evidence: 7, Novelty: 6, Total: 21, Comment: "tight reasoning"}
	result.Scores.B = types.Score{Logic: 6, Evidence: 8, Novelty: 5, Total: 19, Comment: "solid citations"}
	result.Winner = types.WinnerA

	return &SessionSnapshot{
		Topic:  "Should remote work become the default?",
		Status: types.StatusFinished,
		PersonaA: &types.Persona{
			ID: types.SideA, Name: "Dr. Aria Chen", Role: "Economist",
			Description: "Champions distributed teams", Avatar: "AC", Color: "blue",
		},
		PersonaB: &types.Persona{
			ID: types.SideB, Name: "Marcus Webb", Role: "COO",
			Description: "Defends the office", Avatar: "MW", Color: "red",
		},
		Messages: []types.Message{
			types.NewMessage(types.SenderSystem, "Debate started"),
			types.NewMessage(types.SenderA, "Remote work widens the talent pool."),
			types.NewMessage(types.SenderB, "Offices build culture you cannot replicate."),
			types.NewMessage(types.SenderAudience, "What about hybrid?"),
		},
		Turn:        types.SideA,
		VoteA:       3,
		VoteB:       1,
		MatchResult: &result,
		Lang:        types.LangEN,
		Config: types.DebateConfig{
			Tone:   types.ToneAcademic,
			Length: types.LengthShort,
			Judge:  types.JudgeHarsh,
		},
	}
}

// storeTests runs the behavior shared by every Store implementation.
func storeTests(t *testing.T, store Store) {
	t.Helper()
	ctx := t.Context()

	t.Run("load before save returns not found", func(t *testing.T) {
		_, err := store.LoadSession(ctx)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = store.LoadCredentials(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("session round-trip", func(t *testing.T) {
		want := sampleSnapshot()
		require.NoError(t, store.SaveSession(ctx, want))

		got, err := store.LoadSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("save overwrites", func(t *testing.T) {
		first := sampleSnapshot()
		require.NoError(t, store.SaveSession(ctx, first))

		second := sampleSnapshot()
		second.Topic = "Is social media a net positive?"
		second.VoteA = 0
		require.NoError(t, store.SaveSession(ctx, second))

		got, err := store.LoadSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.Topic, got.Topic)
		assert.Zero(t, got.VoteA)
	})

	t.Run("nil snapshot rejected", func(t *testing.T) {
		assert.ErrorIs(t, store.SaveSession(ctx, nil), ErrInvalidSnapshot)
		assert.ErrorIs(t, store.SaveCredentials(ctx, nil), ErrInvalidSnapshot)
	})

	t.Run("credentials independent of session", func(t *testing.T) {
		require.NoError(t, store.SaveSession(ctx, sampleSnapshot()))

		creds := &Credentials{
			Token: "tok-123",
			User:  types.User{ID: "u1", DisplayName: "Dana", Email: "dana@example.com"},
		}
		require.NoError(t, store.SaveCredentials(ctx, creds))

		got, err := store.LoadCredentials(ctx)
		require.NoError(t, err)
		assert.Equal(t, creds, got)

		require.NoError(t, store.ClearCredentials(ctx))
		_, err = store.LoadCredentials(ctx)
		assert.ErrorIs(t, err, ErrNotFound)

		// Clearing credentials never disturbs the saved session.
		snap, err := store.LoadSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleSnapshot().Topic, snap.Topic)
	})

	t.Run("clear absent credentials is not an error", func(t *testing.T) {
		require.NoError(t, store.ClearCredentials(ctx))
		require.NoError(t, store.ClearCredentials(ctx))
	})
}

func TestMemoryStore(t *testing.T) {
	storeTests(t, NewMemoryStore())
}

func TestMemoryStore_MalformedSession(t *testing.T) {
	store := NewMemoryStore()
	store.SetSessionRaw([]byte("{not json"))

	_, err := store.LoadSession(t.Context())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.SaveSession(t.Context(), sampleSnapshot()))

	first, err := store.LoadSession(t.Context())
	require.NoError(t, err)
	first.Topic = "mutated"

	second, err := store.LoadSession(t.Context())
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second.Topic)
}

func TestSessionSnapshot_WireLayout(t *testing.T) {
	data, err := json.Marshal(sampleSnapshot())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{
		"topic", "status", "personaA", "personaB", "messages",
		"turn", "voteA", "voteB", "matchResult", "lang", "config",
	} {
		assert.Contains(t, doc, key)
	}
}
