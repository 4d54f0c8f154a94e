package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideID_Opponent(t *testing.T) {
	assert.Equal(t, SideB, SideA.Opponent())
	assert.Equal(t, SideA, SideB.Opponent())
}

func TestSenderID_IsDebater(t *testing.T) {
	assert.True(t, SenderA.IsDebater())
	assert.True(t, SenderB.IsDebater())
	assert.False(t, SenderSystem.IsDebater())
	assert.False(t, SenderAudience.IsDebater())
	assert.False(t, SenderUser.IsDebater())
}

func TestDebateConfig_Normalize(t *testing.T) {
	cfg := DebateConfig{}.Normalize()
	assert.Equal(t, ToneSerious, cfg.Tone)
	assert.Equal(t, LengthMedium, cfg.Length)
	assert.Equal(t, JudgeImpartial, cfg.Judge)

	// Explicit values survive normalization.
	cfg = DebateConfig{Tone: ToneHumorous, Length: LengthLong, Judge: JudgeHarsh}.Normalize()
	assert.Equal(t, ToneHumorous, cfg.Tone)
	assert.Equal(t, LengthLong, cfg.Length)
	assert.Equal(t, JudgeHarsh, cfg.Judge)
}

func TestNewThinkingMessage(t *testing.T) {
	m := NewThinkingMessage(SenderA)
	assert.True(t, m.IsThinking)
	assert.Empty(t, m.Text)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, SenderA, m.SenderID)
}

func TestMatchResult_WireFormat(t *testing.T) {
	raw := `{"scores":{"A":{"logic":8,"evidence":7,"novelty":6,"total":7,"comment":"sharp"},"B":{"logic":5,"evidence":6,"novelty":4,"total":5,"comment":"flat"}},"winner":"A"}`

	var r MatchResult
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.Equal(t, WinnerA, r.Winner)
	assert.Equal(t, 7, r.Scores.A.Total)
	assert.Equal(t, 5, r.Scores.B.Total)
}

func TestNeutralResult(t *testing.T) {
	r := NeutralResult()
	assert.Equal(t, WinnerTie, r.Winner)
	assert.Zero(t, r.Scores.A.Total)
	assert.Equal(t, "N/A", r.Scores.B.Comment)
}
