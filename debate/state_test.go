package debate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podiumlabs/arena/snapshot"
	"github.com/podiumlabs/arena/types"
)

func TestState_SnapshotRoundTrip(t *testing.T) {
	result := types.NeutralResult()
	result.Winner = types.WinnerB

	s := newState(types.LangZH)
	s.Topic = "全民基本收入"
	s.Status = types.StatusDebating
	s.Personas = &types.PersonaPair{
		A: types.Persona{ID: types.SideA, Name: "林教授"},
		B: types.Persona{ID: types.SideB, Name: "王总"},
	}
	s.Messages = []types.Message{
		types.NewMessage(types.SenderSystem, "开始"),
		types.NewMessage(types.SenderA, "第一轮发言"),
	}
	s.Turn = types.SideB
	s.VoteA = 54
	s.VoteB = 51
	s.Result = &result
	s.Config = types.DebateConfig{Tone: types.ToneAggressive, Length: types.LengthLong, Judge: types.JudgeSarcastic}

	restored := fromSnapshot(s.toSnapshot(), types.LangEN)

	assert.Equal(t, s.Topic, restored.Topic)
	assert.Equal(t, s.Status, restored.Status)
	assert.Equal(t, s.Personas, restored.Personas)
	assert.Equal(t, s.Messages, restored.Messages)
	assert.Equal(t, s.Turn, restored.Turn)
	assert.Equal(t, s.VoteA, restored.VoteA)
	assert.Equal(t, s.VoteB, restored.VoteB)
	assert.Equal(t, s.Result, restored.Result)
	assert.Equal(t, s.Lang, restored.Lang)
	assert.Equal(t, s.Config, restored.Config)
	assert.True(t, restored.Paused, "restored sessions start paused")
}

func TestState_FromSnapshotDefaults(t *testing.T) {
	restored := fromSnapshot(&snapshot.SessionSnapshot{Topic: "Bare"}, types.LangEN)

	assert.Equal(t, types.LangEN, restored.Lang)
	assert.Equal(t, types.SideA, restored.Turn)
	assert.Nil(t, restored.Personas)
	assert.Nil(t, restored.Result)
}

func TestState_CloneIsIndependent(t *testing.T) {
	s := newState(types.LangEN)
	s.Messages = []types.Message{types.NewMessage(types.SenderA, "original")}
	s.Personas = &types.PersonaPair{A: types.Persona{Name: "Ada"}}

	c := s.clone()
	c.Messages[0].Text = "mutated"
	c.Personas.A.Name = "changed"

	assert.Equal(t, "original", s.Messages[0].Text)
	assert.Equal(t, "Ada", s.Personas.A.Name)
}

func TestState_RemoveShiftsInPlace(t *testing.T) {
	s := newState(types.LangEN)
	a := types.NewMessage(types.SenderA, "one")
	b := types.NewMessage(types.SenderB, "two")
	s.append(a)
	s.append(b)

	require.True(t, s.remove(a.ID))
	require.Len(t, s.Messages, 1)
	assert.Equal(t, b.ID, s.Messages[0].ID)

	assert.False(t, s.remove("missing"))
}
