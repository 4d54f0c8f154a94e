package providers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/podiumlabs/arena/types"
)

func TestDebaterInstruction_ToneAndLength(t *testing.T) {
	got := debaterInstruction(types.DebateConfig{Tone: types.ToneHumorous, Length: types.LengthShort})
	assert.Contains(t, got, "funny")
	assert.Contains(t, got, "under 30 words")

	got = debaterInstruction(types.DebateConfig{Tone: types.ToneAcademic, Length: types.LengthLong})
	assert.Contains(t, got, "formal language")
	assert.Contains(t, got, "up to 120 words")

	// Defaults.
	got = debaterInstruction(types.DebateConfig{})
	assert.Contains(t, got, "professional, logical")
	assert.Contains(t, got, "under 80 words")
}

func TestJudgeInstruction_Personality(t *testing.T) {
	assert.Contains(t, judgeInstruction(types.DebateConfig{Judge: types.JudgeSarcastic}), "roasts")
	assert.Contains(t, judgeInstruction(types.DebateConfig{Judge: types.JudgeHarsh}), "harsh judge")
	assert.Contains(t, judgeInstruction(types.DebateConfig{Judge: types.JudgeConstructive}), "teacher-like")
	assert.Contains(t, judgeInstruction(types.DebateConfig{}), "impartial")
}

func TestConversationLog_FiltersAndLabels(t *testing.T) {
	messages := []types.Message{
		types.NewMessage(types.SenderSystem, "Analysing topic..."),
		types.NewMessage(types.SenderA, "Opening statement"),
		types.NewMessage(types.SenderUser, "What about costs?"),
		types.NewMessage(types.SenderAudience, "Boo!"),
		types.NewMessage(types.SenderB, "Rebuttal"),
	}

	log := conversationLog(messages)
	assert.NotContains(t, log, "Analysing topic")
	assert.Contains(t, log, "[Side A]: Opening statement")
	assert.Contains(t, log, "[Audience Member Interjects]: What about costs?")
	assert.Contains(t, log, "[Audience Commentary]: Boo!")
	assert.Contains(t, log, "[Side B]: Rebuttal")
}

func TestDebaterLog_OnlyDebaters(t *testing.T) {
	messages := []types.Message{
		types.NewMessage(types.SenderSystem, "init"),
		types.NewMessage(types.SenderA, "one"),
		types.NewMessage(types.SenderAudience, "noise"),
		types.NewMessage(types.SenderB, "two"),
	}

	log := debaterLog(messages)
	assert.Equal(t, "[A]: one\n[B]: two", log)
}

func TestTurnPrompt_Modifier(t *testing.T) {
	req := TurnRequest{
		Topic:    "Remote Work",
		Speaker:  types.Persona{ID: types.SideA, Name: "Ada", Role: "Futurist"},
		Opponent: types.Persona{ID: types.SideB, Name: "Bob", Role: "Traditionalist"},
		Lang:     types.LangEN,
		Modifier: "Speak in haiku",
	}

	prompt := turnPrompt(req)
	assert.Contains(t, prompt, "SPECIAL INTERVENTION")
	assert.Contains(t, prompt, "Speak in haiku")
	assert.Contains(t, prompt, "Respond in English strictly.")

	req.Modifier = ""
	assert.NotContains(t, turnPrompt(req), "SPECIAL INTERVENTION")
}

func TestTurnPrompt_Chinese(t *testing.T) {
	req := TurnRequest{Topic: "t", Lang: types.LangZH}
	assert.Contains(t, turnPrompt(req), "Chinese (Simplified)")
}

func TestCleanJSON(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                      `{"a":1}`,
		"```json\n{\"a\":1}\n```":        `{"a":1}`,
		"```\n{\"a\":1}\n```":            `{"a":1}`,
		"  \n```json\n{\"a\":1}\n```\n ": `{"a":1}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, CleanJSON(in), "input %q", in)
	}
}

func TestAudiencePrompt(t *testing.T) {
	prompt := audiencePrompt("AI", "We must adapt.", types.LangZH)
	assert.Contains(t, prompt, "Chinese (Simplified)")
	assert.True(t, strings.Contains(prompt, `"We must adapt."`))
}
