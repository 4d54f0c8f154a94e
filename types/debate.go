// Package types defines the canonical data model for debate sessions.
package types

import (
	"time"

	"github.com/google/uuid"
)

// SideID identifies one of the two debate sides.
type SideID string

const (
	SideA SideID = "A"
	SideB SideID = "B"
)

// Opponent returns the other side.
func (s SideID) Opponent() SideID {
	if s == SideA {
		return SideB
	}
	return SideA
}

// SenderID identifies the author of a transcript message.
// Debater sides reuse the SideID values.
type SenderID string

const (
	SenderA        SenderID = "A"
	SenderB        SenderID = "B"
	SenderUser     SenderID = "User"
	SenderSystem   SenderID = "System"
	SenderAudience SenderID = "Audience"
)

// IsDebater reports whether the sender is one of the two AI sides.
func (s SenderID) IsDebater() bool {
	return s == SenderA || s == SenderB
}

// Language selects the output language for generated content.
type Language string

const (
	LangEN Language = "en"
	LangZH Language = "zh"
)

// DebateTone controls the register of generated turns.
type DebateTone string

const (
	ToneSerious    DebateTone = "serious"
	ToneHumorous   DebateTone = "humorous"
	ToneAggressive DebateTone = "aggressive"
	ToneAcademic   DebateTone = "academic"
)

// DebateLength bounds the word budget of generated turns.
type DebateLength string

const (
	LengthShort  DebateLength = "short"
	LengthMedium DebateLength = "medium"
	LengthLong   DebateLength = "long"
)

// JudgePersonality selects the scoring judge's register.
type JudgePersonality string

const (
	JudgeImpartial    JudgePersonality = "impartial"
	JudgeSarcastic    JudgePersonality = "sarcastic"
	JudgeHarsh        JudgePersonality = "harsh"
	JudgeConstructive JudgePersonality = "constructive"
)

// DebateConfig is the per-session generation configuration.
// All fields are closed enums; zero values fall back to the defaults
// via Normalize.
type DebateConfig struct {
	Tone   DebateTone       `json:"tone"`
	Length DebateLength     `json:"length"`
	Judge  JudgePersonality `json:"judge"`
}

// Normalize fills unset fields with the standard defaults.
func (c DebateConfig) Normalize() DebateConfig {
	if c.Tone == "" {
		c.Tone = ToneSerious
	}
	if c.Length == "" {
		c.Length = LengthMedium
	}
	if c.Judge == "" {
		c.Judge = JudgeImpartial
	}
	return c
}

// DebateStatus is the session lifecycle state.
type DebateStatus string

const (
	StatusIdle               DebateStatus = "idle"
	StatusGeneratingPersonas DebateStatus = "generating_personas"
	StatusDebating           DebateStatus = "debating"
	StatusFinished           DebateStatus = "finished"
)

// Persona is one AI-portrayed debate side. Personas are created once per
// session and are immutable thereafter.
type Persona struct {
	ID          SideID `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
	Color       string `json:"color"`
	Style       string `json:"style,omitempty"`
}

// PersonaPair holds the two opposing personas generated for a topic.
type PersonaPair struct {
	A Persona `json:"A"`
	B Persona `json:"B"`
}

// Get returns the persona for the given side.
func (p PersonaPair) Get(side SideID) Persona {
	if side == SideA {
		return p.A
	}
	return p.B
}

// Message is one transcript entry. The transcript is append-only except
// for the single replace-or-remove of a pending placeholder.
type Message struct {
	ID        string   `json:"id"`
	SenderID  SenderID `json:"senderId"`
	Text      string   `json:"text"`
	Timestamp int64    `json:"timestamp"`

	// IsThinking marks a transient placeholder inserted while a turn is
	// being generated. Empty text is permitted only while this is set.
	IsThinking bool `json:"isThinking,omitempty"`
}

// NewMessage creates a finalized transcript message.
func NewMessage(sender SenderID, text string) Message {
	return Message{
		ID:        uuid.NewString(),
		SenderID:  sender,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	}
}

// NewThinkingMessage creates a pending placeholder for the given side.
func NewThinkingMessage(sender SenderID) Message {
	m := NewMessage(sender, "")
	m.IsThinking = true
	return m
}

// Score is one side's judged result.
type Score struct {
	Logic    int    `json:"logic"`
	Evidence int    `json:"evidence"`
	Novelty  int    `json:"novelty"`
	Total    int    `json:"total"`
	Comment  string `json:"comment"`
}

// Winner is the judged outcome of a match.
type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "Tie"
)

// MatchResult is the judged outcome of a debate. Immutable once produced.
type MatchResult struct {
	Scores struct {
		A Score `json:"A"`
		B Score `json:"B"`
	} `json:"scores"`
	Winner Winner `json:"winner"`
}

// NeutralResult returns the all-zero fallback result used when judging
// fails.
func NeutralResult() MatchResult {
	var r MatchResult
	r.Scores.A = Score{Comment: "N/A"}
	r.Scores.B = Score{Comment: "N/A"}
	r.Winner = WinnerTie
	return r
}

// DebateTopic is one entry of the static topic catalog.
type DebateTopic struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	TitleZH       string `json:"title_zh,omitempty"`
	Description   string `json:"description"`
	DescriptionZH string `json:"description_zh,omitempty"`
	Category      string `json:"category"`
	CategoryZH    string `json:"category_zh,omitempty"`
}
