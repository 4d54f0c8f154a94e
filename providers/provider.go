// Package providers implements the content generation boundary of the
// debate arena.
//
// A ContentProvider produces everything the orchestrator cannot compute
// locally: opposing persona pairs, debate turns, audience reactions and
// judged match results. Implementations are expected to fail closed,
// returning a usable fallback value instead of an error wherever the
// session can meaningfully continue.
package providers

import (
	"context"

	"github.com/podiumlabs/arena/types"
)

// TurnRequest carries everything a provider needs to generate one debate
// turn.
type TurnRequest struct {
	Topic      string
	Speaker    types.Persona
	Opponent   types.Persona
	Transcript []types.Message
	Lang       types.Language
	Config     types.DebateConfig

	// Modifier is an optional one-shot style directive imposed on this
	// turn only (the wildcard feature).
	Modifier string
}

// ContentProvider generates debate content.
type ContentProvider interface {
	// ID returns the provider identifier (for logging/metrics).
	ID() string

	// GeneratePersonas creates two opposing personas for the topic.
	// Implementations should degrade to a neutral stand-in pair on
	// upstream failure so the session can still proceed.
	GeneratePersonas(ctx context.Context, topic string, lang types.Language) (types.PersonaPair, error)

	// GenerateTurn produces the next utterance for req.Speaker.
	// Implementations should degrade to a neutral "thinking" line on
	// upstream failure so the turn owner still advances.
	GenerateTurn(ctx context.Context, req TurnRequest) (string, error)

	// GenerateAudienceComment produces a short audience reaction to the
	// latest turn. An empty string suppresses the audience message.
	GenerateAudienceComment(ctx context.Context, topic, lastText string, lang types.Language) (string, error)

	// EvaluateDebate scores the transcript. Implementations should
	// degrade to the all-zero neutral result on upstream failure.
	EvaluateDebate(ctx context.Context, topic string, transcript []types.Message, lang types.Language, cfg types.DebateConfig) (types.MatchResult, error)
}

// FallbackPersonas returns the neutral stand-in pair used when persona
// generation fails upstream.
func FallbackPersonas(lang types.Language) types.PersonaPair {
	if lang == types.LangZH {
		return types.PersonaPair{
			A: types.Persona{ID: types.SideA, Name: "正方", Role: "支持者", Description: "Supports the topic", Avatar: "⭕", Color: "blue", Style: "Standard"},
			B: types.Persona{ID: types.SideB, Name: "反方", Role: "反对者", Description: "Opposes the topic", Avatar: "❌", Color: "red", Style: "Standard"},
		}
	}
	return types.PersonaPair{
		A: types.Persona{ID: types.SideA, Name: "Proponent", Role: "Supporter", Description: "Supports the topic", Avatar: "⭕", Color: "blue", Style: "Standard"},
		B: types.Persona{ID: types.SideB, Name: "Opponent", Role: "Skeptic", Description: "Opposes the topic", Avatar: "❌", Color: "red", Style: "Standard"},
	}
}

// FallbackTurnText returns the neutral line used when turn generation
// fails upstream.
func FallbackTurnText(lang types.Language) string {
	if lang == types.LangZH {
		return "稍微等一下，我在思考..."
	}
	return "I need a moment to collect my thoughts..."
}

// FallbackAudienceText returns the neutral audience line used when the
// reaction call returns empty content but did not fail outright.
func FallbackAudienceText(lang types.Language) string {
	if lang == types.LangZH {
		return "有意思..."
	}
	return "Interesting..."
}
