package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/podiumlabs/arena/types"
)

// ScriptedProvider is a deterministic in-memory provider for tests and
// offline demos. It cycles through a fixed list of turn lines and never
// performs network calls.
type ScriptedProvider struct {
	mu sync.Mutex

	// Personas returned by GeneratePersonas. Zero value falls back to
	// FallbackPersonas.
	Personas types.PersonaPair

	// PersonaErr, when set, is returned by GeneratePersonas to exercise
	// the initialization failure path.
	PersonaErr error

	// Turns are cycled through by GenerateTurn. Empty means a generic
	// line including the speaker side and turn number.
	Turns []string

	// TurnErr, when set, is returned by GenerateTurn.
	TurnErr error

	// Reactions are cycled through by GenerateAudienceComment. Empty
	// means no audience reaction (suppressed).
	Reactions []string

	// Result is returned by EvaluateDebate. Zero value means the neutral
	// result.
	Result types.MatchResult

	turnCalls     int
	reactionCalls int
	evalCalls     int
	requests      []TurnRequest
}

// ID returns the provider identifier.
func (p *ScriptedProvider) ID() string {
	return "scripted"
}

// GeneratePersonas returns the scripted persona pair.
func (p *ScriptedProvider) GeneratePersonas(ctx context.Context, topic string, lang types.Language) (types.PersonaPair, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.PersonaErr != nil {
		return types.PersonaPair{}, p.PersonaErr
	}
	if p.Personas.A.Name == "" {
		return FallbackPersonas(lang), nil
	}
	return p.Personas, nil
}

// GenerateTurn returns the next scripted line.
func (p *ScriptedProvider) GenerateTurn(ctx context.Context, req TurnRequest) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.TurnErr != nil {
		return "", p.TurnErr
	}
	p.requests = append(p.requests, req)
	n := p.turnCalls
	p.turnCalls++
	if len(p.Turns) == 0 {
		return fmt.Sprintf("Scripted argument %d from side %s", n+1, req.Speaker.ID), nil
	}
	return p.Turns[n%len(p.Turns)], nil
}

// GenerateAudienceComment returns the next scripted reaction, or empty to
// suppress the audience message.
func (p *ScriptedProvider) GenerateAudienceComment(ctx context.Context, topic, lastText string, lang types.Language) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Reactions) == 0 {
		return "", nil
	}
	n := p.reactionCalls
	p.reactionCalls++
	return p.Reactions[n%len(p.Reactions)], nil
}

// EvaluateDebate returns the scripted result.
func (p *ScriptedProvider) EvaluateDebate(ctx context.Context, topic string, transcript []types.Message, lang types.Language, cfg types.DebateConfig) (types.MatchResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.evalCalls++
	if p.Result.Winner == "" {
		return types.NeutralResult(), nil
	}
	return p.Result, nil
}

// TurnCalls reports how many turns have been generated.
func (p *ScriptedProvider) TurnCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.turnCalls
}

// EvalCalls reports how many evaluations have been requested.
func (p *ScriptedProvider) EvalCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.evalCalls
}

// Requests returns a copy of every successful turn request, in order.
func (p *ScriptedProvider) Requests() []TurnRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]TurnRequest(nil), p.requests...)
}

// SetTurnErr flips the turn failure switch while the provider is in use.
func (p *ScriptedProvider) SetTurnErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.TurnErr = err
}
