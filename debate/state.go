package debate

import (
	"github.com/podiumlabs/arena/snapshot"
	"github.com/podiumlabs/arena/types"
)

// State is the authoritative record of one debate session. It is owned
// by the engine goroutine; everything outside the engine sees copies.
type State struct {
	Topic    string
	Status   types.DebateStatus
	Personas *types.PersonaPair
	Messages []types.Message
	Turn     types.SideID
	VoteA    int
	VoteB    int
	Result   *types.MatchResult
	Lang     types.Language
	Config   types.DebateConfig

	Paused       bool
	LimitReached bool

	// Modifier is the pending one-shot style directive. Set by a
	// wildcard draw, overwritten by a newer draw, cleared when a turn
	// consumes it.
	Modifier string

	Muted bool

	// TurnInFlight is populated on inspection copies only; it reports
	// whether a turn generation call is outstanding.
	TurnInFlight bool
}

// initialVotes is the starting score shown for each side. Both sides
// open level; audience bonuses and manual votes move the needle.
const initialVotes = 50

func newState(lang types.Language) *State {
	return &State{
		Status: types.StatusIdle,
		Turn:   types.SideA,
		VoteA:  initialVotes,
		VoteB:  initialVotes,
		Lang:   lang,
	}
}

// active reports whether the session counts toward the live-session
// gauge: turns are running or personas are being generated.
func (s *State) active() bool {
	return s.Status == types.StatusDebating || s.Status == types.StatusGeneratingPersonas
}

// clone returns a deep copy safe to hand outside the engine goroutine.
func (s *State) clone() State {
	out := *s
	out.Messages = append([]types.Message(nil), s.Messages...)
	if s.Personas != nil {
		pair := *s.Personas
		out.Personas = &pair
	}
	if s.Result != nil {
		result := *s.Result
		out.Result = &result
	}
	return out
}

// append adds a message to the transcript and returns a copy for event
// emission. Events never alias the stored slice; remove shifts elements
// in place and an observer may still hold the event.
func (s *State) append(m types.Message) *types.Message {
	s.Messages = append(s.Messages, m)
	out := m
	return &out
}

// remove drops the message with the given id, if present.
func (s *State) remove(id string) bool {
	for i, m := range s.Messages {
		if m.ID == id {
			s.Messages = append(s.Messages[:i], s.Messages[i+1:]...)
			return true
		}
	}
	return false
}

// toSnapshot serializes the persisted portion of the state.
func (s *State) toSnapshot() *snapshot.SessionSnapshot {
	snap := &snapshot.SessionSnapshot{
		Topic:    s.Topic,
		Status:   s.Status,
		Messages: append([]types.Message(nil), s.Messages...),
		Turn:     s.Turn,
		VoteA:    s.VoteA,
		VoteB:    s.VoteB,
		Lang:     s.Lang,
		Config:   s.Config,
	}
	if s.Personas != nil {
		a, b := s.Personas.A, s.Personas.B
		snap.PersonaA, snap.PersonaB = &a, &b
	}
	if s.Result != nil {
		result := *s.Result
		snap.MatchResult = &result
	}
	return snap
}

// fromSnapshot rebuilds session state from a restored snapshot. Loaded
// sessions never auto-resume, so Paused is always set.
func fromSnapshot(snap *snapshot.SessionSnapshot, fallbackLang types.Language) *State {
	s := &State{
		Topic:    snap.Topic,
		Status:   snap.Status,
		Messages: append([]types.Message(nil), snap.Messages...),
		Turn:     snap.Turn,
		VoteA:    snap.VoteA,
		VoteB:    snap.VoteB,
		Lang:     snap.Lang,
		Config:   snap.Config,
		Paused:   true,
	}
	if s.Lang == "" {
		s.Lang = fallbackLang
	}
	if s.Turn == "" {
		s.Turn = types.SideA
	}
	if snap.PersonaA != nil && snap.PersonaB != nil {
		s.Personas = &types.PersonaPair{A: *snap.PersonaA, B: *snap.PersonaB}
	}
	if snap.MatchResult != nil {
		result := *snap.MatchResult
		s.Result = &result
	}
	return s
}
