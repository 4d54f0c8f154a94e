package debate

import (
	"github.com/podiumlabs/arena/snapshot"
	"github.com/podiumlabs/arena/types"
)

// EventType discriminates engine events.
type EventType string

const (
	EventMessageAppended EventType = "message_appended"
	EventMessageReplaced EventType = "message_replaced"
	EventMessageRemoved  EventType = "message_removed"
	EventStatusChanged   EventType = "status_changed"
	EventVotesUpdated    EventType = "votes_updated"
	EventMatchResult     EventType = "match_result"
	EventNotification    EventType = "notification"
	EventLimitReached    EventType = "limit_reached"
	EventSessionLoaded   EventType = "session_loaded"
)

// Event is one state change pushed to the engine's observer. Only the
// fields relevant to the Type are populated.
type Event struct {
	Type EventType `json:"type"`

	// Message carries the appended or replacing transcript entry.
	Message *types.Message `json:"message,omitempty"`

	// ReplacedID names the placeholder that Message replaces.
	ReplacedID string `json:"replacedId,omitempty"`

	// RemovedID names a transcript entry withdrawn without replacement.
	RemovedID string `json:"removedId,omitempty"`

	Status       types.DebateStatus `json:"status,omitempty"`
	Paused       bool               `json:"paused,omitempty"`
	LimitReached bool               `json:"limitReached,omitempty"`

	VoteA int `json:"voteA,omitempty"`
	VoteB int `json:"voteB,omitempty"`

	Result *types.MatchResult `json:"result,omitempty"`

	// Text carries a transient notification line.
	Text string `json:"text,omitempty"`

	// Snapshot carries the full restored state on EventSessionLoaded.
	Snapshot *snapshot.SessionSnapshot `json:"snapshot,omitempty"`
}

func statusEvent(s *State) Event {
	return Event{
		Type:         EventStatusChanged,
		Status:       s.Status,
		Paused:       s.Paused,
		LimitReached: s.LimitReached,
	}
}

func votesEvent(s *State) Event {
	return Event{Type: EventVotesUpdated, VoteA: s.VoteA, VoteB: s.VoteB}
}
