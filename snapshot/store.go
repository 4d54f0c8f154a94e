// Package snapshot provides durable persistence of debate session state
// and authentication credentials.
//
// A session snapshot is written as a single JSON document under one key;
// credentials live under an independent key pair so logging in or out
// never touches saved debates. Stores are whole-value: no partial writes,
// no merging.
package snapshot

import (
	"context"
	"errors"

	"github.com/podiumlabs/arena/types"
)

// SessionSnapshot is the persisted session layout. Field names form the
// wire contract shared with the browser client.
type SessionSnapshot struct {
	Topic       string             `json:"topic"`
	Status      types.DebateStatus `json:"status"`
	PersonaA    *types.Persona     `json:"personaA"`
	PersonaB    *types.Persona     `json:"personaB"`
	Messages    []types.Message    `json:"messages"`
	Turn        types.SideID       `json:"turn"`
	VoteA       int                `json:"voteA"`
	VoteB       int                `json:"voteB"`
	MatchResult *types.MatchResult `json:"matchResult"`
	Lang        types.Language     `json:"lang"`
	Config      types.DebateConfig `json:"config"`
}

// Credentials is the persisted authentication state.
type Credentials struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// Store persists session snapshots and credentials.
type Store interface {
	// SaveSession overwrites the stored session snapshot.
	SaveSession(ctx context.Context, snap *SessionSnapshot) error

	// LoadSession retrieves the stored snapshot. Returns ErrNotFound
	// when nothing has been saved and ErrMalformed when the stored
	// document cannot be decoded; in both cases the caller's current
	// state must be left untouched.
	LoadSession(ctx context.Context) (*SessionSnapshot, error)

	// SaveCredentials overwrites the stored credentials.
	SaveCredentials(ctx context.Context, creds *Credentials) error

	// LoadCredentials retrieves stored credentials, or ErrNotFound.
	LoadCredentials(ctx context.Context) (*Credentials, error)

	// ClearCredentials removes stored credentials. Clearing absent
	// credentials is not an error.
	ClearCredentials(ctx context.Context) error
}

// ErrNotFound is returned when the requested key holds nothing.
var ErrNotFound = errors.New("snapshot not found")

// ErrMalformed is returned when stored content cannot be decoded.
var ErrMalformed = errors.New("snapshot is malformed")

// ErrInvalidSnapshot is returned when saving a nil snapshot.
var ErrInvalidSnapshot = errors.New("invalid snapshot")
