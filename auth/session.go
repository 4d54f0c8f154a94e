package auth

import "github.com/podiumlabs/arena/types"

// Session is an authenticated identity. It is threaded explicitly
// through the components that need it rather than held in a global;
// a nil *Session means the guest identity.
type Session struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// Authenticated reports whether the session carries a usable token.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// DisplayName returns the account's display name, or empty for guests.
func (s *Session) DisplayName() string {
	if s == nil {
		return ""
	}
	return s.User.DisplayName
}
