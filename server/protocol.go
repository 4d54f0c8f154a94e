package server

import "github.com/podiumlabs/arena/types"

// Command types accepted over the WebSocket.
const (
	CmdStart       = "start"
	CmdPauseResume = "pause_resume"
	CmdVote        = "vote"
	CmdWildcard    = "wildcard"
	CmdScore       = "score"
	CmdInterject   = "interject"
	CmdSave        = "save"
	CmdLoad        = "load"
	CmdMute        = "mute"
	CmdEnd         = "end"
	CmdLogin       = "login"
	CmdRegister    = "register"
	CmdLogout      = "logout"
)

// Command is one client request. Only the fields relevant to Type are
// read.
type Command struct {
	Type string `json:"type"`

	Topic  string             `json:"topic,omitempty"`
	Config types.DebateConfig `json:"config,omitempty"`
	Lang   types.Language     `json:"lang,omitempty"`

	Side  types.SideID `json:"side,omitempty"`
	Text  string       `json:"text,omitempty"`
	Muted bool         `json:"muted,omitempty"`

	DisplayName  string `json:"displayName,omitempty"`
	Email        string `json:"email,omitempty"`
	Password     string `json:"password,omitempty"`
	PasswordConf string `json:"passwordConf,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// Server-originated message types outside the engine's event set.
const (
	evtAudio     = "audio"
	evtAuthOK    = "auth_ok"
	evtAuthError = "auth_error"
)

// audioEvent carries one synthesized speech chunk.
type audioEvent struct {
	Type       string `json:"type"`
	Payload    string `json:"payload"`
	SampleRate int    `json:"sampleRate"`
}

// authEvent reports the outcome of a login, register or logout.
type authEvent struct {
	Type string      `json:"type"`
	User *types.User `json:"user,omitempty"`
	Text string      `json:"text,omitempty"`
}
