// Package server fronts debate engines to browsers over WebSocket.
//
// Each connection owns one engine; commands arrive as JSON messages and
// state changes stream back as the engine's events. Synthesized audio is
// paced server-side so chunks reach the browser in playback order.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/podiumlabs/arena/auth"
	"github.com/podiumlabs/arena/gate"
	"github.com/podiumlabs/arena/logger"
	"github.com/podiumlabs/arena/providers"
	"github.com/podiumlabs/arena/snapshot"
	"github.com/podiumlabs/arena/topics"
	"github.com/podiumlabs/arena/tts"
	"github.com/podiumlabs/arena/types"
)

// Connection behavior constants.
const (
	DefaultWriteWait      = 10 * time.Second
	DefaultPongWait       = 60 * time.Second
	DefaultPingInterval   = 50 * time.Second
	DefaultMaxMessageSize = 64 * 1024
	DefaultRateLimit      = rate.Limit(10)
	DefaultRateBurst      = 20
)

// Config configures the server.
type Config struct {
	// Provider generates debate content. Required.
	Provider providers.ContentProvider

	// Speech synthesizes turn audio. Optional; nil disables audio.
	Speech tts.Service

	// Store persists session snapshots and credentials. Optional.
	Store snapshot.Store

	// Auth talks to the account service. Optional; nil rejects auth
	// commands.
	Auth *auth.Client

	// InitialSession is the identity restored from stored credentials
	// at startup, shared by new connections until they log in or out.
	InitialSession *auth.Session

	// TurnDelay is the inter-turn pacing delay. Zero uses the engine
	// default.
	TurnDelay time.Duration

	// GuestQuota is the unauthenticated turn allowance.
	GuestQuota int

	// Language is the default session language.
	Language types.Language

	// RateLimit and RateBurst bound per-connection command throughput.
	RateLimit rate.Limit
	RateBurst int

	// PongWait is how long a peer may stay silent before the connection
	// is dropped; PingInterval paces the keepalive pings and must stay
	// below PongWait. Zero values use the defaults.
	PongWait     time.Duration
	PingInterval time.Duration
}

func (c *Config) defaults() {
	if c.GuestQuota == 0 {
		c.GuestQuota = gate.DefaultGuestQuota
	}
	if c.Language == "" {
		c.Language = types.LangEN
	}
	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
	}
	if c.RateBurst == 0 {
		c.RateBurst = DefaultRateBurst
	}
	if c.PongWait == 0 {
		c.PongWait = DefaultPongWait
	}
	if c.PingInterval == 0 {
		c.PingInterval = DefaultPingInterval
	}
}

// Server hosts the WebSocket endpoint and the auxiliary HTTP routes.
type Server struct {
	cfg      Config
	upgrader websocket.Upgrader
}

// New creates a server.
func New(cfg Config) *Server {
	cfg.defaults()
	return &Server{
		cfg: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The arena serves first-party browser clients only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /topics", s.handleTopics)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(topics.Catalog); err != nil {
		logger.Warn("topic catalog write failed", "error", err)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}
	c := newClient(s, conn)
	c.serve(r.Context())
}
