package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/podiumlabs/arena/audio"
	"github.com/podiumlabs/arena/auth"
	"github.com/podiumlabs/arena/debate"
	"github.com/podiumlabs/arena/logger"
	"github.com/podiumlabs/arena/snapshot"
)

// client is one WebSocket connection and its dedicated engine.
type client struct {
	srv     *Server
	conn    *websocket.Conn
	engine  *debate.Engine
	queue   *audio.Queue
	limiter *rate.Limiter

	out    chan []byte
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	sess *auth.Session
}

func newClient(s *Server, conn *websocket.Conn) *client {
	ctx, cancel := context.WithCancel(context.Background())
	c := &client{
		srv:     s,
		conn:    conn,
		limiter: rate.NewLimiter(s.cfg.RateLimit, s.cfg.RateBurst),
		out:     make(chan []byte, 64),
		ctx:     ctx,
		cancel:  cancel,
		sess:    s.cfg.InitialSession,
	}

	opts := []debate.Option{
		debate.WithGuestQuota(s.cfg.GuestQuota),
		debate.WithLanguage(s.cfg.Language),
		debate.WithSession(c.sess),
	}
	if s.cfg.TurnDelay > 0 {
		opts = append(opts, debate.WithTurnDelay(s.cfg.TurnDelay))
	}
	if s.cfg.Store != nil {
		opts = append(opts, debate.WithSnapshotStore(s.cfg.Store))
	}
	if s.cfg.Speech != nil {
		c.queue = audio.NewQueue(&wsSink{send: c.send})
		opts = append(opts, debate.WithSpeech(s.cfg.Speech, c.queue))
	}
	c.engine = debate.NewEngine(s.cfg.Provider, opts...)
	return c
}

// serve pumps the connection until either side closes.
func (c *client) serve(parent context.Context) {
	defer c.teardown()

	go c.writeLoop()
	go c.eventLoop()

	c.conn.SetReadLimit(DefaultMaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.srv.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.srv.cfg.PongWait))
	})
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("websocket read failed", "error", err)
			}
			return
		}
		if !c.limiter.Allow() {
			logger.Warn("command rate limit exceeded", "remote", c.conn.RemoteAddr().String())
			continue
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			logger.Debug("undecodable command", "error", err)
			continue
		}
		c.dispatch(cmd)

		select {
		case <-parent.Done():
			return
		case <-c.ctx.Done():
			return
		default:
		}
	}
}

func (c *client) teardown() {
	c.cancel()
	c.engine.Close()
	if c.queue != nil {
		c.queue.Close()
	}
	_ = c.conn.Close()
}

func (c *client) dispatch(cmd Command) {
	switch cmd.Type {
	case CmdStart:
		c.engine.Start(cmd.Topic, cmd.Config, cmd.Lang)
	case CmdPauseResume:
		c.engine.TogglePause()
	case CmdVote:
		c.engine.Vote(cmd.Side)
	case CmdWildcard:
		c.engine.Wildcard()
	case CmdScore:
		c.engine.Score()
	case CmdInterject:
		c.engine.Interject(cmd.Text)
	case CmdSave:
		c.engine.Save()
	case CmdLoad:
		c.engine.Load()
	case CmdMute:
		c.engine.SetMuted(cmd.Muted)
	case CmdEnd:
		c.engine.End()
	case CmdLogin:
		c.login(cmd)
	case CmdRegister:
		c.register(cmd)
	case CmdLogout:
		c.logout()
	default:
		logger.Debug("unknown command", "type", cmd.Type)
	}
}

func (c *client) login(cmd Command) {
	if c.srv.cfg.Auth == nil {
		c.sendAuthError("authentication is not configured")
		return
	}
	go func() {
		sess, err := c.srv.cfg.Auth.Login(c.ctx, auth.LoginRequest{
			Email:    cmd.Email,
			Password: cmd.Password,
		})
		if err != nil {
			c.sendAuthError(err.Error())
			return
		}
		c.installSession(sess)
	}()
}

func (c *client) register(cmd Command) {
	if c.srv.cfg.Auth == nil {
		c.sendAuthError("authentication is not configured")
		return
	}
	go func() {
		sess, err := c.srv.cfg.Auth.Register(c.ctx, auth.RegisterRequest{
			DisplayName:  cmd.DisplayName,
			Email:        cmd.Email,
			Password:     cmd.Password,
			PasswordConf: cmd.PasswordConf,
			Phone:        cmd.Phone,
		})
		if err != nil {
			c.sendAuthError(err.Error())
			return
		}
		c.installSession(sess)
	}()
}

func (c *client) logout() {
	c.mu.Lock()
	sess := c.sess
	c.sess = nil
	c.mu.Unlock()

	c.engine.SetAuth(nil)
	if c.srv.cfg.Store != nil {
		if err := c.srv.cfg.Store.ClearCredentials(c.ctx); err != nil {
			logger.Warn("credential clear failed", "error", err)
		}
	}
	if c.srv.cfg.Auth != nil && sess != nil {
		go c.srv.cfg.Auth.Logout(c.ctx, sess)
	}
	c.sendJSON(authEvent{Type: evtAuthOK})
}

func (c *client) installSession(sess *auth.Session) {
	c.mu.Lock()
	c.sess = sess
	c.mu.Unlock()

	c.engine.SetAuth(sess)
	if c.srv.cfg.Store != nil {
		creds := &snapshot.Credentials{Token: sess.Token, User: sess.User}
		if err := c.srv.cfg.Store.SaveCredentials(c.ctx, creds); err != nil {
			logger.Warn("credential save failed", "error", err)
		}
	}
	user := sess.User
	c.sendJSON(authEvent{Type: evtAuthOK, User: &user})
}

func (c *client) sendAuthError(text string) {
	c.sendJSON(authEvent{Type: evtAuthError, Text: text})
}

// eventLoop forwards engine events to the connection.
func (c *client) eventLoop() {
	for {
		select {
		case <-c.ctx.Done():
			return
		case ev := <-c.engine.Events():
			c.sendJSON(ev)
		}
	}
}

// writeLoop is the single writer on the underlying connection. Pings on
// a ticker keep a silently-dead peer from holding the engine open past
// the pong deadline.
func (c *client) writeLoop() {
	ticker := time.NewTicker(c.srv.cfg.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(DefaultWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Debug("websocket ping failed", "error", err)
				c.cancel()
				return
			}
		case msg := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(DefaultWriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("websocket write failed", "error", err)
				c.cancel()
				return
			}
		}
	}
}

// send queues an outbound frame, blocking until the writer accepts it or
// the connection closes. Reports whether the frame was accepted.
func (c *client) send(msg []byte) bool {
	select {
	case c.out <- msg:
		return true
	case <-c.ctx.Done():
		return false
	}
}

func (c *client) sendJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn("event marshal failed", "error", err)
		return
	}
	c.send(data)
}

// wsSink streams synthesized audio to the browser and paces delivery by
// each chunk's playback duration, which preserves the one-at-a-time
// ordering contract end to end.
type wsSink struct {
	send func([]byte) bool
}

func (s *wsSink) Play(ctx context.Context, samples []float32, sampleRate int) error {
	msg, err := json.Marshal(audioEvent{
		Type:       evtAudio,
		Payload:    audio.EncodePCM16(samples),
		SampleRate: sampleRate,
	})
	if err != nil {
		return err
	}
	if !s.send(msg) {
		return ctx.Err()
	}

	select {
	case <-time.After(audio.Duration(len(samples), sampleRate)):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
