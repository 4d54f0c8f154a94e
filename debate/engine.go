// Package debate implements the turn-taking orchestration loop.
//
// An Engine owns one session's State and runs a single goroutine that
// consumes a command channel. User actions and asynchronous completions
// (personas ready, turn text generated, audience reaction, judge result)
// all re-enter through that channel, so the state has exactly one writer.
// Observers receive the resulting changes as Events.
package debate

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/podiumlabs/arena/audio"
	"github.com/podiumlabs/arena/auth"
	"github.com/podiumlabs/arena/gate"
	"github.com/podiumlabs/arena/logger"
	"github.com/podiumlabs/arena/metrics"
	"github.com/podiumlabs/arena/providers"
	"github.com/podiumlabs/arena/snapshot"
	"github.com/podiumlabs/arena/tts"
	"github.com/podiumlabs/arena/types"
)

// DefaultTurnDelay paces consecutive turns to a readable rhythm.
const DefaultTurnDelay = time.Second

// audienceChance is the probability that a completed turn draws an
// audience reaction; voteBonusChance is the independent probability that
// a delivered reaction also awards voteBonus to the speaking side. The
// two draws are deliberately separate.
const (
	audienceChance  = 0.2
	voteBonusChance = 0.5
	voteBonus       = 2
)

type commandKind int

const (
	cmdStart commandKind = iota
	cmdPauseToggle
	cmdVote
	cmdWildcard
	cmdScore
	cmdInterject
	cmdSave
	cmdLoad
	cmdSetAuth
	cmdSetMuted
	cmdEnd
	cmdInspect

	// internal scheduling and async completions
	cmdTick
	cmdPersonasReady
	cmdTurnDone
	cmdAudienceReady
	cmdScoreReady
)

// command is the single message type consumed by the engine goroutine.
// Async completions carry the epoch they were dispatched under; results
// from a superseded session are discarded.
type command struct {
	kind  commandKind
	epoch uint64

	topic  string
	config types.DebateConfig
	lang   types.Language
	side   types.SideID
	text   string
	muted  bool
	sess   *auth.Session

	personas types.PersonaPair
	err      error
	result   types.MatchResult

	// transientID names the placeholder a completion resolves.
	transientID string

	reply chan State
}

// Engine orchestrates one debate session.
type Engine struct {
	provider providers.ContentProvider
	speech   tts.Service
	queue    *audio.Queue
	store    snapshot.Store

	turnDelay time.Duration
	quota     int

	state *State
	sess  *auth.Session

	// epoch identifies the current session generation. Bumped on every
	// start, end and load so stale async completions and timer ticks
	// can be recognized and dropped.
	epoch        uint64
	turnInFlight bool
	delayArmed   bool

	// randomness hooks, overridable in tests
	roll func() float64
	pick func(n int) int

	cmds   chan command
	events chan Event

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithSpeech enables speech synthesis for finalized turns.
func WithSpeech(svc tts.Service, queue *audio.Queue) Option {
	return func(e *Engine) {
		e.speech = svc
		e.queue = queue
	}
}

// WithSnapshotStore enables save and load.
func WithSnapshotStore(store snapshot.Store) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithTurnDelay overrides the inter-turn pacing delay.
func WithTurnDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.turnDelay = d
	}
}

// WithGuestQuota overrides the unauthenticated turn quota.
func WithGuestQuota(n int) Option {
	return func(e *Engine) {
		e.quota = n
	}
}

// WithLanguage sets the default session language.
func WithLanguage(lang types.Language) Option {
	return func(e *Engine) {
		e.state.Lang = lang
	}
}

// WithSession seeds the authenticated session loaded at startup.
func WithSession(sess *auth.Session) Option {
	return func(e *Engine) {
		e.sess = sess
	}
}

// NewEngine creates an engine and starts its command loop.
func NewEngine(provider providers.ContentProvider, opts ...Option) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		provider:  provider,
		turnDelay: DefaultTurnDelay,
		quota:     gate.DefaultGuestQuota,
		state:     newState(types.LangEN),
		roll:      rand.Float64,
		pick:      rand.IntN,
		cmds:      make(chan command, 64),
		events:    make(chan Event, 256),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	go e.run()
	return e
}

// Events returns the engine's event stream. The channel is buffered;
// events are dropped with a log line if the observer falls behind.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Close stops the command loop. In-flight provider calls are abandoned;
// their completions are discarded.
func (e *Engine) Close() {
	e.cancel()
	<-e.done
}

// Start begins a new session, replacing any previous one.
func (e *Engine) Start(topic string, cfg types.DebateConfig, lang types.Language) {
	e.post(command{kind: cmdStart, topic: topic, config: cfg, lang: lang})
}

// TogglePause flips the pause flag. Work already in flight still
// completes and delivers its result.
func (e *Engine) TogglePause() {
	e.post(command{kind: cmdPauseToggle})
}

// Vote awards one manual vote to a side.
func (e *Engine) Vote(side types.SideID) {
	e.post(command{kind: cmdVote, side: side})
}

// Wildcard draws a random one-shot modifier for the next turn. A newer
// draw replaces an unconsumed older one.
func (e *Engine) Wildcard() {
	e.post(command{kind: cmdWildcard})
}

// Score pauses the session and requests a judged result.
func (e *Engine) Score() {
	e.post(command{kind: cmdScore})
}

// Interject appends a user message to the transcript.
func (e *Engine) Interject(text string) {
	e.post(command{kind: cmdInterject, text: text})
}

// Save persists the current session snapshot.
func (e *Engine) Save() {
	e.post(command{kind: cmdSave})
}

// Load replaces the session with the stored snapshot, paused.
func (e *Engine) Load() {
	e.post(command{kind: cmdLoad})
}

// SetAuth installs or clears the authenticated session. Installing a
// session releases a guest-limit block and resumes the debate.
func (e *Engine) SetAuth(sess *auth.Session) {
	e.post(command{kind: cmdSetAuth, sess: sess})
}

// SetMuted toggles audio. Muting drops future speech, not the payload
// already playing.
func (e *Engine) SetMuted(muted bool) {
	e.post(command{kind: cmdSetMuted, muted: muted})
}

// End finishes the session. No further turns execute.
func (e *Engine) End() {
	e.post(command{kind: cmdEnd})
}

// Inspect returns a deep copy of the current state.
func (e *Engine) Inspect() State {
	reply := make(chan State, 1)
	e.post(command{kind: cmdInspect, reply: reply})
	select {
	case s := <-reply:
		return s
	case <-e.ctx.Done():
		return State{}
	}
}

func (e *Engine) post(c command) {
	select {
	case e.cmds <- c:
	case <-e.ctx.Done():
	}
}

func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
		logger.Warn("engine event dropped, observer too slow", "type", ev.Type)
	}
}

func (e *Engine) run() {
	defer close(e.done)
	for {
		select {
		case <-e.ctx.Done():
			// A connection dropped mid-session never sends End; settle
			// the gauge here so shutdown leaves it balanced.
			if e.state.active() {
				metrics.SessionEnded()
			}
			return
		case c := <-e.cmds:
			e.handle(c)
		}
	}
}

func (e *Engine) handle(c command) {
	switch c.kind {
	case cmdStart:
		e.handleStart(c)
	case cmdPauseToggle:
		e.state.Paused = !e.state.Paused
		e.emit(statusEvent(e.state))
		if !e.state.Paused {
			e.maybeSchedule()
		}
	case cmdVote:
		if c.side == types.SideA {
			e.state.VoteA++
		} else {
			e.state.VoteB++
		}
		e.emit(votesEvent(e.state))
	case cmdWildcard:
		e.handleWildcard()
	case cmdScore:
		e.handleScore()
	case cmdInterject:
		if c.text != "" {
			m := e.state.append(types.NewMessage(types.SenderUser, c.text))
			e.emit(Event{Type: EventMessageAppended, Message: m})
		}
	case cmdSave:
		e.handleSave()
	case cmdLoad:
		e.handleLoad()
	case cmdSetAuth:
		e.handleSetAuth(c.sess)
	case cmdSetMuted:
		e.state.Muted = c.muted
		if e.queue != nil {
			e.queue.SetMuted(c.muted)
		}
	case cmdEnd:
		e.handleEnd()
	case cmdInspect:
		s := e.state.clone()
		s.TurnInFlight = e.turnInFlight
		c.reply <- s
	case cmdTick:
		e.handleTick(c)
	case cmdPersonasReady:
		e.handlePersonasReady(c)
	case cmdTurnDone:
		e.handleTurnDone(c)
	case cmdAudienceReady:
		e.handleAudienceReady(c)
	case cmdScoreReady:
		e.handleScoreReady(c)
	}
}

func (e *Engine) handleStart(c command) {
	e.epoch++
	e.turnInFlight = false
	e.delayArmed = false

	if e.state.active() {
		metrics.SessionEnded()
	}

	lang := c.lang
	if lang == "" {
		lang = e.state.Lang
	}
	e.state = newState(lang)
	e.state.Topic = c.topic
	e.state.Config = c.config.Normalize()
	e.state.Status = types.StatusGeneratingPersonas
	if e.queue != nil {
		e.queue.Clear()
	}
	metrics.SessionStarted()

	e.emit(statusEvent(e.state))
	m := e.state.append(types.NewMessage(types.SenderSystem, analyzingTopicText(lang, c.topic)))
	e.emit(Event{Type: EventMessageAppended, Message: m})

	epoch := e.epoch
	go func() {
		pair, err := e.provider.GeneratePersonas(e.ctx, c.topic, lang)
		e.post(command{kind: cmdPersonasReady, epoch: epoch, personas: pair, err: err})
	}()
}

func (e *Engine) handlePersonasReady(c command) {
	if c.epoch != e.epoch || e.state.Status != types.StatusGeneratingPersonas {
		return
	}
	if c.err != nil {
		logger.Error("persona generation failed", "error", c.err)
		m := e.state.append(types.NewMessage(types.SenderSystem, initFailedText(e.state.Lang)))
		e.emit(Event{Type: EventMessageAppended, Message: m})
		e.state.Status = types.StatusIdle
		e.emit(statusEvent(e.state))
		return
	}

	pair := c.personas
	e.state.Personas = &pair
	m := e.state.append(types.NewMessage(types.SenderSystem, matchFoundText(e.state.Lang, pair.A, pair.B)))
	e.emit(Event{Type: EventMessageAppended, Message: m})
	e.state.Status = types.StatusDebating
	e.state.Turn = types.SideA
	e.emit(statusEvent(e.state))
	e.maybeSchedule()
}

// maybeSchedule arms the inter-turn delay when a turn could run. The
// actual admission decision happens on the tick so a pause or limit in
// the interim still wins.
func (e *Engine) maybeSchedule() {
	if e.state.Status != types.StatusDebating || e.state.Paused {
		return
	}
	if e.turnInFlight || e.delayArmed {
		return
	}
	e.delayArmed = true
	epoch := e.epoch
	time.AfterFunc(e.turnDelay, func() {
		e.post(command{kind: cmdTick, epoch: epoch})
	})
}

func (e *Engine) handleTick(c command) {
	if c.epoch != e.epoch {
		return
	}
	e.delayArmed = false
	if e.state.Status != types.StatusDebating || e.state.Paused || e.turnInFlight {
		return
	}
	if e.state.Personas == nil {
		return
	}

	if gate.Blocked(e.state.Messages, e.sess.Authenticated(), e.quota) {
		e.state.Paused = true
		e.state.LimitReached = true
		metrics.GuestLimitHit()
		e.emit(statusEvent(e.state))
		e.emit(Event{Type: EventLimitReached})
		return
	}
	e.beginTurn()
}

func (e *Engine) beginTurn() {
	e.turnInFlight = true
	side := e.state.Turn
	speaker := e.state.Personas.Get(side)
	opponent := e.state.Personas.Get(side.Opponent())

	// Capture the history before the placeholder goes in; the provider
	// must not see the pending entry.
	transcript := append([]types.Message(nil), e.state.Messages...)

	placeholder := e.state.append(types.NewThinkingMessage(types.SenderID(side)))
	e.emit(Event{Type: EventMessageAppended, Message: placeholder})

	// Consume the one-shot modifier now; a wildcard drawn during
	// generation targets the turn after this one.
	modifier := e.state.Modifier
	e.state.Modifier = ""

	req := providers.TurnRequest{
		Topic:      e.state.Topic,
		Speaker:    speaker,
		Opponent:   opponent,
		Transcript: transcript,
		Lang:       e.state.Lang,
		Config:     e.state.Config,
		Modifier:   modifier,
	}

	epoch := e.epoch
	placeholderID := placeholder.ID
	go func() {
		text, err := e.provider.GenerateTurn(e.ctx, req)
		e.post(command{
			kind:        cmdTurnDone,
			epoch:       epoch,
			side:        side,
			text:        text,
			err:         err,
			transientID: placeholderID,
		})
	}()
}

func (e *Engine) handleTurnDone(c command) {
	if c.epoch != e.epoch {
		return
	}
	e.turnInFlight = false

	if c.err != nil {
		// Silent drop: withdraw the placeholder and let the next pass
		// retry with the turn owner unchanged.
		logger.Warn("turn generation failed", "side", string(c.side), "error", c.err)
		metrics.TurnDropped(string(c.side))
		if e.state.remove(c.transientID) {
			e.emit(Event{Type: EventMessageRemoved, RemovedID: c.transientID})
		}
		e.maybeSchedule()
		return
	}

	e.state.remove(c.transientID)
	m := e.state.append(types.NewMessage(types.SenderID(c.side), c.text))
	e.emit(Event{Type: EventMessageReplaced, ReplacedID: c.transientID, Message: m})
	metrics.TurnCompleted(string(c.side))

	e.dispatchSpeech(c.side, c.text)

	if e.roll() < audienceChance {
		epoch := e.epoch
		topic, lang, side := e.state.Topic, e.state.Lang, c.side
		text := c.text
		go func() {
			reaction, err := e.provider.GenerateAudienceComment(e.ctx, topic, text, lang)
			if err != nil {
				logger.Debug("audience comment failed", "error", err)
				return
			}
			e.post(command{kind: cmdAudienceReady, epoch: epoch, side: side, text: reaction})
		}()
	}

	e.state.Turn = c.side.Opponent()
	e.maybeSchedule()
}

// dispatchSpeech fires speech synthesis for a finalized turn without
// blocking turn progression. The queue itself is safe for concurrent
// enqueue, so the completion does not re-enter the command loop.
func (e *Engine) dispatchSpeech(side types.SideID, text string) {
	if e.speech == nil || e.queue == nil || e.state.Muted {
		return
	}
	voice := tts.VoiceForSide(string(side))
	go func() {
		payload, err := e.speech.Synthesize(e.ctx, text, tts.SynthesisConfig{Voice: voice})
		if err != nil {
			logger.Debug("speech synthesis failed", "voice", voice, "error", err)
			return
		}
		if payload != "" {
			e.queue.Enqueue(payload)
		}
	}()
}

func (e *Engine) handleAudienceReady(c command) {
	if c.epoch != e.epoch || c.text == "" {
		return
	}
	m := e.state.append(types.NewMessage(types.SenderAudience, c.text))
	e.emit(Event{Type: EventMessageAppended, Message: m})
	metrics.AudienceReaction()

	if e.roll() < voteBonusChance {
		if c.side == types.SideA {
			e.state.VoteA += voteBonus
		} else {
			e.state.VoteB += voteBonus
		}
		e.emit(votesEvent(e.state))
	}
}

func (e *Engine) handleWildcard() {
	if e.state.Status != types.StatusDebating {
		return
	}
	modifier := Modifiers[e.pick(len(Modifiers))]
	e.state.Modifier = modifier
	m := e.state.append(types.NewMessage(types.SenderSystem, wildcardText(e.state.Lang, modifier)))
	e.emit(Event{Type: EventMessageAppended, Message: m})
}

func (e *Engine) handleScore() {
	if e.state.Personas == nil {
		return
	}
	e.state.Paused = true
	e.emit(statusEvent(e.state))

	// The judge sees the settled transcript: no pending turn entry and
	// not the judging line added below.
	transcript := make([]types.Message, 0, len(e.state.Messages))
	for _, m := range e.state.Messages {
		if !m.IsThinking {
			transcript = append(transcript, m)
		}
	}

	placeholder := e.state.append(types.NewMessage(types.SenderSystem, judgingText(e.state.Lang)))
	e.emit(Event{Type: EventMessageAppended, Message: placeholder})

	epoch := e.epoch
	topic, lang, cfg := e.state.Topic, e.state.Lang, e.state.Config
	placeholderID := placeholder.ID
	go func() {
		result, err := e.provider.EvaluateDebate(e.ctx, topic, transcript, lang, cfg)
		if err != nil {
			logger.Error("debate evaluation failed", "error", err)
			result = types.NeutralResult()
		}
		e.post(command{kind: cmdScoreReady, epoch: epoch, result: result, transientID: placeholderID})
	}()
}

func (e *Engine) handleScoreReady(c command) {
	if c.epoch != e.epoch {
		return
	}
	if e.state.remove(c.transientID) {
		e.emit(Event{Type: EventMessageRemoved, RemovedID: c.transientID})
	}
	result := c.result
	e.state.Result = &result
	e.emit(Event{Type: EventMatchResult, Result: &result})
}

func (e *Engine) handleSave() {
	if e.store == nil {
		return
	}
	if err := e.store.SaveSession(e.ctx, e.state.toSnapshot()); err != nil {
		logger.Error("session save failed", "error", err)
		e.emit(Event{Type: EventNotification, Text: saveFailedText(e.state.Lang)})
		return
	}
	e.emit(Event{Type: EventNotification, Text: savedText(e.state.Lang)})
}

func (e *Engine) handleLoad() {
	if e.store == nil {
		return
	}
	snap, err := e.store.LoadSession(e.ctx)
	if err != nil {
		// The current session stays untouched on any load failure.
		if errors.Is(err, snapshot.ErrNotFound) {
			e.emit(Event{Type: EventNotification, Text: noSaveText(e.state.Lang)})
			return
		}
		logger.Error("session load failed", "error", err)
		e.emit(Event{Type: EventNotification, Text: loadFailedText(e.state.Lang)})
		return
	}

	e.epoch++
	e.turnInFlight = false
	e.delayArmed = false
	muted := e.state.Muted
	wasActive := e.state.active()
	e.state = fromSnapshot(snap, e.state.Lang)
	e.state.Muted = muted
	// Loading can move the session in or out of the active states; keep
	// the gauge in step either way.
	switch {
	case wasActive && !e.state.active():
		metrics.SessionEnded()
	case !wasActive && e.state.active():
		metrics.SessionStarted()
	}

	e.emit(Event{Type: EventSessionLoaded, Snapshot: snap})
	e.emit(Event{Type: EventNotification, Text: loadedText(e.state.Lang)})
	e.emit(statusEvent(e.state))
}

func (e *Engine) handleSetAuth(sess *auth.Session) {
	e.sess = sess
	if sess.Authenticated() && e.state.LimitReached {
		// The block was limit-induced; signing in lifts it and resumes.
		e.state.LimitReached = false
		e.state.Paused = false
		e.emit(statusEvent(e.state))
		e.maybeSchedule()
	}
}

func (e *Engine) handleEnd() {
	if e.state.Status == types.StatusIdle || e.state.Status == types.StatusFinished {
		return
	}
	e.epoch++
	e.turnInFlight = false
	e.delayArmed = false
	e.state.Status = types.StatusFinished
	e.state.Paused = false
	metrics.SessionEnded()
	e.emit(statusEvent(e.state))
}
