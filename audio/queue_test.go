package audio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures playback order and can simulate slow or failing
// playback.
type recordingSink struct {
	mu       sync.Mutex
	played   [][]float32
	delay    time.Duration
	failures int // fail the first N calls
	calls    int
	started  chan struct{}
}

func newRecordingSink() *recordingSink {
	return &recordingSink{started: make(chan struct{}, 64)}
}

func (s *recordingSink) Play(ctx context.Context, samples []float32, sampleRate int) error {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()

	select {
	case s.started <- struct{}{}:
	default:
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if call <= s.failures {
		return errors.New("sink failure")
	}

	s.mu.Lock()
	s.played = append(s.played, samples)
	s.mu.Unlock()
	return nil
}

func (s *recordingSink) playedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.played)
}

func (s *recordingSink) playedAt(i int) []float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played[i]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestQueue_PlaysInOrder(t *testing.T) {
	sink := newRecordingSink()
	q := NewQueue(sink)
	defer q.Close()

	p1 := encodePCM16(100)
	p2 := encodePCM16(200)
	p3 := encodePCM16(300)
	q.Enqueue(p1)
	q.Enqueue(p2)
	q.Enqueue(p3)

	waitFor(t, func() bool { return sink.playedCount() == 3 })
	assert.InDelta(t, 100.0/32768.0, sink.playedAt(0)[0], 1e-6)
	assert.InDelta(t, 200.0/32768.0, sink.playedAt(1)[0], 1e-6)
	assert.InDelta(t, 300.0/32768.0, sink.playedAt(2)[0], 1e-6)
}

func TestQueue_OneAtATime(t *testing.T) {
	sink := newRecordingSink()
	sink.delay = 30 * time.Millisecond
	q := NewQueue(sink)
	defer q.Close()

	q.Enqueue(encodePCM16(1))
	q.Enqueue(encodePCM16(2))

	// While the first payload is still playing nothing else may start.
	<-sink.started
	assert.Equal(t, 0, sink.playedCount())

	waitFor(t, func() bool { return sink.playedCount() == 2 })
}

func TestQueue_EnqueueWhileMutedDropsPayload(t *testing.T) {
	sink := newRecordingSink()
	q := NewQueue(sink)
	defer q.Close()

	q.SetMuted(true)
	q.Enqueue(encodePCM16(1))
	assert.Equal(t, 0, q.Len())

	// Unmuting later does not retroactively play skipped payloads.
	q.SetMuted(false)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, sink.playedCount())
}

func TestQueue_MuteKeepsBufferedEntries(t *testing.T) {
	sink := newRecordingSink()
	sink.delay = 20 * time.Millisecond
	q := NewQueue(sink)
	defer q.Close()

	q.Enqueue(encodePCM16(1))
	<-sink.started
	q.SetMuted(true)
	q.Enqueue(encodePCM16(2)) // dropped: enqueue is a no-op while muted

	// The in-flight payload completes despite the mute.
	waitFor(t, func() bool { return sink.playedCount() == 1 })
	assert.Equal(t, 0, q.Len())
}

func TestQueue_UnmuteResumesBuffered(t *testing.T) {
	sink := newRecordingSink()
	sink.delay = 30 * time.Millisecond
	q := NewQueue(sink)
	defer q.Close()

	q.Enqueue(encodePCM16(1))
	q.Enqueue(encodePCM16(2))
	<-sink.started
	q.SetMuted(true)

	// First entry finishes, second stays buffered while muted.
	waitFor(t, func() bool { return sink.playedCount() == 1 })
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 1, sink.playedCount())
	require.Equal(t, 1, q.Len())

	q.SetMuted(false)
	waitFor(t, func() bool { return sink.playedCount() == 2 })
}

func TestQueue_DecodeErrorAdvances(t *testing.T) {
	sink := newRecordingSink()
	q := NewQueue(sink)
	defer q.Close()

	q.Enqueue("%%% not base64 %%%")
	q.Enqueue(encodePCM16(42))

	waitFor(t, func() bool { return sink.playedCount() == 1 })
	assert.InDelta(t, 42.0/32768.0, sink.playedAt(0)[0], 1e-6)
}

func TestQueue_PlaybackErrorAdvances(t *testing.T) {
	sink := newRecordingSink()
	sink.failures = 1
	q := NewQueue(sink)
	defer q.Close()

	q.Enqueue(encodePCM16(1))
	q.Enqueue(encodePCM16(2))

	// The first payload fails, the second still plays.
	waitFor(t, func() bool { return sink.playedCount() == 1 })
	assert.InDelta(t, 2.0/32768.0, sink.playedAt(0)[0], 1e-6)
}

func TestQueue_Clear(t *testing.T) {
	sink := newRecordingSink()
	q := NewQueue(sink)
	defer q.Close()

	// Hold consumption with mute so entries stay buffered, then clear.
	q.SetMuted(true)
	q.mu.Lock()
	q.entries = []string{encodePCM16(1), encodePCM16(2)}
	q.mu.Unlock()
	require.Equal(t, 2, q.Len())

	q.Clear()
	assert.Equal(t, 0, q.Len())
}
