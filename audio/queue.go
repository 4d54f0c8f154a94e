package audio

import (
	"context"
	"sync"

	"github.com/podiumlabs/arena/logger"
	"github.com/podiumlabs/arena/metrics"
)

// Sink plays decoded audio samples. Play blocks for the duration of
// playback; the queue relies on that to keep payloads strictly sequential.
type Sink interface {
	Play(ctx context.Context, samples []float32, sampleRate int) error
}

// Queue buffers synthesized speech payloads and plays them strictly in
// arrival order, one at a time. A dedicated consumer goroutine is woken by
// channel on enqueue and after each playback completion.
//
// Enqueue never blocks the caller and is a no-op while muted. Muting does
// not interrupt the payload already playing and does not drop buffered
// entries; only Clear (session restart) empties the queue.
type Queue struct {
	sink Sink

	mu      sync.Mutex
	entries []string
	muted   bool

	wake   chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
}

// NewQueue creates a playback queue and starts its consumer.
func NewQueue(sink Sink) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		sink:   sink,
		wake:   make(chan struct{}, 1),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go q.consume(ctx)
	return q
}

// Enqueue appends a base64 LINEAR16 payload to the tail. It never blocks
// and silently drops the payload while muted.
func (q *Queue) Enqueue(payload string) {
	if payload == "" {
		return
	}

	q.mu.Lock()
	if q.muted {
		q.mu.Unlock()
		metrics.AudioChunk("muted")
		return
	}
	q.entries = append(q.entries, payload)
	q.mu.Unlock()

	metrics.AudioChunk("enqueued")
	q.notify()
}

// SetMuted toggles consumption. Unmuting resumes playback of whatever is
// still buffered.
func (q *Queue) SetMuted(muted bool) {
	q.mu.Lock()
	q.muted = muted
	q.mu.Unlock()
	if !muted {
		q.notify()
	}
}

// Muted reports the current mute state.
func (q *Queue) Muted() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.muted
}

// Len reports the number of buffered payloads.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Clear drops all buffered payloads. Called on session restart.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.entries = nil
	q.mu.Unlock()
}

// Close stops the consumer. Buffered payloads are discarded.
func (q *Queue) Close() {
	q.cancel()
	<-q.done
}

func (q *Queue) notify() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// next pops the head entry unless the queue is muted or empty.
func (q *Queue) next() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.muted || len(q.entries) == 0 {
		return "", false
	}
	head := q.entries[0]
	q.entries = q.entries[1:]
	return head, true
}

func (q *Queue) consume(ctx context.Context) {
	defer close(q.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-q.wake:
		}

		for {
			if ctx.Err() != nil {
				return
			}
			payload, ok := q.next()
			if !ok {
				break
			}

			samples, err := DecodePCM16(payload)
			if err != nil {
				// Skip the bad payload; the queue must not stall.
				logger.Warn("audio decode failed", "error", err)
				metrics.AudioChunk("failed")
				continue
			}

			if err := q.sink.Play(ctx, samples, SampleRate24kHz); err != nil {
				logger.Warn("audio playback failed", "error", err)
				metrics.AudioChunk("failed")
				continue
			}
			metrics.AudioChunk("played")
		}
	}
}
