package debugstream

import (
	"sync"
	"sync/atomic"
)

const defaultTapBuffer = 64

// Broadcaster is an [io.Writer] sink that fans each rendered line out to
// subscribers. Use it as a [Stream]'s output, alone or behind an
// [io.MultiWriter], to mirror rendered logs into a TUI or a tee while the
// primary destination keeps receiving them.
//
// Each Write delivers its text to every active [Tap] over a buffered
// channel with drop-oldest semantics, so a slow subscriber never blocks the
// stream. Safe for concurrent use.
//
// Create instances with [NewBroadcaster].
type Broadcaster struct {
	taps    []*Tap
	bufSize int
	mu      sync.Mutex
	closed  bool
}

// NewBroadcaster creates a [Broadcaster] with the given options. The
// default per-tap buffer is 64 lines.
func NewBroadcaster(opts ...BroadcasterOption) *Broadcaster {
	b := &Broadcaster{
		bufSize: defaultTapBuffer,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// BroadcasterOption configures a [Broadcaster].
type BroadcasterOption func(*Broadcaster)

// WithTapBuffer sets the channel buffer size for new taps. Values less than
// 1 are clamped to 1.
func WithTapBuffer(n int) BroadcasterOption {
	return func(b *Broadcaster) {
		if n < 1 {
			n = 1
		}

		b.bufSize = n
	}
}

// Write delivers the rendered text to every active tap, dropping a tap's
// oldest line when its buffer is full. Closed taps are compacted out of the
// tap list. Write always returns len(p), nil, honoring the stream's
// contract that a sink write never fails the current entry for later ones.
func (b *Broadcaster) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return len(p), nil
	}

	line := string(p)

	alive := b.taps[:0]

	for _, tap := range b.taps {
		if tap.closed.Load() {
			close(tap.ch)
			continue
		}

		select {
		case tap.ch <- line:
		default:
			<-tap.ch

			tap.ch <- line
		}

		alive = append(alive, tap)
	}

	for i := len(alive); i < len(b.taps); i++ {
		b.taps[i] = nil
	}

	b.taps = alive

	return len(p), nil
}

// Subscribe creates and registers a new [Tap]. If the Broadcaster is
// already closed the returned tap's channel is immediately closed.
func (b *Broadcaster) Subscribe() *Tap {
	b.mu.Lock()
	defer b.mu.Unlock()

	tap := &Tap{
		ch: make(chan string, b.bufSize),
	}

	if b.closed {
		close(tap.ch)
		return tap
	}

	b.taps = append(b.taps, tap)

	return tap
}

// Close marks the Broadcaster as closed, closes all tap channels, and
// releases the tap list. Idempotent.
func (b *Broadcaster) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.closed = true

	for _, tap := range b.taps {
		close(tap.ch)
	}

	b.taps = nil

	return nil
}

// Tap receives rendered lines from a [Broadcaster].
type Tap struct {
	ch     chan string
	closed atomic.Bool
}

// C returns the read-only channel that delivers rendered lines.
func (t *Tap) C() <-chan string {
	return t.ch
}

// Close marks the tap as closed. The Broadcaster closes the underlying
// channel on its next Write or Close call. Idempotent.
func (t *Tap) Close() {
	t.closed.Store(true)
}
