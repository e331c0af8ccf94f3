package debugstream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	debugstream "github.com/jwalton/bunyan-debug-stream"
)

func TestNewBroadcaster(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		opts    []debugstream.BroadcasterOption
		wantCap int
	}{
		"default buffer": {
			opts:    nil,
			wantCap: 64,
		},
		"custom buffer": {
			opts:    []debugstream.BroadcasterOption{debugstream.WithTapBuffer(8)},
			wantCap: 8,
		},
		"clamp to one": {
			opts:    []debugstream.BroadcasterOption{debugstream.WithTapBuffer(0)},
			wantCap: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := debugstream.NewBroadcaster(tc.opts...)

			tap := b.Subscribe()
			defer tap.Close()

			assert.Equal(t, tc.wantCap, cap(tap.C()))
		})
	}
}

func TestBroadcasterDeliversRenderedLines(t *testing.T) {
	t.Parallel()

	b := debugstream.NewBroadcaster()
	tap := b.Subscribe()

	stream := debugstream.New(
		debugstream.WithOutput(b),
		debugstream.WithoutColors(),
		debugstream.WithoutDate(),
	)

	require.NoError(t, stream.WriteEntry(baseEntry()))

	got := <-tap.C()
	assert.Equal(t, "proc[19] INFO:  Hello World\n", got)
}

func TestBroadcasterDropsOldest(t *testing.T) {
	t.Parallel()

	b := debugstream.NewBroadcaster(debugstream.WithTapBuffer(2))
	tap := b.Subscribe()

	for _, line := range []string{"one", "two", "three"} {
		_, err := b.Write([]byte(line))
		require.NoError(t, err)
	}

	assert.Equal(t, "two", <-tap.C())
	assert.Equal(t, "three", <-tap.C())
}

func TestBroadcasterClose(t *testing.T) {
	t.Parallel()

	b := debugstream.NewBroadcaster()
	tap := b.Subscribe()

	require.NoError(t, b.Close())
	require.NoError(t, b.Close(), "close is idempotent")

	_, open := <-tap.C()
	assert.False(t, open, "taps are closed with the broadcaster")

	// Writes after close are accepted and discarded.
	n, err := b.Write([]byte("late"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	lateTap := b.Subscribe()
	_, open = <-lateTap.C()
	assert.False(t, open, "subscribing after close yields a closed tap")
}

func TestTapCloseCompactsOnWrite(t *testing.T) {
	t.Parallel()

	b := debugstream.NewBroadcaster()

	closing := b.Subscribe()
	staying := b.Subscribe()

	closing.Close()

	_, err := b.Write([]byte("line"))
	require.NoError(t, err)

	_, open := <-closing.C()
	assert.False(t, open, "a closed tap's channel is closed on the next write")

	assert.Equal(t, "line", <-staying.C())
}
