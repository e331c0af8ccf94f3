package debugstream_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	debugstream "github.com/jwalton/bunyan-debug-stream"
)

const testStack = "Error: Oops\n" +
	"    at foo (/src/app/lib/a.js:1:2)\n" +
	"    at bar (/src/app/lib/b.js:3:4)"

func TestErrorField(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err          any
		opts         []debugstream.Option
		contains     []string
		notContained []string
	}{
		"stack with shortened paths": {
			err: map[string]any{"message": "Oops", "stack": testStack},
			opts: []debugstream.Option{
				debugstream.WithBasepath("/src/app", ""),
			},
			contains:     []string{"  err: Error: Oops", "./lib/a.js:1:2", "./lib/b.js:3:4"},
			notContained: []string{"/src/app/"},
		},
		"stack capped by max lines": {
			err: map[string]any{"message": "Oops", "stack": testStack},
			opts: []debugstream.Option{
				debugstream.WithMaxExceptionLines(2),
			},
			contains:     []string{"Error: Oops", "a.js", "[truncated]"},
			notContained: []string{"b.js"},
		},
		"message without stack": {
			err:      map[string]any{"message": "just text"},
			contains: []string{"  err: just text"},
		},
		"bare string error": {
			err:      "plain failure",
			contains: []string{"  err: plain failure"},
		},
		"empty error object is hidden": {
			err:          map[string]any{},
			notContained: []string{"err:"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := append([]debugstream.Option{debugstream.WithoutDate()}, tc.opts...)
			stream, buf := newTestStream(t, opts...)

			entry := baseEntry()
			entry["err"] = tc.err

			require.NoError(t, stream.WriteEntry(entry))

			got := buf.String()
			assert.True(t, strings.HasPrefix(got, "proc[19] INFO:  Hello World"), got)

			for _, want := range tc.contains {
				assert.Contains(t, got, want)
			}

			for _, absent := range tc.notContained {
				assert.NotContains(t, got, absent)
			}
		})
	}
}

func TestErrorFieldDimsFrames(t *testing.T) {
	t.Parallel()

	var buf strings.Builder

	stream := debugstream.New(
		debugstream.WithOutput(&buf),
		debugstream.WithForceColor(),
		debugstream.WithoutDate(),
		debugstream.WithColors(map[debugstream.Level][]string{
			debugstream.LevelInfo: {},
		}),
	)

	entry := baseEntry()
	entry["err"] = map[string]any{"message": "Oops", "stack": testStack}

	require.NoError(t, stream.WriteEntry(entry))

	got := buf.String()
	assert.Contains(t, got, "\x1b[2m", "stack frames are dimmed when coloring is on")

	header := strings.SplitN(got, "\n", 2)[0]
	assert.NotContains(t, header, "\x1b[2m", "the message line itself is not dimmed")
}
