package debugstream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	debugstream "github.com/jwalton/bunyan-debug-stream"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expected    debugstream.Level
		expectError bool
	}{
		"trace": {input: "trace", expected: debugstream.LevelTrace},
		"debug": {input: "debug", expected: debugstream.LevelDebug},
		"info":  {input: "info", expected: debugstream.LevelInfo},
		"warn":  {input: "warn", expected: debugstream.LevelWarn},
		"warning alias": {
			input:    "warning",
			expected: debugstream.LevelWarn,
		},
		"error": {input: "error", expected: debugstream.LevelError},
		"fatal": {input: "fatal", expected: debugstream.LevelFatal},
		"case insensitive": {
			input:    "INFO",
			expected: debugstream.LevelInfo,
		},
		"unknown": {
			input:       "verbose",
			expectError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			lvl, err := debugstream.ParseLevel(tc.input)
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, debugstream.ErrUnknownLevel)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, lvl)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "INFO", debugstream.LevelInfo.String())
	assert.Equal(t, "FATAL", debugstream.LevelFatal.String())
	assert.Equal(t, "UNKNOWN", debugstream.Level(35).String())
}
