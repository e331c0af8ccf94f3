package debugstream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	debugstream "github.com/jwalton/bunyan-debug-stream"
)

func TestParseEntry(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input       string
		expectError bool
		checkFunc   func(*testing.T, debugstream.Entry)
	}{
		"valid record": {
			input: `{"level":40,"msg":"careful","name":"app","pid":7}`,
			checkFunc: func(t *testing.T, e debugstream.Entry) {
				t.Helper()

				lvl, ok := e.Level()
				require.True(t, ok)
				assert.Equal(t, debugstream.LevelWarn, lvl)
				assert.Equal(t, "careful", e.Message())
				assert.Equal(t, "app", e.Name())
			},
		},
		"missing fields": {
			input: `{}`,
			checkFunc: func(t *testing.T, e debugstream.Entry) {
				t.Helper()

				_, ok := e.Level()
				assert.False(t, ok)
				assert.Empty(t, e.Message())
				assert.Empty(t, e.Name())
			},
		},
		"not json": {
			input:       "plain text line",
			expectError: true,
		},
		"json but not an object": {
			input:       `[1,2,3]`,
			expectError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			entry, err := debugstream.ParseEntry([]byte(tc.input))
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, debugstream.ErrMalformedEntry)

				return
			}

			require.NoError(t, err)
			tc.checkFunc(t, entry)
		})
	}
}
