package debugstream_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	debugstream "github.com/jwalton/bunyan-debug-stream"
)

func TestShortenPath(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		filename    string
		basepath    string
		replacement string
		expected    string
	}{
		"strips basepath and collapses directories": {
			filename: "/src/app/lib/db/query.js",
			basepath: "/src/app",
			expected: "./l/d/query",
		},
		"basepath with trailing separator": {
			filename: "/src/app/lib/db/query.js",
			basepath: "/src/app/",
			expected: "./l/d/query",
		},
		"custom replacement": {
			filename:    "/src/app/lib/query.js",
			basepath:    "/src/app",
			replacement: "app/",
			expected:    "a/l/query",
		},
		"index file stands for its directory": {
			filename: "/src/app/lib/db/index.js",
			basepath: "/src/app",
			expected: "./l/db/",
		},
		"no basepath": {
			filename: "lib/db/query.js",
			expected: "l/d/query",
		},
		"single segment": {
			filename: "query.js",
			expected: "query",
		},
		"extension stripped": {
			filename: "a/b/handler.test.ts",
			expected: "a/b/handler.test",
		},
		"basepath not present leaves path alone": {
			filename: "/other/place/file.js",
			basepath: "/src/app",
			expected: "/o/p/file",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := debugstream.ShortenPath(tc.filename, tc.basepath, tc.replacement)
			assert.Equal(t, tc.expected, got)
		})
	}
}
