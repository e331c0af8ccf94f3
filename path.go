package debugstream

import (
	"path"
	"strings"
)

// ShortenPath compresses an absolute file path into a terse form for source
// annotations. When basepath is non-empty it is stripped from filename and
// substituted with replacement ("./" when empty). Every directory up to the
// shortening boundary collapses to its first character, keeping only the
// immediate file or module identity legible:
//
//	ShortenPath("/src/app/lib/db/query.js", "/src/app", "./")  // "./l/d/query"
//	ShortenPath("/src/app/lib/db/index.js", "/src/app", "./")  // "./l/db/"
//
// A file named "index" stands for its parent directory, so the parent is
// left intact and the blanked file name keeps a trailing separator.
func ShortenPath(filename, basepath, replacement string) string {
	if replacement == "" {
		replacement = "./"
	}

	if basepath != "" {
		if !strings.HasSuffix(basepath, "/") {
			basepath += "/"
		}

		filename = strings.Replace(filename, basepath, replacement, 1)
	}

	parts := strings.Split(filename, "/")
	last := len(parts) - 1

	file := parts[last]
	file = strings.TrimSuffix(file, path.Ext(file))

	boundary := last - 1
	if file == "index" {
		parts[last] = ""
		boundary = last - 2
	} else {
		parts[last] = file
	}

	for i := 0; i <= boundary && i < len(parts); i++ {
		if len(parts[i]) > 0 {
			parts[i] = parts[i][:1]
		}
	}

	return strings.Join(parts, "/")
}
