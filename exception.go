package debugstream

import (
	"strings"
)

// exceptionOptions controls how an error field renders.
type exceptionOptions struct {
	palette     palette
	basepath    string
	replacement string
	maxLines    int
	useColor    bool
}

// formatException renders an error value (message plus optional stack
// frames) into a block of text. Stack-frame file paths have the configured
// base path stripped, frame lines are dimmed when coloring is on, and the
// block is capped at maxLines lines (0 means unbounded) with a truncation
// marker. Either capability may be absent: a bare message renders alone,
// and a missing message falls back to whatever the stack carries.
func formatException(v any, opts exceptionOptions) string {
	message, stack := exceptionParts(v)

	text := stack
	if text == "" {
		text = message
	}

	if text == "" {
		return ""
	}

	if opts.basepath != "" {
		base := opts.basepath
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}

		replacement := opts.replacement
		if replacement == "" {
			replacement = "./"
		}

		text = strings.ReplaceAll(text, base, replacement)
	}

	lines := strings.Split(text, "\n")
	if opts.maxLines > 0 && len(lines) > opts.maxLines {
		lines = append(lines[:opts.maxLines], "    [truncated]")
	}

	if opts.useColor {
		// The first line names the error; the frames below it are dimmed
		// so the message stays prominent.
		for i := 1; i < len(lines); i++ {
			lines[i] = opts.palette.apply(lines[i], []string{"dim"})
		}
	}

	return strings.Join(lines, "\n")
}

// exceptionParts extracts the message and stack capabilities from the
// shapes an err field can take: a serialized error object, a bare string,
// or a native Go error.
func exceptionParts(v any) (message, stack string) {
	switch e := v.(type) {
	case map[string]any:
		message, _ = asString(e["message"])
		stack, _ = asString(e["stack"])
	case string:
		message = e
	case error:
		message = e.Error()
	}

	return message, stack
}

// ErrorStringifier is the standard stringifier for the err field. It
// delegates to the exception formatter with the stream's resolved base
// path, color flag, and line cap.
func ErrorStringifier(value any, ctx Context) (Result, error) {
	s := ctx.Stream

	text := formatException(value, exceptionOptions{
		palette:     s.palette,
		basepath:    s.basepath,
		replacement: s.basepathReplacement,
		maxLines:    s.maxExceptionLines,
		useColor:    ctx.UseColor,
	})

	if text == "" {
		return Hidden(), nil
	}

	return Text(text), nil
}
