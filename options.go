package debugstream

import (
	"io"
)

// Option configures a [Stream]. Options are applied once at construction;
// the resolved configuration is immutable afterwards.
type Option func(*Stream)

// WithOutput sets the output sink. The default is standard output.
func WithOutput(w io.Writer) Option {
	return func(s *Stream) {
		s.out = w
	}
}

// WithColors overrides the default per-level color lists. Levels absent
// from the map keep their defaults.
func WithColors(colors map[Level][]string) Option {
	return func(s *Stream) {
		for lvl, names := range colors {
			s.levelColors[lvl] = append([]string(nil), names...)
		}
	}
}

// WithoutColors disables ANSI coloring entirely, regardless of the
// destination.
func WithoutColors() Option {
	return func(s *Stream) {
		s.colorsDisabled = true
	}
}

// WithForceColor enables coloring even when the destination is not a
// terminal.
func WithForceColor() Option {
	return func(s *Stream) {
		s.forceColor = true
	}
}

// WithBasepath sets the root path stripped from source and stack-frame
// annotations, and the text substituted for it ("./" when empty).
func WithBasepath(basepath, replacement string) Option {
	return func(s *Stream) {
		s.basepath = basepath
		if replacement != "" {
			s.basepathReplacement = replacement
		}
	}
}

// WithShowProcess includes the process name in the header.
func WithShowProcess() Option {
	return func(s *Stream) {
		s.showProcess = true
	}
}

// WithProcessName overrides the auto-detected process name.
func WithProcessName(name string) Option {
	return func(s *Stream) {
		s.processName = name
	}
}

// WithoutDate suppresses the date column.
func WithoutDate() Option {
	return func(s *Stream) {
		s.showDate = false
	}
}

// WithTimeFormatter replaces the default date rendering with fn, which
// receives the entry's raw time value and the full entry.
func WithTimeFormatter(fn TimeFormatter) Option {
	return func(s *Stream) {
		s.timeFormatter = fn
	}
}

// WithMaxExceptionLines caps rendered stack traces at n lines. Zero, the
// default, leaves them unbounded.
func WithMaxExceptionLines(n int) Option {
	return func(s *Stream) {
		s.maxExceptionLines = n
	}
}

// WithStringifier registers fn for the named field, replacing any built-in.
// A nil fn hides the field unconditionally.
func WithStringifier(field string, fn Stringifier) Option {
	return func(s *Stream) {
		s.stringifiers[field] = fn
	}
}

// WithPrefixer registers fn for the named field; its output joins the
// bracketed prefix segment before the message. A nil fn hides the field.
func WithPrefixer(field string, fn Stringifier) Option {
	return func(s *Stream) {
		s.prefixers[field] = fn
	}
}

// WithoutPrefixes suppresses the prefix segment. Prefixers still run, so
// their consumed fields stay out of the metadata dump.
func WithoutPrefixes() Option {
	return func(s *Stream) {
		s.showPrefixes = false
	}
}

// WithPrefixJoiner replaces the default "[p1,p2] " prefix joining with fn,
// whose return value is used verbatim.
func WithPrefixJoiner(fn func(prefixes []string) string) Option {
	return func(s *Stream) {
		s.prefixJoiner = fn
	}
}

// WithIndent sets the side-value indentation string. The default is two
// spaces.
func WithIndent(indent string) Option {
	return func(s *Stream) {
		s.indent = indent
	}
}

// WithoutLoggerName drops the logger name from the header.
func WithoutLoggerName() Option {
	return func(s *Stream) {
		s.showLoggerName = false
	}
}

// WithoutPid drops the [pid] annotation from the header.
func WithoutPid() Option {
	return func(s *Stream) {
		s.showPid = false
	}
}

// WithoutLevel drops the level tag.
func WithoutLevel() Option {
	return func(s *Stream) {
		s.showLevel = false
	}
}

// WithoutMetadata suppresses the generic dump of unconsumed fields.
func WithoutMetadata() Option {
	return func(s *Stream) {
		s.showMetadata = false
	}
}

// WithWidth sets the column width used to truncate metadata lines. The
// default is the terminal width of the destination, when it has one;
// otherwise metadata lines are never truncated.
func WithWidth(columns int) Option {
	return func(s *Stream) {
		s.width = columns
	}
}
