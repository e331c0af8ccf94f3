package debugstream

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"golang.org/x/term"
)

// Stream renders Bunyan log records as human-readable lines and writes them
// to its output sink, one record per call.
//
// It implements [io.Writer] for JSON-encoded records; native [Entry] values
// go through [Stream.WriteEntry]. Each record is rendered to completion
// synchronously, and nothing is retained across records except the resolved
// configuration, so a Stream is safe to share only if its sink is.
//
// Create instances with [New].
type Stream struct {
	out     io.Writer
	palette palette

	levelColors         map[Level][]string
	stringifiers        map[string]Stringifier
	prefixers           map[string]Stringifier
	timeFormatter       TimeFormatter
	prefixJoiner        func([]string) string
	processName         string
	basepath            string
	basepathReplacement string
	indent              string
	maxExceptionLines   int
	width               int

	colorsDisabled bool
	forceColor     bool
	useColor       bool
	showProcess    bool
	showDate       bool
	showPrefixes   bool
	showLoggerName bool
	showPid        bool
	showLevel      bool
	showMetadata   bool
}

// New creates a [Stream] with the given options. Coloring is enabled when
// the destination is a terminal, or unconditionally with [WithForceColor],
// unless [WithoutColors] disables it.
func New(opts ...Option) *Stream {
	s := &Stream{
		out:                 os.Stdout,
		levelColors:         defaultLevelColors(),
		stringifiers:        map[string]Stringifier{"req": RequestStringifier, "err": ErrorStringifier},
		prefixers:           map[string]Stringifier{},
		processName:         filepath.Base(os.Args[0]),
		basepathReplacement: "./",
		indent:              "  ",
		showDate:            true,
		showPrefixes:        true,
		showLoggerName:      true,
		showPid:             true,
		showLevel:           true,
		showMetadata:        true,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.useColor = !s.colorsDisabled && (s.forceColor || isTerminal(s.out))
	s.palette = newPalette(s.out)

	if s.width == 0 {
		s.width = terminalWidth(s.out)
	}

	return s
}

// Write accepts one JSON-encoded record per call, renders it, and writes
// the rendered text plus a trailing newline to the sink. Malformed input
// returns [ErrMalformedEntry]; a bad record never affects later ones.
func (s *Stream) Write(p []byte) (int, error) {
	entry, err := ParseEntry(bytes.TrimSpace(p))
	if err != nil {
		return 0, err
	}

	err = s.WriteEntry(entry)
	if err != nil {
		return 0, err
	}

	return len(p), nil
}

// WriteEntry renders one record and writes it, followed by a newline, to
// the sink.
func (s *Stream) WriteEntry(entry Entry) error {
	_, err := io.WriteString(s.out, s.entryToString(entry)+"\n")
	if err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}

	return nil
}

// Colorize applies the named colors to message when coloring is enabled,
// and returns message unchanged otherwise.
func (s *Stream) Colorize(message string, colorNames []string) string {
	if !s.useColor {
		return message
	}

	return s.palette.apply(message, colorNames)
}

// Basepath returns the resolved base path and its replacement, for
// stringifiers that shorten paths of their own.
func (s *Stream) Basepath() (basepath, replacement string) {
	return s.basepath, s.basepathReplacement
}

// Indent returns the resolved side-value indentation string.
func (s *Stream) Indent() string {
	return s.indent
}

// MaxExceptionLines returns the resolved stack-trace line cap, zero meaning
// unbounded.
func (s *Stream) MaxExceptionLines() int {
	return s.maxExceptionLines
}

// entryToString composes the rendered text for one record, without the
// trailing newline. It is a single forward pass: stringifiers, prefixers,
// metadata dump, then line assembly.
func (s *Stream) entryToString(entry Entry) string {
	lvl, _ := entry.Level()

	colors, ok := s.levelColors[lvl]
	if !ok {
		colors = s.levelColors[LevelInfo]
	}

	src := s.srcToString(entry["src"])
	if src != "" {
		src += ": "
	}

	consumed := make(map[string]struct{}, len(boringFields)+len(entry))
	for _, field := range boringFields {
		consumed[field] = struct{}{}
	}

	message := entry.Message()

	var values []string

	for _, name := range orderedFields(s.stringifiers) {
		if entry[name] == nil {
			// Unset fields never leak into the metadata dump.
			consumed[name] = struct{}{}
			continue
		}

		var value *string

		message, value = s.runStringifier(entry, name, s.stringifiers[name], consumed, message)
		if value != nil {
			values = append(values, s.indent+name+": "+*value)
		}
	}

	var prefixes []string

	for _, name := range orderedFields(s.prefixers) {
		if entry[name] == nil {
			consumed[name] = struct{}{}
			continue
		}

		var value *string

		message, value = s.runStringifier(entry, name, s.prefixers[name], consumed, message)
		if value != nil {
			prefixes = append(prefixes, *value)
		}
	}

	if s.showMetadata {
		values = append(values, s.metadataLines(entry, consumed)...)
	}

	line := s.dateString(entry) +
		s.headerString(entry) +
		s.levelTag(lvl) +
		src +
		s.prefixString(prefixes) +
		s.Colorize(message, colors)

	for _, value := range values {
		line += "\n" + s.Colorize(value, colors)
	}

	return line
}

// metadataLines serializes every entry field not yet consumed, truncating
// lines that would meet or exceed the configured column width. Keys are
// sorted so output is deterministic.
func (s *Stream) metadataLines(entry Entry, consumed map[string]struct{}) []string {
	keys := make([]string, 0, len(entry))

	for key := range entry {
		if _, ok := consumed[key]; !ok {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)

	lines := make([]string, 0, len(keys))

	for _, key := range keys {
		line := s.indent + key + ": " + metadataValue(entry[key])
		if s.width > 0 && len(line) >= s.width && s.width > 4 {
			line = line[:s.width-4] + "..."
		}

		lines = append(lines, line)
	}

	return lines
}

// metadataValue serializes a metadata value for the generic dump. A value
// that fails serialization becomes a bracketed diagnostic rather than
// failing the render.
func metadataValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "<unserializable: " + err.Error() + ">"
	}

	return string(data)
}

// dateString resolves the date column: the custom formatter when one is
// configured, the default formatter otherwise, or nothing when dates are
// disabled. Non-empty forms carry a trailing space.
func (s *Stream) dateString(entry Entry) string {
	var date string

	switch {
	case s.timeFormatter != nil:
		date = s.timeFormatter(entry["time"], entry)
	case s.showDate:
		date, _ = timeToString(entry["time"])
	}

	if date != "" {
		date += " "
	}

	return date
}

// headerString composes the process/logger/pid header, followed by a
// trailing space when any part is present.
func (s *Stream) headerString(entry Entry) string {
	var header string

	if s.showProcess {
		header = s.processName
	}

	if s.showLoggerName {
		if name := entry.Name(); name != "" {
			if header != "" {
				header += " "
			}

			header += name
		}
	}

	if s.showPid {
		if pid, ok := entry.pidString(); ok {
			header += "[" + pid + "]"
		}
	}

	if header != "" {
		header += " "
	}

	return header
}

// levelTag renders the padded level prefix plus its separator space, or
// nothing when level display is disabled.
func (s *Stream) levelTag(lvl Level) string {
	if !s.showLevel {
		return ""
	}

	return lvl.prefix() + " "
}

// prefixString joins collected prefixes: "[p1,p2] " by default, the custom
// joiner's verbatim output when configured, or nothing when prefix display
// is disabled.
func (s *Stream) prefixString(prefixes []string) string {
	if !s.showPrefixes || len(prefixes) == 0 {
		return ""
	}

	if s.prefixJoiner != nil {
		return s.prefixJoiner(prefixes)
	}

	return "[" + strings.Join(prefixes, ",") + "] "
}

// srcToString renders the source-location annotation: shortened file plus
// line, the function name, or both.
func (s *Stream) srcToString(v any) string {
	src := asMap(v)
	if src == nil {
		return ""
	}

	var out string

	if file, ok := asString(src["file"]); ok && file != "" {
		out = ShortenPath(file, s.basepath, s.basepathReplacement)

		if line, ok := asInt(src["line"]); ok {
			out += ":" + strconv.FormatInt(line, 10)
		}
	}

	if fn, ok := asString(src["func"]); ok && fn != "" {
		if out != "" {
			out += " (" + fn + ")"
		} else {
			out = fn
		}
	}

	return out
}

// orderedFields returns the field names of a transform map in render order:
// the standard req and err transforms first, then everything else sorted,
// so output never depends on map iteration order.
func orderedFields(transforms map[string]Stringifier) []string {
	order := make([]string, 0, len(transforms))

	for _, std := range []string{"req", "err"} {
		if _, ok := transforms[std]; ok {
			order = append(order, std)
		}
	}

	var rest []string

	for name := range transforms {
		if name != "req" && name != "err" {
			rest = append(rest, name)
		}
	}

	sort.Strings(rest)

	return append(order, rest...)
}

// isTerminal reports whether w is backed by a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns w's column width, or zero when w has none.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}

	cols, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}

	return cols
}
