package debugstream

import (
	"errors"
	"fmt"
	"strings"
)

// Level is a Bunyan severity ordinal.
type Level int

// Bunyan severity ordinals, as emitted by the upstream logging framework.
const (
	LevelTrace Level = 10
	LevelDebug Level = 20
	LevelInfo  Level = 30
	LevelWarn  Level = 40
	LevelError Level = 50
	LevelFatal Level = 60
)

// ErrUnknownLevel indicates an unrecognized log level string.
var ErrUnknownLevel = errors.New("unknown log level")

// levelInfo describes how a severity renders: the display prefix and the
// default color names applied to the whole message.
type levelInfo struct {
	prefix string
	colors []string
}

// blankPrefix is rendered for severities outside the table. It matches the
// width of the known prefixes so columns stay aligned.
const blankPrefix = "      "

// levels is the static severity table, built once and never mutated. The
// INFO and WARN prefixes carry a trailing space so every prefix is six
// characters wide.
var levels = map[Level]levelInfo{
	LevelTrace: {prefix: "TRACE:", colors: []string{"grey"}},
	LevelDebug: {prefix: "DEBUG:", colors: []string{"cyan"}},
	LevelInfo:  {prefix: "INFO: ", colors: []string{"green"}},
	LevelWarn:  {prefix: "WARN: ", colors: []string{"yellow"}},
	LevelError: {prefix: "ERROR:", colors: []string{"red"}},
	LevelFatal: {prefix: "FATAL:", colors: []string{"magenta"}},
}

// String returns the level's display prefix without its padding or colon.
func (l Level) String() string {
	info, ok := levels[l]
	if !ok {
		return "UNKNOWN"
	}

	return strings.TrimSuffix(strings.TrimSpace(info.prefix), ":")
}

// prefix returns the level's padded display tag, or a blank tag for
// severities outside the table.
func (l Level) prefix() string {
	info, ok := levels[l]
	if !ok {
		return blankPrefix
	}

	return info.prefix
}

// ParseLevel parses a log level name and returns the corresponding [Level].
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
}

// GetAllLevelStrings returns the canonical level names in severity order.
func GetAllLevelStrings() []string {
	return []string{"trace", "debug", "info", "warn", "error", "fatal"}
}

// defaultLevelColors returns a fresh copy of the per-level default color
// lists, safe for a [Stream] to overlay with caller overrides.
func defaultLevelColors() map[Level][]string {
	colors := make(map[Level][]string, len(levels))
	for lvl, info := range levels {
		colors[lvl] = append([]string(nil), info.colors...)
	}

	return colors
}
