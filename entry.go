package debugstream

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	json "github.com/goccy/go-json"
)

// Entry is one structured log record, keyed by field name. Bunyan records
// always carry level, msg, time, name, hostname, pid, and v; anything else
// is arbitrary metadata, including nested objects like req, res, err, and
// src.
type Entry map[string]any

// ErrMalformedEntry indicates input that could not be parsed as a JSON log
// record.
var ErrMalformedEntry = errors.New("malformed entry")

// boringFields lists the fields every Bunyan record carries, or that the
// stream renders through a dedicated path. They never appear in the generic
// metadata dump.
var boringFields = []string{
	"src", "msg", "name", "hostname", "pid", "level", "time", "v", "err",
}

// ParseEntry decodes a single JSON-encoded log record.
func ParseEntry(data []byte) (Entry, error) {
	var e Entry

	err := json.Unmarshal(data, &e)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}

	return e, nil
}

// Message returns the entry's msg field, or "" when absent.
func (e Entry) Message() string {
	s, _ := asString(e["msg"])
	return s
}

// Name returns the entry's logger name, or "" when absent.
func (e Entry) Name() string {
	s, _ := asString(e["name"])
	return s
}

// Level returns the entry's severity ordinal. ok is false when the level
// field is absent or not numeric.
func (e Entry) Level() (Level, bool) {
	n, ok := asInt(e["level"])
	return Level(n), ok
}

// pidString returns the pid field in display form.
func (e Entry) pidString() (string, bool) {
	v, present := e["pid"]
	if !present || v == nil {
		return "", false
	}

	return numberString(v), true
}

// asString coerces v to a string. Non-string values report ok false.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asMap coerces v to a field map, returning nil for anything else.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asInt coerces the numeric forms JSON decoding can produce into an int64.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	}

	return 0, false
}

// numberString renders a value in display form, without the trailing ".0"
// float64 would otherwise give integral JSON numbers.
func numberString(v any) string {
	switch n := v.(type) {
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1e15 {
			return strconv.FormatInt(int64(n), 10)
		}

		return strconv.FormatFloat(n, 'f', -1, 64)
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	}

	return fmt.Sprint(v)
}
