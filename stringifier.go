package debugstream

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Context carries per-render state into stringifiers and prefixers.
type Context struct {
	// Entry is the full record being rendered, for transforms that read
	// sibling fields.
	Entry Entry

	// UseColor reports whether ANSI coloring is enabled for this render.
	UseColor bool

	// Stream is the rendering stream. Cross-field recipes use it to read
	// resolved options, such as the base path shared with stack-frame
	// shortening, or to colorize partial output via [Stream.Colorize].
	Stream *Stream
}

// A Stringifier converts a field's raw value into displayable text. The
// same contract serves prefixers: only the destination of the output
// differs (side value versus prefix segment).
//
// Returning [Hidden] suppresses the field entirely while still excluding it
// from the metadata dump. Returning an error never fails the render; the
// stream substitutes a diagnostic side value instead.
type Stringifier func(value any, ctx Context) (Result, error)

// Result is a stringifier outcome: hidden, a plain text value, or text with
// structure (extra consumed fields, message replacement). Construct results
// with [Hidden] or [Text] and refine them with [Result.Consuming] and
// [Result.Replacing].
type Result struct {
	text           string
	consumed       []string
	hasText        bool
	replaceMessage bool
}

// Hidden suppresses the field: no side value, no message change. The field
// is still marked consumed and never reappears in the metadata dump.
func Hidden() Result {
	return Result{}
}

// Text returns a result whose text becomes the field's side value, or its
// prefix segment when used from a prefixer.
func Text(s string) Result {
	return Result{text: s, hasText: true}
}

// Consuming marks additional entry fields as handled by this transform,
// excluding them from the metadata dump even when they were not rendered
// directly.
func (r Result) Consuming(fields ...string) Result {
	r.consumed = append(r.consumed, fields...)
	return r
}

// Replacing promotes the result's text to the log message itself instead of
// emitting it as a side value.
func (r Result) Replacing() Result {
	r.replaceMessage = true
	return r
}

// runStringifier applies one transform to the named field of entry. The
// field is always marked consumed, whatever the outcome. The returned value
// is nil when the field produced no side output; message is the (possibly
// replaced) working message.
//
// A transform failure, whether a returned error or a panic, does not
// propagate: the message reverts to its input value and the failure
// description becomes the field's side value.
func (s *Stream) runStringifier(entry Entry, name string, fn Stringifier, consumed map[string]struct{}, message string) (string, *string) {
	consumed[name] = struct{}{}

	if fn == nil {
		return message, nil
	}

	ctx := Context{Entry: entry, UseColor: s.useColor, Stream: s}

	res, err := invokeTransform(fn, entry[name], ctx)
	if err != nil {
		diag := s.indentValue("Error running stringifier:\n" + err.Error())
		return message, &diag
	}

	for _, field := range res.consumed {
		consumed[field] = struct{}{}
	}

	if !res.hasText {
		return message, nil
	}

	if res.replaceMessage {
		return res.text, nil
	}

	value := s.indentValue(res.text)

	return message, &value
}

// invokeTransform runs fn, converting a panic into an error carrying the
// recovered value and a stack trace.
func invokeTransform(fn Stringifier, value any, ctx Context) (res Result, err error) {
	defer func() {
		r := recover()
		if r != nil {
			err = fmt.Errorf("%v\n%s", r, debug.Stack())
		}
	}()

	return fn(value, ctx)
}

// indentValue reindents embedded line breaks so multi-line side values
// render as a visually nested block.
func (s *Stream) indentValue(value string) string {
	return strings.ReplaceAll(value, "\n", "\n"+s.indent)
}
