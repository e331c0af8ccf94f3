// Package debugstream renders Bunyan-style structured log records as
// human-readable text for terminals and files, with optional ANSI coloring.
//
// A [Stream] consumes one record at a time, either as a native [Entry] via
// [Stream.WriteEntry] or as a JSON-encoded line via its [io.Writer]
// implementation, and writes a rendered line (plus indented detail lines)
// to its output sink:
//
//	stream := debugstream.New(
//	    debugstream.WithBasepath("/src/myapp", ""),
//	    debugstream.WithForceColor(),
//	)
//	stream.Write(jsonLine)
//
// # Rendering Pipeline
//
// Each record flows through a single synchronous pass:
//
//  1. Stringifiers run for the standard req and err fields, then for any
//     caller-registered fields. Each [Stringifier] turns a raw field value
//     into displayable text, which becomes an indented side value or
//     replaces the message outright.
//  2. Prefixers run with the same contract, but their output is joined into
//     a bracketed segment before the message, "[p1,p2] " by default.
//  3. Every field not consumed by a transform (and not one of the standard
//     Bunyan fields) is serialized as a metadata line, truncated to the
//     terminal width.
//  4. The header line is assembled: date, process/logger/pid, level tag,
//     source annotation, prefixes, and the colorized message.
//
// Transforms never fail a render: an error or panic inside one reverts the
// message and substitutes a diagnostic side value, so one bad field never
// suppresses a log line.
//
// # Configuration
//
// Behavior is resolved once at construction from functional options; see
// [Option]. For CLI applications, [Config] exposes the same settings as
// flag values with [github.com/spf13/pflag] registration and shell
// completion via [github.com/spf13/cobra], plus YAML merging for config
// files.
//
// A [Broadcaster] fans rendered lines out to multiple subscribers:
//
//	b := debugstream.NewBroadcaster()
//	stream := debugstream.New(debugstream.WithOutput(io.MultiWriter(os.Stdout, b)))
//
//	tap := b.Subscribe()
//	go func() {
//	    for line := range tap.C() {
//	        // Deliver line to a TUI or a tee.
//	    }
//	}()
package debugstream
