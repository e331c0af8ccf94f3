package debugstream

import (
	"fmt"
	"time"
)

// TimeFormatter renders an entry's raw time field. It receives the value
// exactly as it appears in the record, which may be a [time.Time], an
// RFC 3339 string, or absent (nil).
type TimeFormatter func(value any, entry Entry) string

// formatTime renders t in the fixed syslog-like form "Aug 15 14:23:05":
// three-letter month, day without zero padding, zero-padded 24-hour time.
func formatTime(t time.Time) string {
	return t.Format("Jan 2 15:04:05")
}

// timeToString renders a raw time field value. Absent values stay absent
// (ok false). Values that do not look like timestamps fall back to their
// plain string form.
func timeToString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case time.Time:
		return formatTime(t), true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return t, true
		}

		return formatTime(parsed), true
	}

	return fmt.Sprint(v), true
}
