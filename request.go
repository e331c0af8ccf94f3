package debugstream

import (
	"strings"
)

// defaultRequestMessage is the placeholder bunyan-middleware writes when a
// request record carries no explicit message. The comparison is an exact,
// case-sensitive match; other producers may use different placeholder text
// and will keep their message instead of having it replaced.
const defaultRequestMessage = "request finish"

// middlewareFields are the flattened request fields written by
// express-bunyan-logger style middleware. All of them are claimed as
// consumed whenever that shape is detected, so none leak into the metadata
// dump.
var middlewareFields = []string{
	"remote-address", "ip", "method", "url", "referer", "user-agent",
	"body", "short-body", "http-version", "response-hrtime", "status-code",
	"req-headers", "res-headers", "incoming", "req_id",
}

// RequestStringifier is the standard stringifier for the req field. It
// summarizes a request/response pair as
//
//	METHOD user@host/path STATUS TIMEms - LENGTH bytes
//
// omitting any component whose source value is absent. It recognizes both a
// raw req/res pair and the flattened field set written by
// express-bunyan-logger style middleware (detected by the combination of
// status-code, method, url, and res-headers).
//
// The summary replaces the log message when the record had no message, or
// had only the middleware's default placeholder; otherwise it becomes a
// side value.
func RequestStringifier(value any, ctx Context) (Result, error) {
	entry := ctx.Entry
	req := asMap(value)
	res := asMap(entry["res"])
	consumed := []string{"req", "res"}

	if isMiddlewareShape(entry) {
		consumed = append(consumed, middlewareFields...)
		req = overlay(req, map[string]any{
			"method":  entry["method"],
			"url":     entry["url"],
			"headers": entry["req-headers"],
		})
		res = overlay(res, map[string]any{
			"statusCode": entry["status-code"],
			"headers":    entry["res-headers"],
		})
	}

	var parts []string

	if method, ok := asString(req["method"]); ok && method != "" {
		parts = append(parts, method)
	}

	if target := requestTarget(req); target != "" {
		parts = append(parts, target)
	}

	if code, ok := asInt(res["statusCode"]); ok {
		parts = append(parts, statusString(code, ctx))
	}

	responseTime, timeField := responseTimeOf(entry, res)
	if responseTime != nil {
		if timeField != "" {
			consumed = append(consumed, timeField)
		}

		parts = append(parts, numberString(responseTime)+"ms")
	}

	if length := asMap(res["headers"])["content-length"]; length != nil {
		parts = append(parts, "-", numberString(length)+" bytes")
	}

	result := Text(strings.Join(parts, " ")).Consuming(consumed...)

	message := entry.Message()
	if message == "" || message == defaultRequestMessage {
		result = result.Replacing()
	}

	return result, nil
}

// isMiddlewareShape reports whether entry carries the flattened field
// combination that identifies express-bunyan-logger style records.
func isMiddlewareShape(entry Entry) bool {
	return entry["status-code"] != nil &&
		entry["method"] != nil &&
		entry["url"] != nil &&
		entry["res-headers"] != nil
}

// overlay copies base over defaults into a fresh map, leaving both inputs
// untouched. Base values win; defaults fill the gaps.
func overlay(base, defaults map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(defaults))

	for k, v := range defaults {
		if v != nil {
			merged[k] = v
		}
	}

	for k, v := range base {
		if v != nil {
			merged[k] = v
		}
	}

	return merged
}

// requestTarget composes the user@host/path component. The user comes from
// req.user, which may be a bare string or an object with a name or username
// field.
func requestTarget(req map[string]any) string {
	var user string

	switch u := req["user"].(type) {
	case string:
		user = u
	case map[string]any:
		if name, ok := asString(u["name"]); ok {
			user = name
		} else if name, ok := asString(u["username"]); ok {
			user = name
		}
	}

	if user != "" {
		user += "@"
	}

	host, _ := asString(asMap(req["headers"])["host"])
	url, _ := asString(req["url"])

	return user + host + url
}

// statusString renders the status code, colorized by class when coloring is
// enabled: under 200 neutral, under 400 success, otherwise failure, all
// bolded.
func statusString(code int64, ctx Context) string {
	status := numberString(code)
	if !ctx.UseColor {
		return status
	}

	switch {
	case code < 200:
	case code < 400:
		status = ctx.Stream.Colorize(status, []string{"green"})
	default:
		status = ctx.Stream.Colorize(status, []string{"red"})
	}

	return ctx.Stream.Colorize(status, []string{"bold"})
}

// responseTimeOf finds the response time, preferring the response object's
// own field, then the duration field, then response-time. timeField names
// the top-level entry field that supplied it, if any, so the caller can
// mark it consumed.
func responseTimeOf(entry Entry, res map[string]any) (value any, timeField string) {
	if v := res["responseTime"]; v != nil {
		return v, ""
	}

	if v := entry["duration"]; v != nil {
		return v, "duration"
	}

	if v := entry["response-time"]; v != nil {
		return v, "response-time"
	}

	return nil, ""
}
