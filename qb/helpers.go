package qb

import (
	"fmt"
	"strings"
	"time"
)

// EscapeQuery substitutes the placeholders of a raw query template: each
// "??" consumes one argument as an identifier (scalar or list of parts),
// each "?" consumes one as an escaped value, left to right. Leftover
// placeholders are emitted unchanged once the argument list is exhausted.
func EscapeQuery(d Dialect, query string, args []any, tz *time.Location) string {
	var out strings.Builder
	for i := 0; i < len(query); i++ {
		ch := query[i]
		if ch != '?' || len(args) == 0 {
			out.WriteByte(ch)
			continue
		}
		if i+1 < len(query) && query[i+1] == '?' {
			out.WriteString(escapeIDArgOf(d, args[0]))
			args = args[1:]
			i++
			continue
		}
		out.WriteString(d.EscapeValue(args[0], tz))
		args = args[1:]
	}
	return out.String()
}

func escapeIDArgOf(d Dialect, v any) string {
	switch id := v.(type) {
	case []string:
		parts := make([]any, len(id))
		for i, p := range id {
			parts[i] = p
		}
		return d.EscapeID(parts...)
	case []any:
		return d.EscapeID(id...)
	}
	return d.EscapeID(v)
}

// ParseOffset parses a timezone selector into a location: "local" (or "")
// maps to the system zone, "Z" to UTC, and offsets like "+02:00" or "-0530"
// to a fixed zone.
func ParseOffset(tz string) (*time.Location, error) {
	switch tz {
	case "", "local":
		return time.Local, nil
	case "Z", "UTC":
		return time.UTC, nil
	}
	sign := 1
	s := tz
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	default:
		return nil, ValidationError(fmt.Sprintf("invalid timezone '%s'", tz))
	}
	s = strings.ReplaceAll(s, ":", "")
	if len(s) != 4 {
		return nil, ValidationError(fmt.Sprintf("invalid timezone '%s'", tz))
	}
	var hh, mm int
	if _, err := fmt.Sscanf(s, "%02d%02d", &hh, &mm); err != nil {
		return nil, ValidationError(fmt.Sprintf("invalid timezone '%s'", tz))
	}
	offset := sign * (hh*3600 + mm*60)
	return time.FixedZone(tz, offset), nil
}
