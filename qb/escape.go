package qb

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Fragment is a pre-built SQL snippet carrying deferred escapes. Its Str may
// contain "?:id" and "?:value" tokens; each token consumes one entry from
// Escapes (FIFO) and escapes it as an identifier or value respectively.
// Fragments can be embedded anywhere an identifier or value is accepted,
// allowing composable raw SQL to stay injection-safe.
type Fragment struct {
	Str     string
	Escapes []any
}

// Frag builds a Fragment from a template and its escape queue.
func Frag(str string, escapes ...any) *Fragment {
	return &Fragment{Str: str, Escapes: escapes}
}

// RawFunc is an escape hatch for precomputed SQL expressions such as NOW().
// The function is invoked with the active dialect and its return value is
// spliced into the statement verbatim.
type RawFunc func(d Dialect) string

// Assignment is an ordered column/value pair used by SET-style rendering.
type Assignment struct {
	Column string
	Value  any
}

// replacer for MySQL-style backslash escaping inside single quotes
var backslashReplacer = strings.NewReplacer(
	"\\", "\\\\",
	"\x00", "\\0",
	"\n", "\\n",
	"\r", "\\r",
	"\b", "\\b",
	"\t", "\\t",
	"\x1a", "\\Z",
	"'", "\\'",
)

func (d *sqlDialect) EscapeValue(v any, tz *time.Location) string {
	if v == nil {
		return "NULL"
	}
	switch val := v.(type) {
	case bool:
		if val {
			return d.boolTrue
		}
		return d.boolFalse
	case int:
		return strconv.FormatInt(int64(val), 10)
	case int8:
		return strconv.FormatInt(int64(val), 10)
	case int16:
		return strconv.FormatInt(int64(val), 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case uint8:
		return strconv.FormatUint(uint64(val), 10)
	case uint16:
		return strconv.FormatUint(uint64(val), 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return d.escapeFloat(float64(val))
	case float64:
		return d.escapeFloat(val)
	case string:
		return d.quoteString(val)
	case time.Time:
		return "'" + d.formatDate(val, tz) + "'"
	case []byte:
		return fmt.Sprintf(d.hexFormat, hex.EncodeToString(val))
	case uuid.UUID:
		return d.quoteString(val.String())
	case *Fragment:
		return d.expandFragment(val, tz)
	case Fragment:
		return d.expandFragment(&val, tz)
	case RawFunc:
		return val(d)
	case func(Dialect) string:
		return RawFunc(val)(d)
	}
	return d.escapeReflect(v, tz)
}

// escapeReflect handles slices, nil pointers and the untyped-object fallback.
func (d *sqlDialect) escapeReflect(v any, tz *time.Location) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return "NULL"
		}
		return d.EscapeValue(rv.Elem().Interface(), tz)
	case reflect.Slice, reflect.Array:
		return d.escapeList(rv, tz)
	}
	return d.escapeObject(v)
}

// escapeList renders a parenthesized, comma-joined literal list. A
// single-element list whose sole element is itself a list is flattened one
// level, matching the IN ((a,b)) call shape used for tuple-IN.
func (d *sqlDialect) escapeList(rv reflect.Value, tz *time.Location) string {
	if rv.Len() == 1 {
		first := reflect.ValueOf(rv.Index(0).Interface())
		if first.IsValid() && (first.Kind() == reflect.Slice || first.Kind() == reflect.Array) {
			if _, isBytes := first.Interface().([]byte); !isBytes {
				rv = first
			}
		}
	}
	parts := make([]string, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		parts[i] = d.EscapeValue(rv.Index(i).Interface(), tz)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// escapeObject is the best-effort fallback for unrecognized value shapes:
// JSON-serialize and quote, doubling embedded single quotes.
func (d *sqlDialect) escapeObject(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte(fmt.Sprint(v))
	}
	return "'" + strings.ReplaceAll(string(data), "'", "''") + "'"
}

// escapeFloat renders finite numbers bare; non-finite values become quoted
// strings so the literal stays syntactically valid.
func (d *sqlDialect) escapeFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "'NaN'"
	case math.IsInf(f, 1):
		return "'Infinity'"
	case math.IsInf(f, -1):
		return "'-Infinity'"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (d *sqlDialect) quoteString(s string) string {
	if d.backslashEscapes {
		return "'" + backslashReplacer.Replace(s) + "'"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// formatDate renders a time in the target timezone: local format
// "YYYY-MM-DD HH:MM:SS.mmm" for MySQL, ISO "YYYY-MM-DDTHH:MM:SS.mmmZ" for
// the remaining dialects.
func (d *sqlDialect) formatDate(t time.Time, tz *time.Location) string {
	if tz == nil {
		tz = time.Local
	}
	t = t.In(tz)
	if d.localDates {
		return t.Format("2006-01-02 15:04:05.000")
	}
	return t.Format("2006-01-02T15:04:05.000Z")
}

func (d *sqlDialect) EscapeSet(pairs []Assignment, tz *time.Location) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		if isRawFunc(p.Value) {
			continue
		}
		parts = append(parts, d.EscapeID(p.Column)+" = "+d.EscapeValue(p.Value, tz))
	}
	return strings.Join(parts, ", ")
}

func isRawFunc(v any) bool {
	switch v.(type) {
	case RawFunc, func(Dialect) string:
		return true
	}
	return false
}

// expandFragment walks the ?:id / ?:value tokens of a fragment left to
// right, consuming one escape per token.
func (d *sqlDialect) expandFragment(f *Fragment, tz *time.Location) string {
	var out strings.Builder
	queue := f.Escapes
	s := f.Str
	for len(s) > 0 {
		i := strings.Index(s, "?:")
		if i < 0 {
			out.WriteString(s)
			break
		}
		out.WriteString(s[:i])
		rest := s[i:]
		switch {
		case strings.HasPrefix(rest, "?:value"):
			if len(queue) > 0 {
				out.WriteString(d.EscapeValue(queue[0], tz))
				queue = queue[1:]
			}
			s = rest[len("?:value"):]
		case strings.HasPrefix(rest, "?:id"):
			if len(queue) > 0 {
				out.WriteString(d.escapeIDArg(queue[0]))
				queue = queue[1:]
			}
			s = rest[len("?:id"):]
		default:
			out.WriteString("?:")
			s = rest[2:]
		}
	}
	return out.String()
}

// escapeIDArg escapes a consumed ?:id entry, which may be a single part or a
// list of parts.
func (d *sqlDialect) escapeIDArg(v any) string {
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
