package qb

import (
	"fmt"
	"strings"
	"time"
)

// Dialect holds the per-database escaping and formatting rules used by the
// statement builders. Dialect values are stateless and safe to share across
// any number of builders.
type Dialect interface {
	// Name returns the dialect key ("mysql", "postgresql", "sqlite", "mssql")
	Name() string

	// EscapeID joins one or more identifier parts with '.', quoting each part
	// in the dialect's quote character. Embedded quote characters are escaped
	// by doubling. Parts may be strings or *Fragment values.
	EscapeID(parts ...any) string

	// EscapeValue renders a Go value as a complete SQL literal. The timezone
	// is applied when rendering time.Time values; nil means local time.
	EscapeValue(v any, tz *time.Location) string

	// EscapeSet renders ordered column/value pairs as "col = val, ..." for
	// inline SET-style fragments. Pairs whose value is a RawFunc are skipped.
	EscapeSet(pairs []Assignment, tz *time.Location) string

	// LimitAsTop reports whether row limits render as "SELECT TOP n" instead
	// of a trailing LIMIT clause (MSSQL).
	LimitAsTop() bool

	// DefaultValuesStmt returns the statement fragment used by INSERT when no
	// columns are set.
	DefaultValuesStmt() string

	// DataType maps a logical type name to the dialect's DDL fragment. The
	// second return value is false when the dialect has no mapping and the
	// caller should use the name unchanged.
	DataType(name string) (string, bool)
}

// sqlDialect is the shared Dialect implementation; the four dialects are
// instances with different quoting and literal rules.
type sqlDialect struct {
	name             string
	quoteOpen        string
	quoteClose       string
	backslashEscapes bool   // MySQL-style string escapes vs quote doubling
	hexFormat        string // binary literal format, applied to lowercase hex
	boolTrue         string
	boolFalse        string
	localDates       bool // "YYYY-MM-DD HH:MM:SS.mmm" instead of ISO-with-Z
	limitAsTop       bool
	defaultValues    string
	types            map[string]string
}

func (d *sqlDialect) Name() string {
	return d.name
}

func (d *sqlDialect) EscapeID(parts ...any) string {
	escaped := make([]string, 0, len(parts))
	for _, part := range parts {
		switch p := part.(type) {
		case string:
			escaped = append(escaped, d.quoteID(p))
		case *Fragment:
			escaped = append(escaped, d.expandFragment(p, nil))
		default:
			escaped = append(escaped, d.quoteID(fmt.Sprint(p)))
		}
	}
	return strings.Join(escaped, ".")
}

// quoteID wraps a single identifier part in the dialect quote character,
// doubling embedded close-quote characters.
func (d *sqlDialect) quoteID(s string) string {
	return d.quoteOpen + strings.ReplaceAll(s, d.quoteClose, d.quoteClose+d.quoteClose) + d.quoteClose
}

func (d *sqlDialect) LimitAsTop() bool {
	return d.limitAsTop
}

func (d *sqlDialect) DefaultValuesStmt() string {
	return d.defaultValues
}

func (d *sqlDialect) DataType(name string) (string, bool) {
	if d.types == nil {
		return "", false
	}
	t, ok := d.types[name]
	return t, ok
}

// GetDialect returns the Dialect for the given key. An empty key selects
// mysql; unknown keys return an error.
func GetDialect(name string) (Dialect, error) {
	switch name {
	case "", DialectMySQL:
		return MySQL, nil
	case DialectPostgreSQL, "postgres":
		return PostgreSQL, nil
	case DialectSQLite, "sqlite3":
		return SQLite, nil
	case DialectMSSQL:
		return MSSQL, nil
	}
	return nil, DialectError(fmt.Sprintf("unknown dialect '%s'", name), nil)
}

// Dialect keys accepted by GetDialect and New
const (
	DialectMySQL      = "mysql"
	DialectPostgreSQL = "postgresql"
	DialectSQLite     = "sqlite"
	DialectMSSQL      = "mssql"
)
