package qb

// SQLite shares MySQL's backtick quoting and backslash string escapes, but
// uses numeric boolean literals and ISO date rendering.
var SQLite Dialect = &sqlDialect{
	name:             DialectSQLite,
	quoteOpen:        "`",
	quoteClose:       "`",
	backslashEscapes: true,
	hexFormat:        "X'%s'",
	boolTrue:         "1",
	boolFalse:        "0",
	defaultValues:    "DEFAULT VALUES",
}
