package qb

// PostgreSQL renders double-quoted identifiers, quote-doubled strings and
// '\x..' binary literals.
var PostgreSQL Dialect = &sqlDialect{
	name:          DialectPostgreSQL,
	quoteOpen:     `"`,
	quoteClose:    `"`,
	hexFormat:     `'\x%s'`,
	boolTrue:      "true",
	boolFalse:     "false",
	defaultValues: "DEFAULT VALUES",
}
