package qb

// MSSQL renders bracket-quoted identifiers, quote-doubled strings, TOP-style
// row limits and quoted bit literals for booleans.
var MSSQL Dialect = &sqlDialect{
	name:          DialectMSSQL,
	quoteOpen:     "[",
	quoteClose:    "]",
	hexFormat:     "X'%s'",
	boolTrue:      "'1'",
	boolFalse:     "'0'",
	limitAsTop:    true,
	defaultValues: "DEFAULT VALUES",
	types: map[string]string{
		"id":      "INT IDENTITY(1,1) NOT NULL PRIMARY KEY",
		"int":     "INT",
		"integer": "INT",
		"float":   "FLOAT",
		"bool":    "BIT",
		"boolean": "BIT",
		"text":    "NVARCHAR(MAX)",
	},
}
