package qb

// MySQL renders backtick-quoted identifiers, backslash string escapes and
// local-format date literals.
var MySQL Dialect = &sqlDialect{
	name:             DialectMySQL,
	quoteOpen:        "`",
	quoteClose:       "`",
	backslashEscapes: true,
	hexFormat:        "X'%s'",
	boolTrue:         "true",
	boolFalse:        "false",
	localDates:       true,
	defaultValues:    "VALUES()",
	types: map[string]string{
		"id":      "INT(11) NOT NULL AUTO_INCREMENT PRIMARY KEY",
		"int":     "INT(11)",
		"integer": "INT(11)",
		"float":   "FLOAT(12,2)",
		"bool":    "TINYINT(1)",
		"boolean": "TINYINT(1)",
		"text":    "TEXT",
	},
}
