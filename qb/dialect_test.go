package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDialect(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		expected    Dialect
		expectError bool
	}{
		{
			name:     "empty key defaults to mysql",
			key:      "",
			expected: MySQL,
		},
		{
			name:     "mysql",
			key:      "mysql",
			expected: MySQL,
		},
		{
			name:     "postgresql",
			key:      "postgresql",
			expected: PostgreSQL,
		},
		{
			name:     "postgres alias",
			key:      "postgres",
			expected: PostgreSQL,
		},
		{
			name:     "sqlite",
			key:      "sqlite",
			expected: SQLite,
		},
		{
			name:     "sqlite3 alias",
			key:      "sqlite3",
			expected: SQLite,
		},
		{
			name:     "mssql",
			key:      "mssql",
			expected: MSSQL,
		},
		{
			name:        "unknown dialect",
			key:         "oracle",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := GetDialect(tt.key)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.expected, d)
		})
	}
}

func TestDialect_EscapeID(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		parts    []any
		expected string
	}{
		{
			name:     "mysql single part",
			dialect:  MySQL,
			parts:    []any{"name"},
			expected: "`name`",
		},
		{
			name:     "mysql qualified",
			dialect:  MySQL,
			parts:    []any{"t1", "name"},
			expected: "`t1`.`name`",
		},
		{
			name:     "mysql embedded quote doubled",
			dialect:  MySQL,
			parts:    []any{"we`ird"},
			expected: "`we``ird`",
		},
		{
			name:     "postgres qualified",
			dialect:  PostgreSQL,
			parts:    []any{"t1", "name"},
			expected: `"t1"."name"`,
		},
		{
			name:     "postgres embedded quote doubled",
			dialect:  PostgreSQL,
			parts:    []any{`we"ird`},
			expected: `"we""ird"`,
		},
		{
			name:     "sqlite backtick",
			dialect:  SQLite,
			parts:    []any{"name"},
			expected: "`name`",
		},
		{
			name:     "mssql brackets",
			dialect:  MSSQL,
			parts:    []any{"t1", "name"},
			expected: "[t1].[name]",
		},
		{
			name:     "mssql embedded close bracket doubled",
			dialect:  MSSQL,
			parts:    []any{"we]ird"},
			expected: "[we]]ird]",
		},
		{
			name:     "fragment part",
			dialect:  MySQL,
			parts:    []any{Frag("LOWER(?:id)", "name")},
			expected: "LOWER(`name`)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.dialect.EscapeID(tt.parts...))
		})
	}
}

func TestDialect_DataType(t *testing.T) {
	mapped, ok := MySQL.DataType("text")
	assert.True(t, ok)
	assert.Equal(t, "TEXT", mapped)

	mapped, ok = MSSQL.DataType("bool")
	assert.True(t, ok)
	assert.Equal(t, "BIT", mapped)

	_, ok = PostgreSQL.DataType("text")
	assert.False(t, ok)

	_, ok = MySQL.DataType("custom_type")
	assert.False(t, ok)
}

func TestDialect_Properties(t *testing.T) {
	assert.True(t, MSSQL.LimitAsTop())
	assert.False(t, MySQL.LimitAsTop())
	assert.False(t, PostgreSQL.LimitAsTop())
	assert.False(t, SQLite.LimitAsTop())

	assert.Equal(t, "VALUES()", MySQL.DefaultValuesStmt())
	assert.Equal(t, "DEFAULT VALUES", PostgreSQL.DefaultValuesStmt())
	assert.Equal(t, "DEFAULT VALUES", SQLite.DefaultValuesStmt())
	assert.Equal(t, "DEFAULT VALUES", MSSQL.DefaultValuesStmt())
}
