package qb

import (
	"strings"
	"time"
)

// InsertBuilder renders a single-row INSERT statement.
type InsertBuilder struct {
	d     Dialect
	tz    *time.Location
	table string
	set   []Assignment
}

// NewInsert creates an Insert builder bound to a dialect.
func NewInsert(d Dialect, tz *time.Location) *InsertBuilder {
	return &InsertBuilder{d: d, tz: tz}
}

// Into sets the target table.
func (b *InsertBuilder) Into(table string) *InsertBuilder {
	b.table = table
	return b
}

// Set appends one column/value pair; call order determines column order.
func (b *InsertBuilder) Set(column string, value any) *InsertBuilder {
	b.set = append(b.set, Assignment{Column: column, Value: value})
	return b
}

// SetAll appends a list of ordered column/value pairs.
func (b *InsertBuilder) SetAll(pairs ...Assignment) *InsertBuilder {
	b.set = append(b.set, pairs...)
	return b
}

// Build renders the statement. An empty column set renders the dialect's
// default-values form instead of a VALUES list.
func (b *InsertBuilder) Build() (string, error) {
	if b.table == "" {
		return "", ValidationError("table name cannot be empty")
	}
	if len(b.set) == 0 {
		return "INSERT INTO " + b.d.EscapeID(b.table) + " " + b.d.DefaultValuesStmt(), nil
	}
	cols := make([]string, len(b.set))
	vals := make([]string, len(b.set))
	for i, a := range b.set {
		cols[i] = b.d.EscapeID(a.Column)
		vals[i] = b.d.EscapeValue(a.Value, b.tz)
	}
	return "INSERT INTO " + b.d.EscapeID(b.table) +
		" (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(vals, ", ") + ")", nil
}
