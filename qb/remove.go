package qb

import (
	"strconv"
	"strings"
	"time"
)

// RemoveBuilder renders a DELETE statement.
type RemoveBuilder struct {
	d      Dialect
	tz     *time.Location
	table  string
	where  []ConditionGroup
	order  []orderEntry
	limit  *int
	offset *int
	err    error
}

// NewRemove creates a Remove builder bound to a dialect.
func NewRemove(d Dialect, tz *time.Location) *RemoveBuilder {
	return &RemoveBuilder{d: d, tz: tz}
}

// From sets the target table.
func (b *RemoveBuilder) From(table string) *RemoveBuilder {
	b.table = table
	return b
}

// Where appends condition groups; string arguments switch the qualifier
// context exactly as in the Select builder.
func (b *RemoveBuilder) Where(args ...any) *RemoveBuilder {
	groups, err := collectWhere(args)
	if err != nil && b.err == nil {
		b.err = err
	}
	b.where = append(b.where, groups...)
	return b
}

// Order appends a sort entry; direction "Z" sorts descending.
func (b *RemoveBuilder) Order(column string, dir string) *RemoveBuilder {
	b.order = append(b.order, orderEntry{cols: []string{column}, dir: orderDir(dir)})
	return b
}

// Limit caps the number of deleted rows.
func (b *RemoveBuilder) Limit(n int) *RemoveBuilder {
	b.limit = &n
	return b
}

// Offset skips the first n matched rows.
func (b *RemoveBuilder) Offset(n int) *RemoveBuilder {
	b.offset = &n
	return b
}

// Build renders the statement, with the same TOP-vs-trailing-LIMIT split as
// the Select builder.
func (b *RemoveBuilder) Build() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if b.table == "" {
		return "", ValidationError("table name cannot be empty")
	}
	stmt := "DELETE"
	if b.d.LimitAsTop() && b.limit != nil {
		stmt += " TOP " + strconv.Itoa(*b.limit)
	}
	stmt += " FROM " + b.d.EscapeID(b.table)
	if where := Where(b.d, b.where, b.tz); where != "" {
		stmt += " " + where
	}
	if len(b.order) > 0 {
		entries := make([]string, len(b.order))
		for i, o := range b.order {
			entries[i] = b.d.EscapeID(o.cols[0]) + " " + o.dir
		}
		stmt += " ORDER BY " + strings.Join(entries, ", ")
	}
	if !b.d.LimitAsTop() {
		if b.limit != nil {
			stmt += " LIMIT " + strconv.Itoa(*b.limit)
		}
		if b.offset != nil {
			stmt += " OFFSET " + strconv.Itoa(*b.offset)
		}
	}
	return stmt, nil
}
