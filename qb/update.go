package qb

import (
	"strings"
	"time"
)

// UpdateBuilder renders an UPDATE statement.
type UpdateBuilder struct {
	d     Dialect
	tz    *time.Location
	table string
	set   []Assignment
	where []ConditionGroup
	err   error
}

// NewUpdate creates an Update builder bound to a dialect.
func NewUpdate(d Dialect, tz *time.Location) *UpdateBuilder {
	return &UpdateBuilder{d: d, tz: tz}
}

// Into sets the target table.
func (b *UpdateBuilder) Into(table string) *UpdateBuilder {
	b.table = table
	return b
}

// Set appends one column/value pair; call order determines SET order.
// RawFunc values render verbatim, supporting expressions like NOW().
func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.set = append(b.set, Assignment{Column: column, Value: value})
	return b
}

// SetAll appends a list of ordered column/value pairs.
func (b *UpdateBuilder) SetAll(pairs ...Assignment) *UpdateBuilder {
	b.set = append(b.set, pairs...)
	return b
}

// Where appends condition groups; string arguments switch the qualifier
// context exactly as in the Select builder.
func (b *UpdateBuilder) Where(args ...any) *UpdateBuilder {
	groups, err := collectWhere(args)
	if err != nil && b.err == nil {
		b.err = err
	}
	b.where = append(b.where, groups...)
	return b
}

// Build renders the statement.
func (b *UpdateBuilder) Build() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if b.table == "" {
		return "", ValidationError("table name cannot be empty")
	}
	if len(b.set) == 0 {
		return "", ValidationError("nothing to update")
	}
	parts := make([]string, 0, len(b.set))
	for _, a := range b.set {
		parts = append(parts, b.d.EscapeID(a.Column)+" = "+b.d.EscapeValue(a.Value, b.tz))
	}
	stmt := "UPDATE " + b.d.EscapeID(b.table) + " SET " + strings.Join(parts, ", ")
	if where := Where(b.d, b.where, b.tz); where != "" {
		stmt += " " + where
	}
	return stmt, nil
}

// collectWhere parses the mixed argument form shared by the Update and
// Remove builders: strings start a new qualified group, conditions extend
// the current one.
func collectWhere(args []any) ([]ConditionGroup, error) {
	var groups []ConditionGroup
	current := -1
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			groups = append(groups, ConditionGroup{Table: v})
			current = len(groups) - 1
		case Condition:
			if current < 0 {
				groups = append(groups, ConditionGroup{})
				current = len(groups) - 1
			}
			groups[current].Conditions = append(groups[current].Conditions, v)
		case []Condition:
			if current < 0 {
				groups = append(groups, ConditionGroup{})
				current = len(groups) - 1
			}
			groups[current].Conditions = append(groups[current].Conditions, v...)
		default:
			return groups, ValidationError("unsupported where argument")
		}
	}
	return groups, nil
}
