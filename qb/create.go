package qb

import (
	"strings"
)

// CreateBuilder renders a minimal CREATE TABLE statement.
type CreateBuilder struct {
	d      Dialect
	table  string
	fields []Assignment
}

// NewCreate creates a Create builder bound to a dialect.
func NewCreate(d Dialect) *CreateBuilder {
	return &CreateBuilder{d: d}
}

// Table sets the table name.
func (b *CreateBuilder) Table(name string) *CreateBuilder {
	b.table = name
	return b
}

// Field appends one column definition. The type is mapped through the
// dialect's type table when a mapping exists, otherwise used unchanged.
func (b *CreateBuilder) Field(name, fieldType string) *CreateBuilder {
	b.fields = append(b.fields, Assignment{Column: name, Value: fieldType})
	return b
}

// Fields appends a list of ordered column definitions.
func (b *CreateBuilder) Fields(fields ...Assignment) *CreateBuilder {
	b.fields = append(b.fields, fields...)
	return b
}

// Build renders the statement. With no table name set it returns an empty
// string and no error.
func (b *CreateBuilder) Build() (string, error) {
	if b.table == "" {
		return "", nil
	}
	defs := make([]string, len(b.fields))
	for i, f := range b.fields {
		fieldType, _ := f.Value.(string)
		if mapped, ok := b.d.DataType(fieldType); ok {
			fieldType = mapped
		}
		defs[i] = b.d.EscapeID(f.Column) + " " + fieldType
	}
	return "CREATE TABLE " + b.d.EscapeID(b.table) + " (" + strings.Join(defs, ", ") + ")", nil
}
