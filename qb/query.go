package qb

import (
	"time"
)

// Query wires a dialect into the statement builder constructors. It is the
// only piece of the engine touching external configuration.
type Query struct {
	dialect Dialect
	tz      *time.Location
}

// Option configures a Query factory.
type Option func(*Query) error

// WithTimezone sets the timezone applied when escaping time values,
// accepting "local", "Z" or offsets like "+02:00".
func WithTimezone(tz string) Option {
	return func(q *Query) error {
		loc, err := ParseOffset(tz)
		if err != nil {
			return err
		}
		q.tz = loc
		return nil
	}
}

// WithLocation sets the timezone from an existing location.
func WithLocation(loc *time.Location) Option {
	return func(q *Query) error {
		q.tz = loc
		return nil
	}
}

// New creates a Query factory for the given dialect key; an empty key
// selects mysql.
func New(dialect string, opts ...Option) (*Query, error) {
	d, err := GetDialect(dialect)
	if err != nil {
		return nil, err
	}
	q := &Query{dialect: d}
	for _, opt := range opts {
		if err = opt(q); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// Dialect returns the bound dialect.
func (q *Query) Dialect() Dialect {
	return q.dialect
}

// Select creates a new Select builder.
func (q *Query) Select() *SelectBuilder {
	return NewSelect(q.dialect, q.tz)
}

// Insert creates a new Insert builder.
func (q *Query) Insert() *InsertBuilder {
	return NewInsert(q.dialect, q.tz)
}

// Update creates a new Update builder.
func (q *Query) Update() *UpdateBuilder {
	return NewUpdate(q.dialect, q.tz)
}

// Remove creates a new Remove builder.
func (q *Query) Remove() *RemoveBuilder {
	return NewRemove(q.dialect, q.tz)
}

// Create creates a new Create builder.
func (q *Query) Create() *CreateBuilder {
	return NewCreate(q.dialect)
}
