package qb

import (
	"reflect"
	"strings"
	"time"
)

// Condition is one predicate inside a condition group. Conditions within a
// group are joined with AND.
type Condition interface {
	render(d Dialect, table string, tz *time.Location) string
}

// ConditionGroup is one WHERE compilation unit: an optional table alias
// qualifying column references, an ordered predicate list and an optional
// correlated EXISTS link. Multiple groups are ANDed together.
type ConditionGroup struct {
	Table      string
	Conditions []Condition
	Exists     *Exists
}

// Exists describes a correlated EXISTS subquery: the subquery table, the
// alias of the already-selected table it links to, and the (possibly
// composite) join-key column pairs.
type Exists struct {
	Table       string
	Link        string
	Columns     []string // subquery-side columns
	LinkColumns []string // outer-side columns, same length
}

// Col builds a predicate for one column. The value may be nil (IS NULL), a
// plain value (equality), a list (IN, empty list compiles to FALSE) or a
// Comparator.
func Col(column string, value any) Condition {
	return colCondition{column: column, value: value}
}

// List groups conditions for use as one branch of a logical combinator.
func List(conds ...Condition) []Condition {
	return conds
}

// Or joins each branch's ANDed conditions with OR.
func Or(branches ...[]Condition) Condition {
	return logicalCondition{op: "OR", branches: branches}
}

// And joins each branch's ANDed conditions with AND.
func And(branches ...[]Condition) Condition {
	return logicalCondition{op: "AND", branches: branches}
}

// NotOr negates an Or combinator.
func NotOr(branches ...[]Condition) Condition {
	return logicalCondition{op: "OR", negate: true, branches: branches}
}

// NotAnd negates an And combinator.
func NotAnd(branches ...[]Condition) Condition {
	return logicalCondition{op: "AND", negate: true, branches: branches}
}

// Not negates the conjunction of the given branches.
func Not(branches ...[]Condition) Condition {
	return logicalCondition{op: "AND", negate: true, branches: branches}
}

// Literal appends a raw SQL fragment; '?' placeholders consume args as
// escaped values, '??' as escaped identifiers.
func Literal(expr string, args ...any) Condition {
	return literalCondition{expr: expr, args: args}
}

type colCondition struct {
	column string
	value  any
}

func (c colCondition) render(d Dialect, table string, tz *time.Location) string {
	col := columnRef(d, table, c.column)
	if c.value == nil {
		return col + " IS NULL"
	}
	if cmp, ok := c.value.(Comparator); ok {
		return renderComparator(d, col, cmp, tz)
	}
	if rv := reflect.ValueOf(c.value); rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if _, isBytes := c.value.([]byte); !isBytes {
			// empty IN-list matches nothing
			if rv.Len() == 0 {
				return "FALSE"
			}
			return col + " IN " + d.EscapeValue(c.value, tz)
		}
	}
	return col + " = " + d.EscapeValue(c.value, tz)
}

func renderComparator(d Dialect, col string, cmp Comparator, tz *time.Location) string {
	switch cmp.Op {
	case OpBetween:
		return col + " BETWEEN " + d.EscapeValue(cmp.From, tz) + " AND " + d.EscapeValue(cmp.To, tz)
	case OpNotBetween:
		return col + " NOT BETWEEN " + d.EscapeValue(cmp.From, tz) + " AND " + d.EscapeValue(cmp.To, tz)
	case OpLike:
		return col + " LIKE " + d.EscapeValue(cmp.Val, tz)
	case OpNotLike:
		return col + " NOT LIKE " + d.EscapeValue(cmp.Val, tz)
	case OpEq:
		if cmp.Val == nil {
			return col + " IS NULL"
		}
		return col + " = " + d.EscapeValue(cmp.Val, tz)
	case OpNe:
		if cmp.Val == nil {
			return col + " IS NOT NULL"
		}
		return col + " <> " + d.EscapeValue(cmp.Val, tz)
	case OpGt:
		return col + " > " + d.EscapeValue(cmp.Val, tz)
	case OpGte:
		return col + " >= " + d.EscapeValue(cmp.Val, tz)
	case OpLt:
		return col + " < " + d.EscapeValue(cmp.Val, tz)
	case OpLte:
		return col + " <= " + d.EscapeValue(cmp.Val, tz)
	case OpNotIn:
		return col + " NOT IN " + d.EscapeValue(cmp.Val, tz)
	case OpSQL:
		expr := strings.ReplaceAll(cmp.Expr, "?:column", col)
		return d.EscapeValue(Frag(expr, cmp.Args...), tz)
	}
	return col + " = " + d.EscapeValue(cmp.Val, tz)
}

type logicalCondition struct {
	op       string
	negate   bool
	branches [][]Condition
}

func (c logicalCondition) render(d Dialect, table string, tz *time.Location) string {
	clauses := make([]string, 0, len(c.branches))
	for _, branch := range c.branches {
		if expr := renderConditions(d, table, branch, tz); expr != "" {
			clauses = append(clauses, expr)
		}
	}
	if len(clauses) == 0 {
		return ""
	}
	prefix := ""
	if c.negate {
		prefix = "NOT "
	}
	return prefix + "((" + strings.Join(clauses, ") "+c.op+" (") + "))"
}

type literalCondition struct {
	expr string
	args []any
}

func (c literalCondition) render(d Dialect, table string, tz *time.Location) string {
	return EscapeQuery(d, c.expr, c.args, tz)
}

// columnRef qualifies a column with the group's table alias when present.
func columnRef(d Dialect, table, column string) string {
	if table != "" {
		return d.EscapeID(table, column)
	}
	return d.EscapeID(column)
}

// renderConditions joins a predicate list with AND, skipping empty
// fragments.
func renderConditions(d Dialect, table string, conds []Condition, tz *time.Location) string {
	parts := make([]string, 0, len(conds))
	for _, cond := range conds {
		if expr := cond.render(d, table, tz); expr != "" {
			parts = append(parts, expr)
		}
	}
	return strings.Join(parts, " AND ")
}

// renderGroup compiles one condition group, including its EXISTS wrapper.
func renderGroup(d Dialect, g ConditionGroup, tz *time.Location) string {
	if g.Exists != nil {
		links := make([]string, 0, len(g.Exists.Columns))
		for i := range g.Exists.Columns {
			if i >= len(g.Exists.LinkColumns) {
				break
			}
			links = append(links,
				d.EscapeID(g.Exists.Table, g.Exists.Columns[i])+" = "+
					d.EscapeID(g.Exists.Link, g.Exists.LinkColumns[i]))
		}
		inner := renderConditions(d, "", g.Conditions, tz)
		if inner != "" {
			links = append(links, inner)
		}
		return "EXISTS (SELECT * FROM " + d.EscapeID(g.Exists.Table) +
			" WHERE " + strings.Join(links, " AND ") + ")"
	}
	return renderConditions(d, g.Table, g.Conditions, tz)
}

// Where compiles condition groups to a complete "WHERE ..." clause. Empty
// input (or groups that compile to nothing) returns an empty string and the
// caller omits the keyword entirely. Groups qualified by a table alias are
// parenthesized; a lone unqualified group renders bare, while multiple
// groups are each parenthesized and joined with AND.
func Where(d Dialect, groups []ConditionGroup, tz *time.Location) string {
	type rendered struct {
		expr      string
		qualified bool
	}
	exprs := make([]rendered, 0, len(groups))
	for _, g := range groups {
		if expr := renderGroup(d, g, tz); expr != "" {
			exprs = append(exprs, rendered{expr, g.Table != "" && g.Exists == nil})
		}
	}
	if len(exprs) == 0 {
		return ""
	}
	if len(exprs) == 1 {
		if exprs[0].qualified {
			return "WHERE (" + exprs[0].expr + ")"
		}
		return "WHERE " + exprs[0].expr
	}
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = "(" + e.expr + ")"
	}
	return "WHERE " + strings.Join(parts, " AND ")
}
