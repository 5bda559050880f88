package qb

import (
	"strconv"
	"strings"
	"time"
)

// SelectBuilder accumulates the description of one SELECT statement through
// a fluent API and renders it with Build. Builders are single-use and not
// safe for concurrent mutation; construct a fresh one per query.
type SelectBuilder struct {
	d             Dialect
	tz            *time.Location
	from          []*fromEntry
	where         []ConditionGroup
	order         []orderEntry
	groupBy       []string
	limit         *int
	offset        *int
	calcFoundRows bool
	fnStack       []string
	err           error
}

type fromEntry struct {
	table    string
	alias    string
	selects  []*projection
	joined   bool
	joinType string
	columns  []string
	toTable  string
	toCols   []string
}

// projection is one entry of the projected-column list. Either col is set
// (plain column, fragment or raw function) or fn/args describe an aggregate
// call, possibly wrapped by a stack of outer functions.
type projection struct {
	col    any
	fn     string
	args   []any
	stack  []string
	alias  string
	having []string
}

type orderEntry struct {
	table string
	cols  []string
	dir   string
	raw   string
}

// JoinOption configures a joined table registration.
type JoinOption func(*fromEntry)

// WithJoinType sets the join type rendered before the JOIN keyword, e.g.
// "LEFT" or "LEFT OUTER".
func WithJoinType(t string) JoinOption {
	return func(e *fromEntry) {
		e.joinType = strings.ToUpper(strings.TrimSpace(t))
	}
}

// NewSelect creates a Select builder bound to a dialect. The timezone is
// applied when escaping time values; nil means local time.
func NewSelect(d Dialect, tz *time.Location) *SelectBuilder {
	return &SelectBuilder{d: d, tz: tz}
}

// From registers the anchor table. Joined tables are registered with Join;
// calling From again once a table exists is an invalid join definition.
func (b *SelectBuilder) From(table string) *SelectBuilder {
	if len(b.from) > 0 {
		b.fail(JoinError(table))
		return b
	}
	b.from = append(b.from, &fromEntry{table: table})
	return b
}

// Join registers a joined table. The join key arrays on both sides must be
// non-empty and of equal length. Aliases are not fixed here; they are
// recomputed from the final from-list order at Build time.
func (b *SelectBuilder) Join(table string, columns []string, toTable string, toColumns []string, opts ...JoinOption) *SelectBuilder {
	if len(b.from) == 0 || len(columns) == 0 || len(columns) != len(toColumns) {
		b.fail(JoinError(table))
		return b
	}
	e := &fromEntry{
		table:   table,
		joined:  true,
		columns: columns,
		toTable: toTable,
		toCols:  toColumns,
	}
	for _, opt := range opts {
		opt(e)
	}
	b.from = append(b.from, e)
	return b
}

// Select projects columns on the most recently registered table. Arguments
// may be column names, *Fragment snippets or RawFunc expressions.
func (b *SelectBuilder) Select(columns ...any) *SelectBuilder {
	e := b.lastFrom()
	if e == nil {
		b.fail(ValidationError("select requires a from table"))
		return b
	}
	for _, col := range columns {
		e.selects = append(e.selects, &projection{col: col})
	}
	return b
}

// As sets the alias of the most recently projected column.
func (b *SelectBuilder) As(alias string) *SelectBuilder {
	if p := b.lastProjection(); p != nil {
		p.alias = alias
	}
	return b
}

// Fun projects a function call. With no arguments the function name is
// pushed onto a pending stack so the next projected call composes as
// OUTER(INNER(...)); string arguments are treated as column references,
// anything else as values.
func (b *SelectBuilder) Fun(name string, args ...any) *SelectBuilder {
	if len(args) == 0 {
		b.fnStack = append(b.fnStack, strings.ToUpper(name))
		return b
	}
	e := b.lastFrom()
	if e == nil {
		b.fail(ValidationError("aggregate requires a from table"))
		return b
	}
	e.selects = append(e.selects, &projection{
		fn:    strings.ToUpper(name),
		args:  args,
		stack: b.fnStack,
	})
	b.fnStack = nil
	return b
}

// Aggregate and scalar-function conveniences. Called with no arguments they
// compose with the next call, e.g. Round().Avg("price") renders
// ROUND(AVG(`price`)).

func (b *SelectBuilder) Count(args ...any) *SelectBuilder { return b.Fun("count", args...) }
func (b *SelectBuilder) Sum(args ...any) *SelectBuilder   { return b.Fun("sum", args...) }
func (b *SelectBuilder) Avg(args ...any) *SelectBuilder   { return b.Fun("avg", args...) }
func (b *SelectBuilder) Min(args ...any) *SelectBuilder   { return b.Fun("min", args...) }
func (b *SelectBuilder) Max(args ...any) *SelectBuilder   { return b.Fun("max", args...) }
func (b *SelectBuilder) Round(args ...any) *SelectBuilder { return b.Fun("round", args...) }
func (b *SelectBuilder) Abs(args ...any) *SelectBuilder   { return b.Fun("abs", args...) }
func (b *SelectBuilder) Ceil(args ...any) *SelectBuilder  { return b.Fun("ceil", args...) }
func (b *SelectBuilder) Floor(args ...any) *SelectBuilder { return b.Fun("floor", args...) }
func (b *SelectBuilder) Sqrt(args ...any) *SelectBuilder  { return b.Fun("sqrt", args...) }
func (b *SelectBuilder) Exp(args ...any) *SelectBuilder   { return b.Fun("exp", args...) }
func (b *SelectBuilder) Log(args ...any) *SelectBuilder   { return b.Fun("log", args...) }
func (b *SelectBuilder) Sin(args ...any) *SelectBuilder   { return b.Fun("sin", args...) }
func (b *SelectBuilder) Cos(args ...any) *SelectBuilder   { return b.Fun("cos", args...) }
func (b *SelectBuilder) Tan(args ...any) *SelectBuilder   { return b.Fun("tan", args...) }

// Having attaches HAVING fragments to the most recently projected column.
// Fragments render in projection order, the first as HAVING and the rest
// prefixed with AND.
func (b *SelectBuilder) Having(fragments ...string) *SelectBuilder {
	if p := b.lastProjection(); p != nil {
		p.having = append(p.having, fragments...)
	}
	return b
}

// Where appends condition groups. A string argument switches the active
// table context for the conditions that follow it (resolved to the table's
// alias at Build time); condition arguments extend the current group.
func (b *SelectBuilder) Where(args ...any) *SelectBuilder {
	groups, err := collectWhere(args)
	if err != nil {
		b.fail(err)
	}
	b.where = append(b.where, groups...)
	return b
}

// WhereExists appends a correlated EXISTS group: table is the subquery
// table, linkTable an already-registered table whose alias anchors the link
// equalities, and columns/linkColumns the (possibly composite) join key.
// The conditions compile inside the subquery without a table qualifier.
func (b *SelectBuilder) WhereExists(table, linkTable string, columns, linkColumns []string, conds ...Condition) *SelectBuilder {
	b.where = append(b.where, ConditionGroup{
		Conditions: conds,
		Exists: &Exists{
			Table:       table,
			Link:        linkTable,
			Columns:     columns,
			LinkColumns: linkColumns,
		},
	})
	return b
}

// GroupBy sets the grouping columns. A "-" prefix marks the column as both
// a GROUP BY entry and a descending sort prepended to the ORDER BY list.
func (b *SelectBuilder) GroupBy(columns ...string) *SelectBuilder {
	for _, col := range columns {
		if strings.HasPrefix(col, "-") {
			col = col[1:]
			b.order = append([]orderEntry{{cols: []string{col}, dir: "DESC"}}, b.order...)
		}
		b.groupBy = append(b.groupBy, col)
	}
	return b
}

// Order appends a single-column sort. Direction "Z" sorts descending,
// anything else ascending.
func (b *SelectBuilder) Order(column string, dir string) *SelectBuilder {
	b.order = append(b.order, orderEntry{cols: []string{column}, dir: orderDir(dir)})
	return b
}

// OrderCols appends a table-qualified sort; more than one column renders the
// composite form "(col1, col2) DIR".
func (b *SelectBuilder) OrderCols(table string, columns []string, dir string) *SelectBuilder {
	b.order = append(b.order, orderEntry{table: table, cols: columns, dir: orderDir(dir)})
	return b
}

// OrderRaw appends a pre-escaped ORDER BY entry verbatim.
func (b *SelectBuilder) OrderRaw(expr string) *SelectBuilder {
	b.order = append(b.order, orderEntry{raw: expr})
	return b
}

func orderDir(dir string) string {
	if dir == "Z" || strings.EqualFold(dir, "DESC") {
		return "DESC"
	}
	return "ASC"
}

// Limit caps the number of returned rows.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = &n
	return b
}

// Offset skips the first n rows.
func (b *SelectBuilder) Offset(n int) *SelectBuilder {
	b.offset = &n
	return b
}

// CalcFoundRows renders SQL_CALC_FOUND_ROWS after SELECT (MySQL).
func (b *SelectBuilder) CalcFoundRows() *SelectBuilder {
	b.calcFoundRows = true
	return b
}

// Build renders the accumulated state to a single SQL statement. Aliases
// are recomputed from the final from-list order, so building the same
// unmodified state twice is idempotent.
func (b *SelectBuilder) Build() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if len(b.from) == 0 {
		return "", ValidationError("select requires a from table")
	}

	// flush a pending function stack as a zero-arg aggregate call
	if len(b.fnStack) > 0 {
		stack := b.fnStack
		b.fnStack = nil
		e := b.lastFrom()
		e.selects = append(e.selects, &projection{
			fn:    stack[len(stack)-1],
			stack: stack[:len(stack)-1],
		})
	}

	// aliases are a pure function of final from-list order
	for i, e := range b.from {
		e.alias = "t" + strconv.Itoa(i+1)
	}

	hasExists := false
	for i := range b.where {
		if b.where[i].Exists != nil {
			hasExists = true
		}
	}
	multiTable := len(b.from) > 1
	aliased := multiTable || hasExists

	var parts []string
	parts = append(parts, b.renderSelect(multiTable))
	parts = append(parts, b.renderFrom(aliased))
	if having := b.renderHaving(); having != "" {
		parts = append(parts, having)
	}
	if where := Where(b.d, b.resolveWhere(), b.tz); where != "" {
		parts = append(parts, where)
	}
	if group := b.renderGroupBy(); group != "" {
		parts = append(parts, group)
	}
	if order := b.renderOrder(multiTable); order != "" {
		parts = append(parts, order)
	}
	if paging := b.renderPaging(); paging != "" {
		parts = append(parts, paging)
	}
	return strings.Join(parts, " "), nil
}

func (b *SelectBuilder) renderSelect(qualify bool) string {
	head := "SELECT"
	if b.d.LimitAsTop() && b.limit != nil {
		head += " TOP " + strconv.Itoa(*b.limit)
	}
	if b.calcFoundRows && b.d.Name() == DialectMySQL {
		head += " SQL_CALC_FOUND_ROWS"
	}
	var cols []string
	for _, e := range b.from {
		for _, p := range e.selects {
			cols = append(cols, b.renderProjection(e, p, qualify))
		}
	}
	if len(cols) == 0 {
		return head + " *"
	}
	return head + " " + strings.Join(cols, ", ")
}

func (b *SelectBuilder) renderProjection(e *fromEntry, p *projection, qualify bool) string {
	var expr string
	switch {
	case p.fn != "":
		expr = b.renderFunction(e, p, qualify)
	default:
		expr = b.renderColumn(e, p.col, qualify)
	}
	if p.alias != "" {
		expr += " AS " + b.d.EscapeID(p.alias)
	}
	return expr
}

func (b *SelectBuilder) renderFunction(e *fromEntry, p *projection, qualify bool) string {
	var args []string
	for _, a := range p.args {
		switch arg := a.(type) {
		case string:
			args = append(args, b.qualifiedID(e, arg, qualify))
		default:
			args = append(args, b.renderColumn(e, a, qualify))
		}
	}
	inner := "*"
	if len(args) > 0 {
		inner = strings.Join(args, ", ")
	}
	expr := p.fn + "(" + inner + ")"
	for i := len(p.stack) - 1; i >= 0; i-- {
		expr = p.stack[i] + "(" + expr + ")"
	}
	return expr
}

func (b *SelectBuilder) renderColumn(e *fromEntry, col any, qualify bool) string {
	switch c := col.(type) {
	case string:
		return b.qualifiedID(e, c, qualify)
	case *Fragment:
		return b.d.EscapeValue(c, b.tz)
	case RawFunc:
		return c(b.d)
	case func(Dialect) string:
		return RawFunc(c)(b.d)
	}
	return b.d.EscapeValue(col, b.tz)
}

func (b *SelectBuilder) qualifiedID(e *fromEntry, column string, qualify bool) string {
	if column == "*" {
		if qualify {
			return b.d.EscapeID(e.alias) + ".*"
		}
		return "*"
	}
	if qualify {
		return b.d.EscapeID(e.alias, column)
	}
	return b.d.EscapeID(column)
}

func (b *SelectBuilder) renderFrom(aliased bool) string {
	if len(b.from) == 1 && !aliased {
		return "FROM " + b.d.EscapeID(b.from[0].table)
	}
	var out strings.Builder
	out.WriteString("FROM ")
	// chained joins of 3+ tables need explicit precedence grouping
	if len(b.from) >= 3 {
		out.WriteString(strings.Repeat("(", len(b.from)-2))
	}
	anchor := b.from[0]
	out.WriteString(b.d.EscapeID(anchor.table) + " " + b.d.EscapeID(anchor.alias))
	for i := 1; i < len(b.from); i++ {
		e := b.from[i]
		if e.joinType != "" {
			out.WriteString(" " + e.joinType)
		}
		out.WriteString(" JOIN " + b.d.EscapeID(e.table) + " " + b.d.EscapeID(e.alias) + " ON ")
		eqs := make([]string, len(e.columns))
		for j := range e.columns {
			eqs[j] = b.d.EscapeID(e.alias, e.columns[j]) + " = " +
				b.d.EscapeID(b.aliasOf(e.toTable), e.toCols[j])
		}
		out.WriteString(strings.Join(eqs, " AND "))
		if i < len(b.from)-1 {
			out.WriteString(")")
		}
	}
	return out.String()
}

// aliasOf resolves a table name through the from-list; unregistered names
// are used verbatim.
func (b *SelectBuilder) aliasOf(table string) string {
	for _, e := range b.from {
		if e.table == table {
			return e.alias
		}
	}
	return table
}

func (b *SelectBuilder) renderHaving() string {
	var out strings.Builder
	for _, e := range b.from {
		for _, p := range e.selects {
			for _, h := range p.having {
				if out.Len() == 0 {
					out.WriteString("HAVING " + h)
				} else {
					out.WriteString(" AND " + h)
				}
			}
		}
	}
	return out.String()
}

// resolveWhere maps where-group table names to their build-time aliases.
func (b *SelectBuilder) resolveWhere() []ConditionGroup {
	groups := make([]ConditionGroup, len(b.where))
	for i, g := range b.where {
		if g.Table != "" {
			g.Table = b.aliasOf(g.Table)
		}
		if g.Exists != nil {
			e := *g.Exists
			e.Link = b.aliasOf(e.Link)
			g.Exists = &e
		}
		groups[i] = g
	}
	return groups
}

func (b *SelectBuilder) renderGroupBy() string {
	cols := make([]string, 0, len(b.groupBy))
	for _, col := range b.groupBy {
		if col == "" {
			continue
		}
		cols = append(cols, b.d.EscapeID(col))
	}
	if len(cols) == 0 {
		return ""
	}
	return "GROUP BY " + strings.Join(cols, ", ")
}

func (b *SelectBuilder) renderOrder(qualify bool) string {
	if len(b.order) == 0 {
		return ""
	}
	entries := make([]string, 0, len(b.order))
	for _, o := range b.order {
		if o.raw != "" {
			entries = append(entries, o.raw)
			continue
		}
		var ref string
		switch {
		case len(o.cols) == 1 && o.table == "":
			ref = b.d.EscapeID(o.cols[0])
		case len(o.cols) == 1:
			ref = b.d.EscapeID(b.aliasOf(o.table), o.cols[0])
		default:
			cols := make([]string, len(o.cols))
			for i, c := range o.cols {
				if o.table != "" {
					cols[i] = b.d.EscapeID(b.aliasOf(o.table), c)
				} else {
					cols[i] = b.d.EscapeID(c)
				}
			}
			ref = "(" + strings.Join(cols, ", ") + ")"
		}
		entries = append(entries, ref+" "+o.dir)
	}
	return "ORDER BY " + strings.Join(entries, ", ")
}

func (b *SelectBuilder) renderPaging() string {
	if b.d.LimitAsTop() {
		// TOP renders inline after SELECT; trailing syntax is suppressed
		return ""
	}
	var parts []string
	if b.limit != nil {
		parts = append(parts, "LIMIT "+strconv.Itoa(*b.limit))
	}
	if b.offset != nil {
		parts = append(parts, "OFFSET "+strconv.Itoa(*b.offset))
	}
	return strings.Join(parts, " ")
}

func (b *SelectBuilder) lastFrom() *fromEntry {
	if len(b.from) == 0 {
		return nil
	}
	return b.from[len(b.from)-1]
}

func (b *SelectBuilder) lastProjection() *projection {
	e := b.lastFrom()
	if e == nil || len(e.selects) == 0 {
		return nil
	}
	return e.selects[len(e.selects)-1]
}

// fail latches the first builder error; Build reports it.
func (b *SelectBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}
