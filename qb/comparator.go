package qb

// Operator tags a Comparator with its SQL operator.
type Operator int

const (
	OpEq Operator = iota
	OpNe
	OpGt
	OpGte
	OpLt
	OpLte
	OpBetween
	OpNotBetween
	OpLike
	OpNotLike
	OpNotIn
	OpSQL
)

// Comparator is an explicit operator operand usable in place of a plain
// value inside a condition. Operand shapes are not validated at creation
// time; the Where compiler dispatches on Op and interprets the payload
// fields it needs.
type Comparator struct {
	Op   Operator
	Val  any   // single-operand comparisons
	From any   // BETWEEN lower bound
	To   any   // BETWEEN upper bound
	Expr string // OpSQL template, supports ?:column / ?:id / ?:value tokens
	Args []any  // OpSQL escape queue
}

// Between matches values in the inclusive range [from, to].
func Between(from, to any) Comparator {
	return Comparator{Op: OpBetween, From: from, To: to}
}

// NotBetween matches values outside the inclusive range [from, to].
func NotBetween(from, to any) Comparator {
	return Comparator{Op: OpNotBetween, From: from, To: to}
}

// Like matches with the SQL LIKE operator.
func Like(expr any) Comparator {
	return Comparator{Op: OpLike, Val: expr}
}

// NotLike matches with NOT LIKE.
func NotLike(expr any) Comparator {
	return Comparator{Op: OpNotLike, Val: expr}
}

// Eq compares with '='; a nil operand renders IS NULL.
func Eq(v any) Comparator {
	return Comparator{Op: OpEq, Val: v}
}

// Ne compares with '<>'; a nil operand renders IS NOT NULL.
func Ne(v any) Comparator {
	return Comparator{Op: OpNe, Val: v}
}

// Gt compares with '>'.
func Gt(v any) Comparator {
	return Comparator{Op: OpGt, Val: v}
}

// Gte compares with '>='.
func Gte(v any) Comparator {
	return Comparator{Op: OpGte, Val: v}
}

// Lt compares with '<'.
func Lt(v any) Comparator {
	return Comparator{Op: OpLt, Val: v}
}

// Lte compares with '<='.
func Lte(v any) Comparator {
	return Comparator{Op: OpLte, Val: v}
}

// NotIn excludes the given list of values.
func NotIn(values ...any) Comparator {
	return Comparator{Op: OpNotIn, Val: values}
}

// SQL splices a raw template against the owning column. "?:column" expands
// to the escaped column reference; remaining ?:id / ?:value tokens consume
// args in order.
func SQL(expr string, args ...any) Comparator {
	return Comparator{Op: OpSQL, Expr: expr, Args: args}
}
