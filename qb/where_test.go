package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhere_Empty(t *testing.T) {
	assert.Equal(t, "", Where(MySQL, nil, nil))
	assert.Equal(t, "", Where(MySQL, []ConditionGroup{}, nil))
	assert.Equal(t, "", Where(MySQL, []ConditionGroup{{Table: "t1"}}, nil))
}

func TestWhere_SingleGroup(t *testing.T) {
	tests := []struct {
		name     string
		group    ConditionGroup
		expected string
	}{
		{
			name:     "equality",
			group:    ConditionGroup{Conditions: List(Col("name", "jane"))},
			expected: "WHERE `name` = 'jane'",
		},
		{
			name:     "nil is null",
			group:    ConditionGroup{Conditions: List(Col("deleted_at", nil))},
			expected: "WHERE `deleted_at` IS NULL",
		},
		{
			name:     "between",
			group:    ConditionGroup{Conditions: List(Col("age", Between(1, 5)))},
			expected: "WHERE `age` BETWEEN 1 AND 5",
		},
		{
			name:     "not between",
			group:    ConditionGroup{Conditions: List(Col("age", NotBetween(1, 5)))},
			expected: "WHERE `age` NOT BETWEEN 1 AND 5",
		},
		{
			name:     "like",
			group:    ConditionGroup{Conditions: List(Col("name", Like("ja%")))},
			expected: "WHERE `name` LIKE 'ja%'",
		},
		{
			name:     "not like",
			group:    ConditionGroup{Conditions: List(Col("name", NotLike("ja%")))},
			expected: "WHERE `name` NOT LIKE 'ja%'",
		},
		{
			name:     "eq nil is null",
			group:    ConditionGroup{Conditions: List(Col("name", Eq(nil)))},
			expected: "WHERE `name` IS NULL",
		},
		{
			name:     "ne nil is not null",
			group:    ConditionGroup{Conditions: List(Col("name", Ne(nil)))},
			expected: "WHERE `name` IS NOT NULL",
		},
		{
			name:     "ne value",
			group:    ConditionGroup{Conditions: List(Col("age", Ne(18)))},
			expected: "WHERE `age` <> 18",
		},
		{
			name:     "ordering comparators",
			group:    ConditionGroup{Conditions: List(Col("a", Gt(1)), Col("b", Gte(2)), Col("c", Lt(3)), Col("d", Lte(4)))},
			expected: "WHERE `a` > 1 AND `b` >= 2 AND `c` < 3 AND `d` <= 4",
		},
		{
			name:     "in list",
			group:    ConditionGroup{Conditions: List(Col("id", []int{1, 2, 3}))},
			expected: "WHERE `id` IN (1, 2, 3)",
		},
		{
			name:     "empty in list matches nothing",
			group:    ConditionGroup{Conditions: List(Col("id", []any{}))},
			expected: "WHERE FALSE",
		},
		{
			name:     "not in",
			group:    ConditionGroup{Conditions: List(Col("id", NotIn(1, 2)))},
			expected: "WHERE `id` NOT IN (1, 2)",
		},
		{
			name:     "bytes compare as value not list",
			group:    ConditionGroup{Conditions: List(Col("hash", []byte{0xab}))},
			expected: "WHERE `hash` = X'ab'",
		},
		{
			name:     "sql comparator expands column token",
			group:    ConditionGroup{Conditions: List(Col("name", SQL("LOWER(?:column) LIKE ?:value", "%jane%")))},
			expected: "WHERE LOWER(`name`) LIKE '%jane%'",
		},
		{
			name:     "literal with placeholders",
			group:    ConditionGroup{Conditions: List(Literal("?? > ?", "age", 18))},
			expected: "WHERE `age` > 18",
		},
		{
			name:     "multiple conditions joined with and",
			group:    ConditionGroup{Conditions: List(Col("a", 1), Col("b", 2))},
			expected: "WHERE `a` = 1 AND `b` = 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Where(MySQL, []ConditionGroup{tt.group}, nil))
		})
	}
}

func TestWhere_Logical(t *testing.T) {
	tests := []struct {
		name     string
		cond     Condition
		expected string
	}{
		{
			name:     "or",
			cond:     Or(List(Col("a", 1)), List(Col("b", 2))),
			expected: "WHERE ((`a` = 1) OR (`b` = 2))",
		},
		{
			name:     "and",
			cond:     And(List(Col("a", 1)), List(Col("b", 2))),
			expected: "WHERE ((`a` = 1) AND (`b` = 2))",
		},
		{
			name:     "not or",
			cond:     NotOr(List(Col("a", 1)), List(Col("b", 2))),
			expected: "WHERE NOT ((`a` = 1) OR (`b` = 2))",
		},
		{
			name:     "not and",
			cond:     NotAnd(List(Col("a", 1)), List(Col("b", 2))),
			expected: "WHERE NOT ((`a` = 1) AND (`b` = 2))",
		},
		{
			name:     "not",
			cond:     Not(List(Col("a", 1))),
			expected: "WHERE NOT ((`a` = 1))",
		},
		{
			name:     "multi-condition branch",
			cond:     Or(List(Col("a", 1), Col("b", 2)), List(Col("c", 3))),
			expected: "WHERE ((`a` = 1 AND `b` = 2) OR (`c` = 3))",
		},
		{
			name:     "nested combinators",
			cond:     Or(List(And(List(Col("a", 1)), List(Col("b", 2)))), List(Col("c", 3))),
			expected: "WHERE ((((`a` = 1) AND (`b` = 2))) OR (`c` = 3))",
		},
		{
			name:     "empty branches collapse",
			cond:     Or(),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := []ConditionGroup{{Conditions: List(tt.cond)}}
			assert.Equal(t, tt.expected, Where(MySQL, groups, nil))
		})
	}
}

func TestWhere_QualifiedGroups(t *testing.T) {
	// a lone alias-qualified group is parenthesized
	one := []ConditionGroup{{Table: "t1", Conditions: List(Col("a", 1))}}
	assert.Equal(t, "WHERE (`t1`.`a` = 1)", Where(MySQL, one, nil))

	// multiple groups are each parenthesized and joined with AND
	two := []ConditionGroup{
		{Table: "t1", Conditions: List(Col("a", 1))},
		{Table: "t2", Conditions: List(Col("b", 2))},
	}
	assert.Equal(t, "WHERE (`t1`.`a` = 1) AND (`t2`.`b` = 2)", Where(MySQL, two, nil))

	mixed := []ConditionGroup{
		{Conditions: List(Col("age", Between(1, 5)))},
		{Table: "t2", Conditions: List(Col("b", 2))},
	}
	assert.Equal(t, "WHERE (`age` BETWEEN 1 AND 5) AND (`t2`.`b` = 2)", Where(MySQL, mixed, nil))
}

func TestWhere_Exists(t *testing.T) {
	groups := []ConditionGroup{{
		Conditions: List(Col("name", "fido")),
		Exists: &Exists{
			Table:       "person_pets",
			Link:        "t1",
			Columns:     []string{"person_id"},
			LinkColumns: []string{"id"},
		},
	}}

	expected := "WHERE EXISTS (SELECT * FROM `person_pets` WHERE " +
		"`person_pets`.`person_id` = `t1`.`id` AND `name` = 'fido')"
	assert.Equal(t, expected, Where(MySQL, groups, nil))
}

func TestWhere_ExistsCompositeKey(t *testing.T) {
	groups := []ConditionGroup{{
		Exists: &Exists{
			Table:       "link",
			Link:        "t1",
			Columns:     []string{"a", "b"},
			LinkColumns: []string{"x", "y"},
		},
	}}

	expected := "WHERE EXISTS (SELECT * FROM `link` WHERE " +
		"`link`.`a` = `t1`.`x` AND `link`.`b` = `t1`.`y`)"
	assert.Equal(t, expected, Where(MySQL, groups, nil))
}

func TestWhere_MSSQLQuoting(t *testing.T) {
	groups := []ConditionGroup{{Table: "t1", Conditions: List(Col("a", 1))}}
	assert.Equal(t, "WHERE ([t1].[a] = 1)", Where(MSSQL, groups, nil))
}
