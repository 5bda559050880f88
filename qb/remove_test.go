package qb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemove_Build(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *RemoveBuilder
		expected string
	}{
		{
			name: "bare delete",
			build: func() *RemoveBuilder {
				return NewRemove(MySQL, nil).From("p")
			},
			expected: "DELETE FROM `p`",
		},
		{
			name: "where",
			build: func() *RemoveBuilder {
				return NewRemove(MySQL, nil).From("p").Where(Col("id", 1))
			},
			expected: "DELETE FROM `p` WHERE `id` = 1",
		},
		{
			name: "order and limit",
			build: func() *RemoveBuilder {
				return NewRemove(MySQL, nil).From("p").Order("created_at", "Z").Limit(10)
			},
			expected: "DELETE FROM `p` ORDER BY `created_at` DESC LIMIT 10",
		},
		{
			name: "offset",
			build: func() *RemoveBuilder {
				return NewRemove(MySQL, nil).From("p").Limit(10).Offset(5)
			},
			expected: "DELETE FROM `p` LIMIT 10 OFFSET 5",
		},
		{
			name: "mssql top",
			build: func() *RemoveBuilder {
				return NewRemove(MSSQL, nil).From("p").Limit(2).Where(Col("id", 1))
			},
			expected: "DELETE TOP 2 FROM [p] WHERE [id] = 1",
		},
		{
			name: "qualified where group",
			build: func() *RemoveBuilder {
				return NewRemove(MySQL, nil).From("p").Where("p", Col("id", 1))
			},
			expected: "DELETE FROM `p` WHERE (`p`.`id` = 1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, err := tt.build().Build()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sql)
		})
	}
}

func TestRemove_Errors(t *testing.T) {
	_, err := NewRemove(MySQL, nil).Build()
	assert.Error(t, err)

	_, err = NewRemove(MySQL, nil).From("p").Where(42).Build()
	assert.Error(t, err)
}
