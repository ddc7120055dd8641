package database

import (
	"fmt"
	"strings"
)

// WhereBuilder accumulates equality conditions and renders them as a
// positional-placeholder WHERE clause.
type WhereBuilder struct {
	conditions []string
	args       []any
	argIndex   int
}

// NewWhereBuilder returns an empty builder whose first placeholder is $1.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{argIndex: 1}
}

// Add appends a "column = $n" condition.
func (wb *WhereBuilder) Add(column string, value any) {
	wb.conditions = append(wb.conditions, fmt.Sprintf("%s = $%d", column, wb.argIndex))
	wb.args = append(wb.args, value)
	wb.argIndex++
}

// Build renders the accumulated conditions. With no conditions it returns an
// empty clause and nil args; otherwise the clause starts with " WHERE " and
// joins conditions with AND.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wb.conditions, " AND "), wb.args
}

// NextArgIndex returns the placeholder number the next argument would get.
// Useful for appending LIMIT/OFFSET after the built clause.
func (wb *WhereBuilder) NextArgIndex() int {
	return wb.argIndex
}
