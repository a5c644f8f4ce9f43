package store

import (
	"fmt"
	"strings"
)

// WhereBuilder accumulates AND-combined SQL conditions with positional
// placeholders. Conditions with empty values are skipped so callers can pass
// optional filters straight through.
type WhereBuilder struct {
	conditions []string
	args       []any
	argIndex   int
}

// NewWhereBuilder creates an empty builder starting at placeholder $1.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{argIndex: 1}
}

// Add appends "expr $n" for a non-nil, non-empty value. expr carries the
// column and operator, e.g. "t.account_id =" or "t.date >=".
func (wb *WhereBuilder) Add(expr string, value any) *WhereBuilder {
	if value == nil {
		return wb
	}
	if s, ok := value.(string); ok && s == "" {
		return wb
	}
	wb.conditions = append(wb.conditions, fmt.Sprintf("%s $%d", expr, wb.argIndex))
	wb.args = append(wb.args, value)
	wb.argIndex++
	return wb
}

// Build returns the WHERE clause (with a leading space) and its arguments,
// or ("", nil) when no conditions were added.
func (wb *WhereBuilder) Build() (string, []any) {
	if len(wb.conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wb.conditions, " AND "), wb.args
}

// NextArg reserves the next placeholder for arguments appended outside the
// WHERE clause (LIMIT, OFFSET).
func (wb *WhereBuilder) NextArg() int {
	n := wb.argIndex
	wb.argIndex++
	return n
}
