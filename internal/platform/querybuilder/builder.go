// Package querybuilder assembles parameterized Postgres statements for the
// repository layer.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// sqlWriter accumulates statement text and bind arguments; placeholders
// are numbered in the order they are written.
type sqlWriter struct {
	sb   strings.Builder
	args []any
}

func (w *sqlWriter) raw(s string) {
	w.sb.WriteString(s)
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.sb.WriteString("$")
	w.sb.WriteString(strconv.Itoa(len(w.args)))
}

// bindExpr copies expr into the statement, replacing each ? with the next
// positional placeholder. Extra ? markers with no matching argument are
// left as-is.
func (w *sqlWriter) bindExpr(expr string, exprArgs []any) {
	if len(exprArgs) == 0 {
		w.raw(expr)
		return
	}

	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] == '?' && next < len(exprArgs) {
			w.bind(exprArgs[next])
			next++
			continue
		}
		w.sb.WriteByte(expr[i])
	}
}

func (w *sqlWriter) where(conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	w.raw(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			w.raw(" AND ")
		}
		c.render(w)
	}
}

func (w *sqlWriter) result() (string, []any) {
	return w.sb.String(), w.args
}

// Condition is one predicate of a WHERE clause; predicates combine with AND.
type Condition interface {
	render(w *sqlWriter)
}

type condFunc func(w *sqlWriter)

func (f condFunc) render(w *sqlWriter) { f(w) }

func Eq(column string, value any) Condition {
	return condFunc(func(w *sqlWriter) {
		w.raw(column)
		w.raw(" = ")
		w.bind(value)
	})
}

func In(column string, values []any) Condition {
	return condFunc(func(w *sqlWriter) {
		if len(values) == 0 {
			w.raw("1=0")
			return
		}
		w.raw(column)
		w.raw(" IN (")
		for i, v := range values {
			if i > 0 {
				w.raw(", ")
			}
			w.bind(v)
		}
		w.raw(")")
	})
}

func IsNull(column string) Condition {
	return condFunc(func(w *sqlWriter) {
		w.raw(column)
		w.raw(" IS NULL")
	})
}

// Expr embeds a raw SQL fragment; ? markers are rewritten to positional
// placeholders.
func Expr(expr string, args ...any) Condition {
	return condFunc(func(w *sqlWriter) {
		w.bindExpr(expr, args)
	})
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	groupBy []string
	orderBy []string
	limit   int
	offset  int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) GroupBy(parts ...string) *SelectBuilder {
	b.groupBy = append(b.groupBy, parts...)
	return b
}

func (b *SelectBuilder) OrderBy(parts ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, parts...)
	return b
}

func (b *SelectBuilder) Limit(limit int) *SelectBuilder {
	b.limit = limit
	return b
}

func (b *SelectBuilder) Offset(offset int) *SelectBuilder {
	b.offset = offset
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select columns are required")
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select table is required")
	}

	var w sqlWriter
	w.raw("SELECT ")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(" FROM ")
	w.raw(b.table)
	w.where(b.where)
	if len(b.groupBy) > 0 {
		w.raw(" GROUP BY ")
		w.raw(strings.Join(b.groupBy, ", "))
	}
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ")
		w.raw(strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.raw(" LIMIT ")
		w.raw(strconv.Itoa(b.limit))
	}
	if b.offset > 0 {
		w.raw(" OFFSET ")
		w.raw(strconv.Itoa(b.offset))
	}

	query, args := w.result()
	return query, args, nil
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var w sqlWriter
	w.raw("INSERT INTO ")
	w.raw(b.table)
	w.raw(" (")
	w.raw(strings.Join(b.columns, ", "))
	w.raw(") VALUES ")

	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			w.raw(", ")
		}
		w.raw("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				w.raw(", ")
			}
			w.bind(value)
		}
		w.raw(")")
	}

	if b.suffix != "" {
		w.raw(" ")
		w.bindExpr(b.suffix, nil)
	}

	query, args := w.result()
	return query, args, nil
}

type assignment struct {
	column string
	value  any
	expr   string
	args   []any
	isExpr bool
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, args: args, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}

	var w sqlWriter
	w.raw("UPDATE ")
	w.raw(b.table)
	w.raw(" SET ")
	for i, set := range b.sets {
		if i > 0 {
			w.raw(", ")
		}
		w.raw(set.column)
		w.raw(" = ")
		if set.isExpr {
			w.bindExpr(set.expr, set.args)
			continue
		}
		w.bind(set.value)
	}
	w.where(b.where)

	query, args := w.result()
	return query, args, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build an unconditioned DELETE.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete conditions are required")
	}

	var w sqlWriter
	w.raw("DELETE FROM ")
	w.raw(b.table)
	w.where(b.where)

	query, args := w.result()
	return query, args, nil
}
