// Package clause holds backend-neutral filter and update expressions.
//
// Every expression renders itself to a parameterized SQL fragment through
// Build. Document-store backends walk the same values and translate them to
// their native query language, so one filter drives both backends.
package clause

import (
	"fmt"
	"strings"
)

// Columnar defines an interface for providing a column name.
type Columnar interface {
	ColumnName() string
}

// Column names a document field or table column.
type Column struct {
	Name string
}

func (c Column) Column() Column { return c }

// ColumnName returns the field name.
func (c Column) ColumnName() string {
	return c.Name
}

var _ Columnar = Column{}

// Expression is the base interface for all filter expressions
type Expression interface {
	Build() (sql string, args []any, err error)
}

// Eq represents an equality expression (column = value)
type Eq struct {
	Column Column
	Value  any
}

func (e Eq) Build() (string, []any, error) {
	return e.Column.ColumnName() + " = ?", []any{e.Value}, nil
}

// Neq represents a not equal expression (column != value)
type Neq struct {
	Column Column
	Value  any
}

func (n Neq) Build() (string, []any, error) {
	return n.Column.ColumnName() + " <> ?", []any{n.Value}, nil
}

// Gt represents a greater than expression (column > value)
type Gt struct {
	Column Column
	Value  any
}

func (g Gt) Build() (string, []any, error) {
	return g.Column.ColumnName() + " > ?", []any{g.Value}, nil
}

// Gte represents a greater than or equal expression (column >= value)
type Gte struct {
	Column Column
	Value  any
}

func (g Gte) Build() (string, []any, error) {
	return g.Column.ColumnName() + " >= ?", []any{g.Value}, nil
}

// Lt represents a less than expression (column < value)
type Lt struct {
	Column Column
	Value  any
}

func (l Lt) Build() (string, []any, error) {
	return l.Column.ColumnName() + " < ?", []any{l.Value}, nil
}

// Lte represents a less than or equal expression (column <= value)
type Lte struct {
	Column Column
	Value  any
}

func (l Lte) Build() (string, []any, error) {
	return l.Column.ColumnName() + " <= ?", []any{l.Value}, nil
}

// And represents an AND expression. An empty And matches everything.
type And []Expression

func (a And) Build() (string, []any, error) {
	if len(a) == 0 {
		return "1 = 1", nil, nil
	}
	return join(a, " AND ")
}

// Or represents an OR expression. An empty Or matches nothing.
type Or []Expression

func (o Or) Build() (string, []any, error) {
	if len(o) == 0 {
		return "1 = 0", nil, nil
	}
	return join(o, " OR ")
}

func join(exprs []Expression, sep string) (string, []any, error) {
	sqls := make([]string, 0, len(exprs))
	var args []any

	for _, expr := range exprs {
		sql, exprArgs, err := expr.Build()
		if err != nil {
			return "", nil, err
		}
		sqls = append(sqls, "("+sql+")")
		args = append(args, exprArgs...)
	}

	return strings.Join(sqls, sep), args, nil
}

// Expr represents a custom SQL expression. It has no document-store form.
type Expr struct {
	SQL  string
	Vars []any
}

func (e Expr) Build() (string, []any, error) {
	return e.SQL, e.Vars, nil
}

// Update is a single field-level modification. Fields not named by an
// Update are left untouched.
type Update interface {
	Expression

	// Target is the modified field.
	Target() Column

	// Operand is the right-hand side of the SQL assignment.
	Operand() (string, []any)

	// Changes is true for rows the update would actually alter.
	Changes() Expression
}

// Assignment sets a field to a value ($set).
type Assignment struct {
	Column Column
	Value  any
}

func (a Assignment) Build() (string, []any, error) {
	return a.Column.ColumnName() + " = ?", []any{a.Value}, nil
}

func (a Assignment) Target() Column { return a.Column }

func (a Assignment) Operand() (string, []any) { return "?", []any{a.Value} }

func (a Assignment) Changes() Expression {
	return Expr{SQL: a.Column.ColumnName() + " IS NOT ?", Vars: []any{a.Value}}
}

// Increment adds a signed amount to a numeric field ($inc).
type Increment struct {
	Column Column
	Value  any
}

func (i Increment) Build() (string, []any, error) {
	sql, args := i.Operand()
	return i.Column.ColumnName() + " = " + sql, args, nil
}

func (i Increment) Target() Column { return i.Column }

func (i Increment) Operand() (string, []any) {
	return i.Column.ColumnName() + " + ?", []any{i.Value}
}

func (i Increment) Changes() Expression {
	return Expr{SQL: "? <> 0", Vars: []any{i.Value}}
}

var (
	_ Update = Assignment{}
	_ Update = Increment{}
)

// Changed reports the rows that at least one of updates would alter.
func Changed(updates ...Update) Expression {
	or := make(Or, len(updates))
	for i, u := range updates {
		or[i] = u.Changes()
	}
	return or
}

// OrderByColumn represents an ORDER BY column
type OrderByColumn struct {
	Column Column
	Desc   bool
}

func (o OrderByColumn) Build() (string, []any, error) {
	sql := o.Column.ColumnName()
	if o.Desc {
		sql += " DESC"
	}
	return sql, nil, nil
}

// ErrUnsupported is returned by backends that cannot translate an expression.
type ErrUnsupported struct {
	Expr any
}

func (e ErrUnsupported) Error() string {
	return fmt.Sprintf("clause: unsupported expression %T", e.Expr)
}
