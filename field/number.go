package field

import (
	"github.com/arllen133/userstore/clause"
	"golang.org/x/exp/constraints"
)

// Number represents a numeric field that supports both integer and float types.
// It provides type-safe range filters and arithmetic updates.
type Number[T constraints.Integer | constraints.Float] struct {
	column clause.Column
}

// Column returns the underlying column for this field
func (n Number[T]) Column() clause.Column { return n.column }

// ColumnName implements the clause.Columnar interface
func (n Number[T]) ColumnName() string {
	return n.column.ColumnName()
}

var _ clause.Columnar = Number[int]{}

// WithColumn creates a new Number field with the specified column name.
func (n Number[T]) WithColumn(name string) Number[T] {
	return Number[T]{column: clause.Column{Name: name}}
}

// Eq creates an equality comparison expression (field = value).
func (n Number[T]) Eq(value T) clause.Expression {
	return clause.Eq{Column: n.column, Value: value}
}

// Gt creates a greater than comparison expression (field > value).
func (n Number[T]) Gt(value T) clause.Expression {
	return clause.Gt{Column: n.column, Value: value}
}

// Gte creates a greater than or equal comparison expression (field >= value).
func (n Number[T]) Gte(value T) clause.Expression {
	return clause.Gte{Column: n.column, Value: value}
}

// Lt creates a less than comparison expression (field < value).
func (n Number[T]) Lt(value T) clause.Expression {
	return clause.Lt{Column: n.column, Value: value}
}

// Lte creates a less than or equal comparison expression (field <= value).
func (n Number[T]) Lte(value T) clause.Expression {
	return clause.Lte{Column: n.column, Value: value}
}

// Between matches lo <= field <= hi.
func (n Number[T]) Between(lo, hi T) clause.Expression {
	return clause.And{n.Gte(lo), n.Lte(hi)}
}

// Inc creates an $inc update (field = field + delta). Delta may be negative.
func (n Number[T]) Inc(delta T) clause.Increment {
	return clause.Increment{Column: n.column, Value: delta}
}
