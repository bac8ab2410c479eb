package field

import "github.com/arllen133/userstore/clause"

// String represents a text field.
type String struct {
	column clause.Column
}

// Column returns the underlying column for this field
func (s String) Column() clause.Column { return s.column }

// ColumnName implements the clause.Columnar interface
func (s String) ColumnName() string {
	return s.column.ColumnName()
}

var _ clause.Columnar = String{}

// WithColumn creates a new String field with the specified column name.
func (s String) WithColumn(name string) String {
	return String{column: clause.Column{Name: name}}
}

// Eq creates an equality comparison expression (field = value).
func (s String) Eq(value string) clause.Expression {
	return clause.Eq{Column: s.column, Value: value}
}

// Neq creates a not equal comparison expression (field != value).
func (s String) Neq(value string) clause.Expression {
	return clause.Neq{Column: s.column, Value: value}
}

// Set creates a $set update (field = value).
func (s String) Set(val string) clause.Assignment {
	return clause.Assignment{Column: s.column, Value: val}
}
