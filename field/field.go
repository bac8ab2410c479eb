package field

import "github.com/arllen133/userstore/clause"

// Field represents a generic field for any type.
// Use this for types that don't have a specific field type, such as identifiers.
type Field struct {
	column clause.Column
}

// Column returns the underlying column for this field
func (f Field) Column() clause.Column { return f.column }

// ColumnName implements the clause.Columnar interface
func (f Field) ColumnName() string {
	return f.column.ColumnName()
}

var _ clause.Columnar = Field{}

// WithColumn creates a new Field with the specified column name.
func (f Field) WithColumn(name string) Field {
	return Field{column: clause.Column{Name: name}}
}

// Eq creates an equality comparison expression (field = value).
func (f Field) Eq(value any) clause.Expression {
	return clause.Eq{Column: f.column, Value: value}
}

// Neq creates a not equal comparison expression (field != value).
func (f Field) Neq(value any) clause.Expression {
	return clause.Neq{Column: f.column, Value: value}
}
