package userstore

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/arllen133/userstore/clause"
)

// Dialect abstracts the SQL differences the SQL backend depends on.
type Dialect interface {
	// Name returns the database/sql driver name.
	// Used for logging, metrics collection, and driver selection.
	Name() string

	// PlaceholderFormat returns the placeholder format used by the database.
	PlaceholderFormat() sq.PlaceholderFormat

	// RowKey is a column that orders rows by insertion and addresses one row.
	RowKey() clause.Column
}

// SQLiteDialect implements Dialect for SQLite 3.
type SQLiteDialect struct{}

var SQLite = SQLiteDialect{}

func (SQLiteDialect) Name() string { return "sqlite3" }

func (SQLiteDialect) PlaceholderFormat() sq.PlaceholderFormat { return sq.Question }

func (SQLiteDialect) RowKey() clause.Column { return clause.Column{Name: "rowid"} }
