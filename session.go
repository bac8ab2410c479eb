package userstore

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Executor defines the database operations the SQL backend uses.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// Session manages the SQL database connection.
type Session struct {
	db       *sqlx.DB
	executor Executor
	dialect  Dialect
}

func NewSession(db *sql.DB, dialect Dialect) *Session {
	xdb := sqlx.NewDb(db, dialect.Name())
	return &Session{
		db:       xdb,
		executor: xdb,
		dialect:  dialect,
	}
}

func (s *Session) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.executor.ExecContext(ctx, query, args...)
}

func (s *Session) Select(ctx context.Context, dest any, query string, args ...any) error {
	return s.executor.SelectContext(ctx, dest, query, args...)
}

// Close closes the underlying database.
func (s *Session) Close() error {
	return s.db.Close()
}
