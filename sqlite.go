package userstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/arllen133/userstore/clause"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// validTableName matches the table names OpenSQLCollection accepts. Table
// names are written into statements unquoted.
var validTableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TableDefiner is implemented by schemas that can create their own table.
type TableDefiner interface {
	// ColumnDefs returns one SQL column definition per stored field.
	ColumnDefs() []string
}

// SQLCollection is the embedded SQL backend of Collection. It mirrors the
// document-store semantics: identifiers are assigned on insert, results come
// back in insertion order, single-record writes touch the first match only,
// and update counts leave out records whose values did not change.
type SQLCollection[T any] struct {
	session *Session
	schema  Schema[T]
	table   string
	owned   bool
}

var _ Collection[User] = (*SQLCollection[User])(nil)

// NewSQLCollection creates a collection over the schema's table.
func NewSQLCollection[T any](session *Session) *SQLCollection[T] {
	schema := LoadSchema[T]()
	return &SQLCollection[T]{
		session: session,
		schema:  schema,
		table:   schema.TableName(),
	}
}

// OpenSQLCollection opens the SQLite database named by cfg.SQLiteDSN and
// creates the table if it does not exist. The collection owns the database.
func OpenSQLCollection[T any](ctx context.Context, cfg Config) (*SQLCollection[T], error) {
	if cfg.Collection != "" && !validTableName.MatchString(cfg.Collection) {
		return nil, fmt.Errorf("userstore: invalid table name %q", cfg.Collection)
	}

	db, err := sql.Open(SQLite.Name(), cfg.SQLiteDSN)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}
	// An in-memory database exists once per connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}

	c := NewSQLCollection[T](NewSession(db, SQLite))
	c.owned = true
	if cfg.Collection != "" {
		c.table = cfg.Collection
	}

	if err := c.CreateTable(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return c, nil
}

// Name returns the table name.
func (c *SQLCollection[T]) Name() string { return c.table }

// CreateTable creates the table if the schema implements TableDefiner.
func (c *SQLCollection[T]) CreateTable(ctx context.Context) error {
	def, ok := c.schema.(TableDefiner)
	if !ok {
		return nil
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", c.table, strings.Join(def.ColumnDefs(), ", "))
	_, err := c.session.Exec(ctx, ddl)
	return err
}

func (c *SQLCollection[T]) InsertOne(ctx context.Context, m *T) (ID, error) {
	id := NewID()
	c.schema.SetID(m, id)

	cols, vals := c.schema.InsertRow(m)
	query, args, err := sq.Insert(c.table).
		Columns(cols...).
		Values(vals...).
		PlaceholderFormat(c.session.dialect.PlaceholderFormat()).
		ToSql()
	if err != nil {
		return NilID, fmt.Errorf("userstore: failed to build sql: %w", err)
	}

	if _, err := c.session.Exec(ctx, query, args...); err != nil {
		return NilID, err
	}
	return id, nil
}

func (c *SQLCollection[T]) FindOne(ctx context.Context, filter clause.Expression) (*T, error) {
	results, err := c.find(ctx, filter, true)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (c *SQLCollection[T]) Find(ctx context.Context, filter clause.Expression) ([]*T, error) {
	return c.find(ctx, filter, false)
}

func (c *SQLCollection[T]) find(ctx context.Context, filter clause.Expression, first bool) ([]*T, error) {
	where, args, err := buildFilter(filter)
	if err != nil {
		return nil, err
	}
	order, _, err := clause.OrderByColumn{Column: c.session.dialect.RowKey()}.Build()
	if err != nil {
		return nil, err
	}

	builder := sq.Select(c.schema.SelectColumns()...).
		From(c.table).
		Where(where, args...).
		OrderBy(order).
		PlaceholderFormat(c.session.dialect.PlaceholderFormat())
	if first {
		builder = builder.Limit(1)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("userstore: failed to build sql: %w", err)
	}

	results := make([]*T, 0)
	if err := c.session.Select(ctx, &results, query, args...); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *SQLCollection[T]) UpdateOne(ctx context.Context, filter clause.Expression, updates ...clause.Update) (int64, error) {
	return c.update(ctx, filter, true, updates)
}

func (c *SQLCollection[T]) UpdateMany(ctx context.Context, filter clause.Expression, updates ...clause.Update) (int64, error) {
	return c.update(ctx, filter, false, updates)
}

func (c *SQLCollection[T]) update(ctx context.Context, filter clause.Expression, first bool, updates []clause.Update) (int64, error) {
	if len(updates) == 0 {
		return 0, errors.New("userstore: update requires at least one field")
	}

	where, args, err := c.targetRows(filter, first)
	if err != nil {
		return 0, err
	}
	changed, changedArgs, err := clause.Changed(updates...).Build()
	if err != nil {
		return 0, err
	}

	builder := sq.Update(c.table).
		Where(where, args...).
		Where(changed, changedArgs...).
		PlaceholderFormat(c.session.dialect.PlaceholderFormat())
	for _, u := range updates {
		operand, operandArgs := u.Operand()
		builder = builder.Set(u.Target().ColumnName(), sq.Expr(operand, operandArgs...))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("userstore: failed to build sql: %w", err)
	}
	return c.exec(ctx, query, args)
}

func (c *SQLCollection[T]) DeleteOne(ctx context.Context, filter clause.Expression) (int64, error) {
	return c.delete(ctx, filter, true)
}

func (c *SQLCollection[T]) DeleteMany(ctx context.Context, filter clause.Expression) (int64, error) {
	return c.delete(ctx, filter, false)
}

func (c *SQLCollection[T]) delete(ctx context.Context, filter clause.Expression, first bool) (int64, error) {
	where, args, err := c.targetRows(filter, first)
	if err != nil {
		return 0, err
	}

	query, args, err := sq.Delete(c.table).
		Where(where, args...).
		PlaceholderFormat(c.session.dialect.PlaceholderFormat()).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("userstore: failed to build sql: %w", err)
	}
	return c.exec(ctx, query, args)
}

// Close closes the database if this collection opened it.
func (c *SQLCollection[T]) Close(ctx context.Context) error {
	if !c.owned {
		return nil
	}
	return c.session.Close()
}

// targetRows returns the WHERE condition selecting the rows a write acts on.
// With first set, only the first match in insertion order qualifies.
func (c *SQLCollection[T]) targetRows(filter clause.Expression, first bool) (string, []any, error) {
	where, args, err := buildFilter(filter)
	if err != nil || !first {
		return where, args, err
	}

	key := c.session.dialect.RowKey().ColumnName()
	sub, subArgs, err := sq.Select(key).
		From(c.table).
		Where(where, args...).
		OrderBy(key).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("userstore: failed to build sql: %w", err)
	}
	return key + " IN (" + sub + ")", subArgs, nil
}

func (c *SQLCollection[T]) exec(ctx context.Context, query string, args []any) (int64, error) {
	result, err := c.session.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// buildFilter renders filter as a parenthesized condition so that it can be
// ANDed with other conditions.
func buildFilter(filter clause.Expression) (string, []any, error) {
	if filter == nil {
		filter = clause.And{}
	}
	query, args, err := filter.Build()
	if err != nil {
		return "", nil, err
	}
	return "(" + query + ")", args, nil
}
