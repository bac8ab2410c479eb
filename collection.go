package userstore

import (
	"context"

	"github.com/arllen133/userstore/clause"
)

// Collection is the document-store surface the repository is written against.
// A nil filter matches every record. Single-record writes are atomic; the
// *Many variants give no cross-record atomicity.
type Collection[T any] interface {
	// InsertOne stores m under a freshly assigned identifier, sets that
	// identifier on m and returns it.
	InsertOne(ctx context.Context, m *T) (ID, error)

	// FindOne returns the first match in natural order, or nil if none.
	FindOne(ctx context.Context, filter clause.Expression) (*T, error)

	// Find returns every match in natural order.
	Find(ctx context.Context, filter clause.Expression) ([]*T, error)

	// UpdateOne applies updates to the first match and returns the number
	// of records actually modified (0 or 1).
	UpdateOne(ctx context.Context, filter clause.Expression, updates ...clause.Update) (int64, error)

	// UpdateMany applies updates to every match and returns the number of
	// records actually modified.
	UpdateMany(ctx context.Context, filter clause.Expression, updates ...clause.Update) (int64, error)

	// DeleteOne removes the first match and returns 0 or 1.
	DeleteOne(ctx context.Context, filter clause.Expression) (int64, error)

	// DeleteMany removes every match and returns the count.
	DeleteMany(ctx context.Context, filter clause.Expression) (int64, error)

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}
