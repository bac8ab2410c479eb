package userstore

import (
	"context"
	"fmt"
)

// Open connects to the backend selected by cfg.Backend and returns a
// Repository that owns the connection.
//
// Supported backends:
//
//	"mongo"  - MongoDB at cfg.MongoAddress() (default)
//	"sqlite" - SQLite database at cfg.SQLiteDSN
func Open(ctx context.Context, cfg Config, opts ...Option) (*Repository, error) {
	var (
		coll Collection[User]
		err  error
	)

	switch cfg.Backend {
	case BackendMongo, "":
		coll, err = OpenMongoCollection[User](ctx, cfg)
	case BackendSQLite:
		coll, err = OpenSQLCollection[User](ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store backend: %q (supported: mongo, sqlite)", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}

	return NewRepository(coll, opts...), nil
}
