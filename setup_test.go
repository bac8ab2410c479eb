package userstore_test

import (
	"context"
	"os"
	"testing"

	"github.com/arllen133/userstore"
	"github.com/stretchr/testify/require"
)

// setupRepository opens an in-memory SQLite repository, or a MongoDB one in a
// throwaway collection when USERSTORE_TEST_MONGO_URI is set.
func setupRepository(t *testing.T, opts ...userstore.Option) *userstore.Repository {
	t.Helper()

	cfg := userstore.DefaultConfig()
	if uri := os.Getenv("USERSTORE_TEST_MONGO_URI"); uri != "" {
		cfg.Backend = userstore.BackendMongo
		cfg.MongoURI = uri
		cfg.Collection = "users_test_" + userstore.NewID().Hex()
	} else {
		cfg.Backend = userstore.BackendSQLite
		cfg.SQLiteDSN = ":memory:"
	}

	ctx := context.Background()
	repo, err := userstore.Open(ctx, cfg, opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = repo.Clear(ctx)
		_ = repo.Close(ctx)
	})
	return repo
}
