// Package userstore provides create/read/update/delete access to user records
// kept in a document store.
//
// A Repository owns one store handle for its whole lifetime: Open acquires it,
// every operation reuses it, and Close releases it. Operations block until the
// store answers and return store errors unchanged.
//
// Lookups report absence as a normal outcome:
//   - GetUserByID and GetUserByName return a nil *User when nothing matches
//   - updates and deletes return a count of 0 when nothing matches
//
// Only malformed identifiers (ErrInvalidIdentifier) and an unreachable store
// (ErrConnectionFailure) are errors of this package's own.
//
// Usage example:
//
//	repo, err := userstore.Open(ctx, userstore.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer repo.Close(ctx)
//
//	id, err := repo.CreateUser(ctx, "Alice", "alice@example.com", 25)
//	if err != nil {
//	    return err
//	}
//	user, err := repo.GetUserByID(ctx, id)
package userstore

import (
	"context"
)

// Repository exposes the user operations over a single collection.
// It is safe for concurrent use. Multi-record operations are atomic per
// record only: concurrent readers may observe a partially applied batch.
type Repository struct {
	coll       Collection[User]
	obs        *ObservabilityConfig
	system     string
	collection string
}

// NewRepository creates a Repository over coll. Closing the repository closes coll.
func NewRepository(coll Collection[User], opts ...Option) *Repository {
	r := &Repository{
		coll:   coll,
		obs:    defaultObservabilityConfig(),
		system: "unknown",
	}

	switch c := coll.(type) {
	case *MongoCollection[User]:
		r.system = "mongodb"
		r.collection = c.Name()
	case *SQLCollection[User]:
		r.system = c.session.dialect.Name()
		r.collection = c.Name()
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateUser inserts a user and returns the identifier the store assigned,
// in its text form. No duplicate check is performed.
func (r *Repository) CreateUser(ctx context.Context, name, email string, age int) (string, error) {
	ctx, op := r.begin(ctx, "CreateUser")

	user := &User{Name: name, Email: email, Age: age}
	id, err := r.coll.InsertOne(ctx, user)
	op.end(ctx, 1, err)
	if err != nil {
		return "", err
	}
	return id.Hex(), nil
}

// GetUserByID returns the user with the given identifier, or nil if there is none.
// Malformed id text fails with ErrInvalidIdentifier before the store is contacted.
func (r *Repository) GetUserByID(ctx context.Context, id string) (*User, error) {
	ctx, op := r.begin(ctx, "GetUserByID")
	oid, err := ParseID(id)
	if err != nil {
		op.end(ctx, 0, err)
		return nil, err
	}

	user, err := r.coll.FindOne(ctx, Users.ID.Eq(oid))
	op.end(ctx, found(user), err)
	return user, err
}

// GetUserByName returns a user with the given name, or nil if there is none.
// When several users share the name, which one is returned is up to the store.
func (r *Repository) GetUserByName(ctx context.Context, name string) (*User, error) {
	ctx, op := r.begin(ctx, "GetUserByName")
	user, err := r.coll.FindOne(ctx, Users.Name.Eq(name))
	op.end(ctx, found(user), err)
	return user, err
}

// GetUsersByMinAge returns every user with age >= minAge in the store's natural
// order. The result is empty, never nil, when nothing matches.
func (r *Repository) GetUsersByMinAge(ctx context.Context, minAge int) ([]*User, error) {
	ctx, op := r.begin(ctx, "GetUsersByMinAge")
	users, err := r.coll.Find(ctx, Users.Age.Gte(minAge))
	op.end(ctx, int64(len(users)), err)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserEmail sets the email of the first user named name and leaves its
// other fields untouched. It returns 1 if a record was modified and 0 otherwise,
// including when the email already had that value.
func (r *Repository) UpdateUserEmail(ctx context.Context, name, email string) (int64, error) {
	ctx, op := r.begin(ctx, "UpdateUserEmail")
	n, err := r.coll.UpdateOne(ctx, Users.Name.Eq(name), Users.Email.Set(email))
	op.end(ctx, n, err)
	return n, err
}

// IncreaseAgeForAll adds increment to the age of every user with age >= minAge
// and returns the number of modified records. increment may be negative and
// ages are not clamped.
func (r *Repository) IncreaseAgeForAll(ctx context.Context, minAge, increment int) (int64, error) {
	ctx, op := r.begin(ctx, "IncreaseAgeForAll")
	n, err := r.coll.UpdateMany(ctx, Users.Age.Gte(minAge), Users.Age.Inc(increment))
	op.end(ctx, n, err)
	return n, err
}

// DeleteUser removes the user with the given identifier and returns 1, or 0 if
// there was none. Malformed id text fails with ErrInvalidIdentifier.
func (r *Repository) DeleteUser(ctx context.Context, id string) (int64, error) {
	ctx, op := r.begin(ctx, "DeleteUser")
	oid, err := ParseID(id)
	if err != nil {
		op.end(ctx, 0, err)
		return 0, err
	}

	n, err := r.coll.DeleteOne(ctx, Users.ID.Eq(oid))
	op.end(ctx, n, err)
	return n, err
}

// DeleteUsersYoungerThan removes every user with age < maxAge and returns the
// number removed.
func (r *Repository) DeleteUsersYoungerThan(ctx context.Context, maxAge int) (int64, error) {
	ctx, op := r.begin(ctx, "DeleteUsersYoungerThan")
	n, err := r.coll.DeleteMany(ctx, Users.Age.Lt(maxAge))
	op.end(ctx, n, err)
	return n, err
}

// Clear removes every user and returns the number removed.
func (r *Repository) Clear(ctx context.Context) (int64, error) {
	ctx, op := r.begin(ctx, "Clear")
	n, err := r.coll.DeleteMany(ctx, nil)
	op.end(ctx, n, err)
	return n, err
}

// Close releases the store handle. The repository must not be used afterwards.
func (r *Repository) Close(ctx context.Context) error {
	return r.coll.Close(ctx)
}

func found(u *User) int64 {
	if u == nil {
		return 0
	}
	return 1
}
