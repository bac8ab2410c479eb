package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/arllen133/userstore/clause"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoCollection is the MongoDB backend of Collection.
type MongoCollection[T any] struct {
	coll   *mongo.Collection
	schema Schema[T]
	client *mongo.Client // set only when the collection owns its client
}

var _ Collection[User] = (*MongoCollection[User])(nil)

// NewMongoCollection wraps an existing driver collection. Close does not
// disconnect the client behind it.
func NewMongoCollection[T any](coll *mongo.Collection) *MongoCollection[T] {
	return &MongoCollection[T]{
		coll:   coll,
		schema: LoadSchema[T](),
	}
}

// OpenMongoCollection connects to the server described by cfg, verifies the
// connection with a ping and returns a collection that owns the client.
// Failures are reported as ErrConnectionFailure.
func OpenMongoCollection[T any](ctx context.Context, cfg Config) (*MongoCollection[T], error) {
	client, err := connectMongo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	name := cfg.Collection
	if name == "" {
		name = LoadSchema[T]().TableName()
	}

	c := NewMongoCollection[T](client.Database(cfg.Database).Collection(name))
	c.client = client
	return c, nil
}

func connectMongo(ctx context.Context, cfg Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, mongoClientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailure, err)
	}
	return client, nil
}

// mongoClientOptions builds the driver options for cfg. A configured URI is
// used as given, credentials included; MongoUsername and MongoPassword apply
// only to the host/port address.
func mongoClientOptions(cfg Config) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(cfg.MongoAddress()).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	if cfg.MongoURI == "" && cfg.MongoUsername != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.MongoUsername,
			Password: cfg.MongoPassword,
		})
	}
	return opts
}

// Name returns the collection name.
func (c *MongoCollection[T]) Name() string { return c.coll.Name() }

func (c *MongoCollection[T]) InsertOne(ctx context.Context, m *T) (ID, error) {
	id := NewID()
	c.schema.SetID(m, id)

	if _, err := c.coll.InsertOne(ctx, m); err != nil {
		return NilID, err
	}
	return id, nil
}

func (c *MongoCollection[T]) FindOne(ctx context.Context, filter clause.Expression) (*T, error) {
	f, err := toFilter(filter)
	if err != nil {
		return nil, err
	}

	var m T
	if err := c.coll.FindOne(ctx, f).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (c *MongoCollection[T]) Find(ctx context.Context, filter clause.Expression) ([]*T, error) {
	f, err := toFilter(filter)
	if err != nil {
		return nil, err
	}

	cur, err := c.coll.Find(ctx, f)
	if err != nil {
		return nil, err
	}

	results := make([]*T, 0)
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = make([]*T, 0)
	}
	return results, nil
}

func (c *MongoCollection[T]) UpdateOne(ctx context.Context, filter clause.Expression, updates ...clause.Update) (int64, error) {
	f, u, err := toFilterAndUpdate(filter, updates)
	if err != nil {
		return 0, err
	}

	res, err := c.coll.UpdateOne(ctx, f, u)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (c *MongoCollection[T]) UpdateMany(ctx context.Context, filter clause.Expression, updates ...clause.Update) (int64, error) {
	f, u, err := toFilterAndUpdate(filter, updates)
	if err != nil {
		return 0, err
	}

	res, err := c.coll.UpdateMany(ctx, f, u)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (c *MongoCollection[T]) DeleteOne(ctx context.Context, filter clause.Expression) (int64, error) {
	f, err := toFilter(filter)
	if err != nil {
		return 0, err
	}

	res, err := c.coll.DeleteOne(ctx, f)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (c *MongoCollection[T]) DeleteMany(ctx context.Context, filter clause.Expression) (int64, error) {
	f, err := toFilter(filter)
	if err != nil {
		return 0, err
	}

	res, err := c.coll.DeleteMany(ctx, f)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Close disconnects the client if this collection opened it.
func (c *MongoCollection[T]) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Disconnect(ctx)
}

// toFilter translates a clause expression into a MongoDB query document.
func toFilter(expr clause.Expression) (bson.D, error) {
	switch e := expr.(type) {
	case nil:
		return bson.D{}, nil
	case clause.Eq:
		return bson.D{{Key: e.Column.Name, Value: e.Value}}, nil
	case clause.Neq:
		return operator(e.Column, "$ne", e.Value), nil
	case clause.Gt:
		return operator(e.Column, "$gt", e.Value), nil
	case clause.Gte:
		return operator(e.Column, "$gte", e.Value), nil
	case clause.Lt:
		return operator(e.Column, "$lt", e.Value), nil
	case clause.Lte:
		return operator(e.Column, "$lte", e.Value), nil
	case clause.And:
		if len(e) == 0 {
			return bson.D{}, nil
		}
		parts, err := toFilters(e)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: "$and", Value: parts}}, nil
	case clause.Or:
		if len(e) == 0 {
			// $or rejects an empty array; no stored document lacks _id.
			return bson.D{{Key: "_id", Value: bson.D{{Key: "$exists", Value: false}}}}, nil
		}
		parts, err := toFilters(e)
		if err != nil {
			return nil, err
		}
		return bson.D{{Key: "$or", Value: parts}}, nil
	default:
		return nil, clause.ErrUnsupported{Expr: expr}
	}
}

func toFilters(exprs []clause.Expression) (bson.A, error) {
	parts := make(bson.A, 0, len(exprs))
	for _, expr := range exprs {
		f, err := toFilter(expr)
		if err != nil {
			return nil, err
		}
		parts = append(parts, f)
	}
	return parts, nil
}

func operator(col clause.Column, op string, value any) bson.D {
	return bson.D{{Key: col.Name, Value: bson.D{{Key: op, Value: value}}}}
}

// toUpdate groups updates by MongoDB update operator.
func toUpdate(updates []clause.Update) (bson.D, error) {
	if len(updates) == 0 {
		return nil, errors.New("userstore: update requires at least one field")
	}

	var set, inc bson.D
	for _, u := range updates {
		switch v := u.(type) {
		case clause.Assignment:
			set = append(set, bson.E{Key: v.Column.Name, Value: v.Value})
		case clause.Increment:
			inc = append(inc, bson.E{Key: v.Column.Name, Value: v.Value})
		default:
			return nil, clause.ErrUnsupported{Expr: u}
		}
	}

	doc := bson.D{}
	if len(set) > 0 {
		doc = append(doc, bson.E{Key: "$set", Value: set})
	}
	if len(inc) > 0 {
		doc = append(doc, bson.E{Key: "$inc", Value: inc})
	}
	return doc, nil
}

func toFilterAndUpdate(filter clause.Expression, updates []clause.Update) (bson.D, bson.D, error) {
	f, err := toFilter(filter)
	if err != nil {
		return nil, nil, err
	}
	u, err := toUpdate(updates)
	if err != nil {
		return nil, nil, err
	}
	return f, u, nil
}
