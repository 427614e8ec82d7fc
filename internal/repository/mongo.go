package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection = "users"
	todosCollection = "todos"

	connectTimeout = 10 * time.Second
)

// DB wraps the Mongo client and the application database. It is constructed
// once in main and passed to the repositories; there is no package-level
// connection state.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewDB(ctx context.Context, uri, name string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &DB{client: client, db: client.Database(name)}, nil
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Ping reports whether the store is reachable; used by the health endpoint.
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *DB) users() *mongo.Collection {
	return d.db.Collection(usersCollection)
}

func (d *DB) todos() *mongo.Collection {
	return d.db.Collection(todosCollection)
}

// EnsureIndexes creates the unique email index and the todo query indexes.
// Idempotent; called once at startup.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	_, err := d.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	_, err = d.todos().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "dueDate", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create todos indexes: %w", err)
	}
	return nil
}
