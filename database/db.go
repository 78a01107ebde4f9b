package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB wraps the MongoDB connection and the collections the tracker uses.
type DB struct {
	client *mongo.Client
	name   string
}

// Connect dials MongoDB, pings it, and returns a handle. The caller owns
// the handle and must Disconnect on shutdown.
func Connect(uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return &DB{client: client, name: dbName}, nil
}

// Users returns the user accounts collection.
func (d *DB) Users() *mongo.Collection {
	return d.client.Database(d.name).Collection("users")
}

// Reports returns the bug reports collection.
func (d *DB) Reports() *mongo.Collection {
	return d.client.Database(d.name).Collection("reports")
}

// Disconnect closes the connection.
func (d *DB) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.client.Disconnect(ctx)
}
