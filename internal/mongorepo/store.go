package mongorepo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DataStore defines the collection operations used by Repo.
type DataStore interface {
	BulkWrite(
		ctx context.Context,
		models []mongo.WriteModel,
		opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
	InsertOne(
		ctx context.Context,
		document interface{},
		opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// CollectionProvider defines the interface for obtaining a collection.
type CollectionProvider interface {
	Collection(name string) DataStore
}

// Collection adapts *mongo.Collection to DataStore.
type Collection struct {
	*mongo.Collection
}

// BulkWrite performs a bulk write operation.
func (c *Collection) BulkWrite(
	ctx context.Context,
	models []mongo.WriteModel,
	opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error) {
	result, err := c.Collection.BulkWrite(ctx, models, opts...)
	if err != nil {
		return nil, fmt.Errorf("bulk write %s: %w", c.Name(), err)
	}

	return result, nil
}

// InsertOne inserts a single document.
func (c *Collection) InsertOne(
	ctx context.Context,
	document interface{},
	opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	result, err := c.Collection.InsertOne(ctx, document, opts...)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", c.Name(), err)
	}

	return result, nil
}

// Provider adapts a *mongo.Database to CollectionProvider.
type Provider struct {
	db *mongo.Database
}

// NewProvider returns Provider over the named database.
func NewProvider(client *mongo.Client, database string) *Provider {
	return &Provider{db: client.Database(database)}
}

// Collection returns a DataStore for the given collection name.
func (p *Provider) Collection(name string) DataStore {
	return &Collection{p.db.Collection(name)}
}

// Connect establishes a connection to MongoDB and checks it.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	l := zerolog.Ctx(ctx)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	l.Info().Msg("connected to MongoDB")

	return client, nil
}
