// internal/output/mongodb.go
package output

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDBWriter writes records to a MongoDB collection
type MongoDBWriter struct {
	client     *mongo.Client
	collection *mongo.Collection
	timeout    time.Duration
}

// MongoDBOptions configures the MongoDB writer
type MongoDBOptions struct {
	ConnectionString string
	Database         string
	Collection       string
	Timeout          time.Duration
}

// NewMongoDBWriter creates a MongoDB writer and verifies connectivity
func NewMongoDBWriter(opts MongoDBOptions) (*MongoDBWriter, error) {
	if opts.ConnectionString == "" {
		return nil, fmt.Errorf("MongoDB connection string is required")
	}
	if opts.Database == "" || opts.Collection == "" {
		return nil, fmt.Errorf("MongoDB database and collection are required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.ConnectionString))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoDBWriter{
		client:     client,
		collection: client.Database(opts.Database).Collection(opts.Collection),
		timeout:    opts.Timeout,
	}, nil
}

// Write inserts the records as documents, annotated with an ingestion
// timestamp
func (w *MongoDBWriter) Write(records []map[string]interface{}) error {
	if len(records) == 0 {
		return nil
	}

	documents := make([]interface{}, 0, len(records))
	now := time.Now()
	for _, record := range records {
		doc := bson.M{"ingested_at": now}
		for key, value := range record {
			doc[key] = value
		}
		documents = append(documents, doc)
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	if _, err := w.collection.InsertMany(ctx, documents); err != nil {
		return fmt.Errorf("failed to insert documents: %w", err)
	}
	return nil
}

// Close disconnects the client
func (w *MongoDBWriter) Close() error {
	if w.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	err := w.client.Disconnect(ctx)
	w.client = nil
	return err
}
