package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ethan-kaseff/seating-chart/pkg/observability"
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

// MongoConfig holds connection settings for a Mongo-backed store.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database name; defaults to "seating".
	Database string

	// Collection name; defaults to "events".
	Collection string
}

// MongoStore persists each event as one document in a MongoDB collection,
// with the seating document embedded as a BSON subdocument.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// eventRecord is the collection's document shape.
type eventRecord struct {
	ID        string           `bson:"_id"`
	Document  seating.Document `bson:"document"`
	UpdatedAt time.Time        `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "seating"
	}
	if cfg.Collection == "" {
		cfg.Collection = "events"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Load fetches the event's document.
func (s *MongoStore) Load(ctx context.Context, eventID string) (seating.Document, error) {
	start := time.Now()
	doc, err := s.load(ctx, eventID)
	observability.Store().OnLoad(ctx, "mongo", eventID, time.Since(start), err)
	return doc, err
}

func (s *MongoStore) load(ctx context.Context, eventID string) (seating.Document, error) {
	var rec eventRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": eventID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return seating.Document{}, ErrNotFound
	}
	if err != nil {
		return seating.Document{}, fmt.Errorf("find event: %w", err)
	}
	return rec.Document, nil
}

// Save upserts the event's document.
func (s *MongoStore) Save(ctx context.Context, eventID string, doc seating.Document) error {
	start := time.Now()
	err := s.save(ctx, eventID, doc)
	observability.Store().OnSave(ctx, "mongo", eventID, time.Since(start), err)
	return err
}

func (s *MongoStore) save(ctx context.Context, eventID string, doc seating.Document) error {
	rec := eventRecord{ID: eventID, Document: doc, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": eventID}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert event: %w", err)
	}
	return nil
}

// Delete removes the event.
func (s *MongoStore) Delete(ctx context.Context, eventID string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": eventID}); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// List returns every stored event id.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var rec struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode event id: %w", err)
		}
		ids = append(ids, rec.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return ids, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
