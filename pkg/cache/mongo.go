package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOptions configures [NewMongoCache].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// MongoCache stores entries as {_id, data, expires_at} documents. A TTL
// index on expires_at lets the server purge old entries; Get also treats
// expired documents as misses since the TTL monitor runs only once a minute.
type MongoCache struct {
	client *mongo.Client
	coll   *mongo.Collection
	now    func() time.Time
}

type mongoEntry struct {
	Key       string     `bson:"_id"`
	Data      []byte     `bson:"data"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

// NewMongoCache connects to MongoDB, verifies the connection and ensures
// the TTL index exists.
func NewMongoCache(ctx context.Context, opts MongoOptions) (*MongoCache, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create ttl index: %w", err)
	}
	return &MongoCache{client: client, coll: coll, now: time.Now}, nil
}

// Get implements Cache.
func (c *MongoCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry mongoEntry
	err := c.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, c.classify("mongo find", err)
	}
	if entry.ExpiresAt != nil && c.now().After(*entry.ExpiresAt) {
		_, _ = c.coll.DeleteOne(ctx, bson.M{"_id": key})
		return nil, false, nil
	}
	return entry.Data, true, nil
}

// Set implements Cache. A ttl of zero stores without expiry.
func (c *MongoCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := mongoEntry{Key: key, Data: data}
	if ttl > 0 {
		exp := c.now().Add(ttl).UTC()
		entry.ExpiresAt = &exp
	}
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": key}, entry, options.Replace().SetUpsert(true))
	return c.classify("mongo upsert", err)
}

// Delete implements Cache.
func (c *MongoCache) Delete(ctx context.Context, key string) error {
	_, err := c.coll.DeleteOne(ctx, bson.M{"_id": key})
	return c.classify("mongo delete", err)
}

// Close disconnects the client.
func (c *MongoCache) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func (c *MongoCache) classify(op string, err error) error {
	if err != nil && (mongo.IsNetworkError(err) || mongo.IsTimeout(err)) {
		return Retryable(fmt.Errorf("%s: %w: %v", op, ErrNetwork, err))
	}
	return classify(op, err)
}

var _ Cache = (*MongoCache)(nil)
