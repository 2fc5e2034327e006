package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/shopcart/internal/cart"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the part of *mongo.Collection the slot backend needs.
type Collection interface {
	FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter any, update any, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	DeleteMany(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

type slotDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// Mongo stores one document per slot, keyed by the slot key.
type Mongo struct {
	collection Collection
	pinger     func(context.Context) error
	now        func() time.Time
}

// NewMongo wraps a collection. ping may be nil.
func NewMongo(collection Collection, ping func(context.Context) error) *Mongo {
	return &Mongo{collection: collection, pinger: ping, now: time.Now}
}

func (m *Mongo) Read(ctx context.Context, key string) (string, error) {
	var doc slotDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", cart.ErrSlotEmpty
		}
		return "", fmt.Errorf("failed to get cart slot: %w", err)
	}
	return doc.Payload, nil
}

func (m *Mongo) Write(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{
		"payload":    value,
		"updated_at": m.now().UTC(),
	}}
	opts := options.Update().SetUpsert(true)
	if _, err := m.collection.UpdateOne(ctx, bson.M{"_id": key}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert cart slot: %w", err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete cart slot: %w", err)
	}
	return nil
}

// PurgeOlderThan deletes slot documents untouched since cutoff.
func (m *Mongo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := m.collection.DeleteMany(ctx, bson.M{"updated_at": bson.M{"$lt": cutoff.UTC()}})
	if err != nil {
		return 0, fmt.Errorf("failed to purge cart slots: %w", err)
	}
	return res.DeletedCount, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	if m.pinger == nil {
		return nil
	}
	return m.pinger(ctx)
}

var _ cart.Slot = (*Mongo)(nil)
