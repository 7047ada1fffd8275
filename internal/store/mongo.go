package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoDocument struct {
	Name      string    `bson:"_id"`
	Body      string    `bson:"body"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoBackend keeps the document as a JSON string inside one Mongo document.
// Writers serialize on a lease document whose _id uniqueness acts as the lock.
type MongoBackend struct {
	coll     *mongo.Collection
	name     string
	lockTTL  time.Duration
	retryGap time.Duration
}

// NewMongoBackend returns a backend storing the document called name in coll.
// The lock lease expires after lockTTL and is renewed every lockTTL/3 while
// held.
func NewMongoBackend(coll *mongo.Collection, name string, lockTTL time.Duration) *MongoBackend {
	return &MongoBackend{coll: coll, name: name, lockTTL: lockTTL, retryGap: 50 * time.Millisecond}
}

func (b *MongoBackend) Name() string { return "mongo:" + b.coll.Name() + "/" + b.name }

func (b *MongoBackend) Read(ctx context.Context) ([]byte, error) {
	var d mongoDocument
	err := b.coll.FindOne(ctx, bson.M{"_id": b.name}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", b.name, err)
	}
	return []byte(d.Body), nil
}

func (b *MongoBackend) Write(ctx context.Context, data []byte) error {
	_, err := b.coll.ReplaceOne(ctx,
		bson.M{"_id": b.name},
		mongoDocument{Name: b.name, Body: string(data), UpdatedAt: time.Now().UTC()},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("replace %s: %w", b.name, err)
	}
	return nil
}

func (b *MongoBackend) Lock(ctx context.Context) (func(), error) {
	lockID := "lock:" + b.name
	token := uuid.NewString()
	for {
		// Expired leases belong to writers that never released them.
		if _, err := b.coll.DeleteOne(ctx, bson.M{"_id": lockID, "expires_at": bson.M{"$lt": time.Now().UTC()}}); err != nil {
			return nil, fmt.Errorf("clear expired lease: %w", err)
		}
		_, err := b.coll.InsertOne(ctx, bson.M{
			"_id":        lockID,
			"token":      token,
			"expires_at": time.Now().UTC().Add(b.lockTTL),
		})
		if err == nil {
			stop := keepAlive(b.lockTTL/3, func(ctx context.Context) error {
				_, err := b.coll.UpdateOne(ctx,
					bson.M{"_id": lockID, "token": token},
					bson.M{"$set": bson.M{"expires_at": time.Now().UTC().Add(b.lockTTL)}},
				)
				return err
			})
			return func() {
				stop()
				b.coll.DeleteOne(context.Background(), bson.M{"_id": lockID, "token": token})
			}, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("insert lease: %w", err)
		}
		if err := waitRetry(ctx, b.retryGap); err != nil {
			return nil, err
		}
	}
}
