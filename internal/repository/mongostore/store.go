// Package mongostore implements the repository ports on MongoDB.
package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/SundayYogurt/scholarship_service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	catalogCollection     = "topScholarship"
	submissionCollection  = "submits"
	userCollection        = "users"
	paymentCollection     = "payments"
	reviewCollection      = "reviews"
	defaultConnectTimeout = 10 * time.Second
)

// Open connects, pings and prepares indexes. The returned store owns the
// client and disconnects it on Close.
func Open(ctx context.Context, uri, dbName string) (*repository.Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(defaultConnectTimeout).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(dbName)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return New(db), nil
}

func New(db *mongo.Database) *repository.Store {
	client := db.Client()
	return &repository.Store{
		Kind:         "mongo",
		Users:        &userStore{coll: db.Collection(userCollection)},
		Scholarships: &scholarshipStore{coll: db.Collection(catalogCollection)},
		Submissions:  &submissionStore{coll: db.Collection(submissionCollection)},
		Payments: &paymentStore{
			client:      client,
			payments:    db.Collection(paymentCollection),
			submissions: db.Collection(submissionCollection),
		},
		Reviews: &reviewStore{coll: db.Collection(reviewCollection)},
		PingFn: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		CloseFn: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	}
}

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}
	_, err = db.Collection(submissionCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create submits email index: %w", err)
	}
	return nil
}
