package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the compound indexes the aggregation queries rely on.
// Index creation is idempotent; existing definitions are left untouched.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		"attendance": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: 1}}},
		},
		"visits": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: 1}}},
		},
		"sheetsSales": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}},
		},
		"expenses": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}},
		},
		"targets": {
			{Keys: bson.D{{Key: "month", Value: 1}, {Key: "autoRenew", Value: 1}}},
		},
		"users": {
			{Keys: bson.D{{Key: "role", Value: 1}, {Key: "isActive", Value: 1}}},
		},
		"dsrReports": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}}},
		},
	}

	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("platform/mongo: ensure indexes on %s: %w", collection, err)
		}
	}
	return nil
}
