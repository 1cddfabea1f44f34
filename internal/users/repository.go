package users

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Directory lists rep user ids for batch jobs.
type Directory interface {
	ListActiveRepIDs(ctx context.Context) ([]string, error)
}

// Repository reads the user directory collection.
type Repository struct {
	users *mongo.Collection
}

// NewRepository binds the repository to the users collection.
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{users: db.Collection("users")}
}

// ListActiveRepIDs returns the ids of every active rep, in a stable order.
func (r *Repository) ListActiveRepIDs(ctx context.Context) ([]string, error) {
	filter := bson.M{"role": RoleRep, "isActive": true}
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("users: list active reps: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("users: decode active reps: %w", err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
