package targets

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kunal9797/artissales-sub001/internal/shared"
)

// MongoRepository persists targets in the targets collection.
type MongoRepository struct {
	targets *mongo.Collection
}

// NewRepository binds the repository to the targets collection.
func NewRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{targets: db.Collection("targets")}
}

// GetTarget loads one target by rep and month.
func (r *MongoRepository) GetTarget(ctx context.Context, userID, month string) (*Target, error) {
	var target Target
	err := r.targets.FindOne(ctx, bson.M{"_id": TargetID(userID, month)}).Decode(&target)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("targets: get %s_%s: %w", userID, month, err)
	}
	return &target, nil
}

// ListAutoRenew returns every target of the month flagged for renewal.
func (r *MongoRepository) ListAutoRenew(ctx context.Context, month string) ([]Target, error) {
	cursor, err := r.targets.Find(ctx, bson.M{"month": month, "autoRenew": true})
	if err != nil {
		return nil, fmt.Errorf("targets: list auto-renew: %w", err)
	}
	defer cursor.Close(ctx)

	var results []Target
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("targets: decode auto-renew: %w", err)
	}
	return results, nil
}

// CreateIfAbsent inserts the targets in one unordered bulk write. The _id is
// deterministic, so an existing target surfaces as a duplicate-key error; the
// server skips it atomically and the write carries on. This replaces the
// read-then-branch-then-write pattern and its duplicate-create race: two
// concurrent runs can both attempt the insert and exactly one wins.
func (r *MongoRepository) CreateIfAbsent(ctx context.Context, targets []Target) (int, int, error) {
	if len(targets) == 0 {
		return 0, 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(targets))
	for i := range targets {
		models = append(models, mongo.NewInsertOneModel().SetDocument(targets[i]))
	}

	result, err := r.targets.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if !errors.As(err, &bulkErr) {
			return 0, 0, fmt.Errorf("targets: bulk create: %w", err)
		}
		for _, writeErr := range bulkErr.WriteErrors {
			if !mongo.IsDuplicateKeyError(writeErr) {
				return 0, 0, fmt.Errorf("targets: bulk create: %w", err)
			}
		}
		// Every error is a duplicate: those are the skips.
		created := 0
		if result != nil {
			created = int(result.InsertedCount)
		}
		return created, len(targets) - created, nil
	}
	return int(result.InsertedCount), len(targets) - int(result.InsertedCount), nil
}
