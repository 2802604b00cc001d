package collectRepo

import (
	"context"
	"fmt"
	"time"

	"osmeet/database"
	"osmeet/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoCollectRepo struct {
	coll *mongo.Collection
}

func NewMongoCollectRepo() *MongoCollectRepo {
	return &MongoCollectRepo{coll: database.Collection("collects")}
}

func (r *MongoCollectRepo) Add(ctx context.Context, c *models.Collect) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Upsert so collecting twice stays a single row.
	filter := bson.M{"user_id": c.UserID, "target_type": c.TargetType, "target_id": c.TargetID}
	update := bson.M{"$setOnInsert": c}
	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to add collect: %w", err)
	}
	return nil
}

func (r *MongoCollectRepo) Remove(ctx context.Context, userID, targetType, targetID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{
		"user_id": userID, "target_type": targetType, "target_id": targetID,
	})
	if err != nil {
		return fmt.Errorf("failed to remove collect: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCollectRepo) ListByUser(ctx context.Context, userID string) ([]models.Collect, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to list collects: %w", err)
	}
	defer cursor.Close(ctx)

	var collects []models.Collect
	if err := cursor.All(ctx, &collects); err != nil {
		return nil, fmt.Errorf("failed to decode collects: %w", err)
	}
	return collects, nil
}

func (r *MongoCollectRepo) ListCollectors(ctx context.Context, targetType, targetID string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"target_type": targetType, "target_id": targetID})
	if err != nil {
		return nil, fmt.Errorf("failed to list collectors: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var row struct {
			UserID string `bson:"user_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode collector row: %w", err)
		}
		ids = append(ids, row.UserID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("collector cursor error: %w", err)
	}
	return ids, nil
}

func (r *MongoCollectRepo) RemoveByTarget(ctx context.Context, targetType, targetID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"target_type": targetType, "target_id": targetID}); err != nil {
		return fmt.Errorf("failed to remove collects for %s %s: %w", targetType, targetID, err)
	}
	return nil
}
