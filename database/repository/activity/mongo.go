package activityRepo

import (
	"context"
	"fmt"
	"time"

	"osmeet/database"
	"osmeet/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoActivityRepo struct {
	coll *mongo.Collection
}

func NewMongoActivityRepo() *MongoActivityRepo {
	return &MongoActivityRepo{coll: database.Collection("activities")}
}

func (r *MongoActivityRepo) Create(ctx context.Context, a *models.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (r *MongoActivityRepo) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var a models.Activity
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity %s: %w", id, err)
	}
	return &a, nil
}

func (r *MongoActivityRepo) ListByStatus(ctx context.Context, community string, status models.ActivityStatus) ([]models.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"status": status}
	if community != "" {
		filter["community"] = community
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %w", err)
	}
	return activities, nil
}

func (r *MongoActivityRepo) SetStatus(ctx context.Context, id string, from, to models.ActivityStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to}},
	)
	if err != nil {
		return fmt.Errorf("failed to update activity %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
