package sigRepo

import (
	"context"
	"fmt"
	"time"

	"osmeet/database"
	"osmeet/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoSIGRepo struct {
	coll *mongo.Collection
}

func NewMongoSIGRepo() *MongoSIGRepo {
	return &MongoSIGRepo{coll: database.Collection("sigs")}
}

func (r *MongoSIGRepo) Create(ctx context.Context, s *models.SIG) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create sig: %w", err)
	}
	return nil
}

func (r *MongoSIGRepo) GetByID(ctx context.Context, id string) (*models.SIG, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var s models.SIG
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sig %s: %w", id, err)
	}
	return &s, nil
}

func (r *MongoSIGRepo) ListByCommunity(ctx context.Context, community string) ([]models.SIG, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"community": community})
	if err != nil {
		return nil, fmt.Errorf("failed to list sigs: %w", err)
	}
	defer cursor.Close(ctx)

	var sigs []models.SIG
	if err := cursor.All(ctx, &sigs); err != nil {
		return nil, fmt.Errorf("failed to decode sigs: %w", err)
	}
	return sigs, nil
}

func (r *MongoSIGRepo) Update(ctx context.Context, s *models.SIG) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": s.ID}, s)
	if err != nil {
		return fmt.Errorf("failed to update sig %s: %w", s.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoSIGRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete sig %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
