package meetingRepo

import (
	"context"
	"fmt"
	"time"

	"osmeet/database"
	"osmeet/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoMeetingRepo implements MeetingRepository backed by MongoDB.
type MongoMeetingRepo struct {
	coll *mongo.Collection
}

func NewMongoMeetingRepo() *MongoMeetingRepo {
	return &MongoMeetingRepo{coll: database.Collection("meetings")}
}

func (r *MongoMeetingRepo) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var m models.Meeting
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meeting %s: %w", id, err)
	}
	return &m, nil
}

func (r *MongoMeetingRepo) ListByDateRange(ctx context.Context, community, from, to string) ([]models.Meeting, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"status": models.MeetingActive,
		"date":   bson.M{"$gte": from, "$lte": to},
	}
	if community != "" {
		filter["community"] = community
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer cursor.Close(ctx)

	var meetings []models.Meeting
	if err := cursor.All(ctx, &meetings); err != nil {
		return nil, fmt.Errorf("failed to decode meetings: %w", err)
	}
	return meetings, nil
}

func (r *MongoMeetingRepo) CancelMeeting(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.MeetingActive},
		bson.M{"$set": bson.M{"status": models.MeetingCancelled}},
	)
	if err != nil {
		return fmt.Errorf("failed to cancel meeting %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoMeetingRepo) SetReplayURL(ctx context.Context, id, url string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$set": bson.M{"replay_url": url}},
	)
	if err != nil {
		return fmt.Errorf("failed to set replay url for meeting %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
