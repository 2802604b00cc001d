package meetingRepo

import (
	"context"
	"fmt"

	"osmeet/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateMeetingChecked inserts the meeting row inside a Mongo transaction
// that first re-runs the conflict query for the chosen host. Host selection
// is derived from a read over persisted state, so two concurrent bookings can
// both observe the same host as free; the re-check inside the commit
// transaction is what closes that race.
func (r *MongoMeetingRepo) CreateMeetingChecked(ctx context.Context, m *models.Meeting, buffer int) error {
	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := conflictFilter(m.Platform, m.Window(), buffer)
		filter["host_id"] = m.HostID
		count, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("conflict re-check failed: %w", err)
		}
		if count > 0 {
			return ErrHostConflict
		}

		if _, err := r.coll.InsertOne(sc, m); err != nil {
			return fmt.Errorf("insert meeting failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return err
	}
	return nil
}

// EnsureIndexes creates the indexes backing the conflict range query.
func (r *MongoMeetingRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "platform", Value: 1},
			{Key: "date", Value: 1},
			{Key: "host_id", Value: 1},
			{Key: "status", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create meeting indexes: %w", err)
	}
	return nil
}
