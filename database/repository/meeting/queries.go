package meetingRepo

import (
	"context"
	"fmt"
	"time"

	"osmeet/models"

	"go.mongodb.org/mongo-driver/bson"
)

// conflictFilter selects active meetings on platform/date whose stored window
// collides with w once expanded by buffer minutes on each side.
func conflictFilter(platform string, w models.Window, buffer int) bson.M {
	return bson.M{
		"platform": platform,
		"date":     w.Date,
		"status":   models.MeetingActive,
		"end":      bson.M{"$gt": w.Start - buffer},
		"start":    bson.M{"$lt": w.End + buffer},
	}
}

func (r *MongoMeetingRepo) FindConflicts(ctx context.Context, platform string, w models.Window, buffer int) (map[string]struct{}, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, conflictFilter(platform, w, buffer))
	if err != nil {
		return nil, fmt.Errorf("conflict query failed: %w", err)
	}
	defer cursor.Close(ctx)

	occupied := make(map[string]struct{})
	for cursor.Next(ctx) {
		var row struct {
			HostID string `bson:"host_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode conflict row: %w", err)
		}
		occupied[row.HostID] = struct{}{}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("conflict cursor error: %w", err)
	}
	return occupied, nil
}
