package models

import "time"

// Collect target kinds.
const (
	CollectMeeting  = "meeting"
	CollectActivity = "activity"
)

// Collect is a user's favorite mark on a meeting or activity. Collects are
// removed when the target is cancelled, and the collecting users are
// notified.
type Collect struct {
	ID         string    `bson:"id" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	TargetType string    `bson:"target_type" json:"target_type"`
	TargetID   string    `bson:"target_id" json:"target_id"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
