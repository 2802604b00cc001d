package models

import "time"

// ActivityStatus tracks the draft -> published lifecycle of a community
// event. Cancelled activities are soft-deleted like meetings.
type ActivityStatus string

const (
	ActivityDraft     ActivityStatus = "draft"
	ActivityPublished ActivityStatus = "published"
	ActivityCancelled ActivityStatus = "cancelled"
)

// Activity is a community event (meetup, summit, online campaign). Unlike
// meetings it has no platform host; it only carries schedule and content.
type Activity struct {
	ID        string         `bson:"id" json:"id"`
	Community string         `bson:"community" json:"community"`
	Title     string         `bson:"title" json:"title"`
	Detail    string         `bson:"detail,omitempty" json:"detail,omitempty"`
	Date      string         `bson:"date" json:"date"`
	Venue     string         `bson:"venue,omitempty" json:"venue,omitempty"`
	Online    bool           `bson:"online" json:"online"`
	Poster    string         `bson:"poster,omitempty" json:"poster,omitempty"`
	SponsorID string         `bson:"sponsor_id" json:"sponsor_id"`
	Status    ActivityStatus `bson:"status" json:"status"`
	CreatedAt time.Time      `bson:"created_at" json:"created_at"`
}
