package models

import "time"

// MeetingStatus is the lifecycle state of a meeting record. Cancelled
// meetings are retained for history and audit, never physically deleted.
type MeetingStatus string

const (
	MeetingActive    MeetingStatus = "active"
	MeetingCancelled MeetingStatus = "cancelled"
)

// Meeting represents a scheduled community meeting backed by a remote
// platform meeting. A row is written only after the remote create succeeded.
type Meeting struct {
	ID        string        `bson:"id" json:"id"`                 // internal identifier (UUID)
	MID       string        `bson:"mid" json:"mid"`               // platform-assigned meeting id
	Community string        `bson:"community" json:"community"`   // owning portal (openeuler, mindspore, ...)
	SigID     string        `bson:"sig_id" json:"sig_id"`         // owning SIG group
	Platform  string        `bson:"platform" json:"platform"`     // zoom / tencent / welink
	HostID    string        `bson:"host_id" json:"host_id"`       // assigned shared host account
	Topic     string        `bson:"topic" json:"topic"`
	Agenda    string        `bson:"agenda,omitempty" json:"agenda,omitempty"`
	Date      string        `bson:"date" json:"date"`   // "2006-01-02"
	Start     int           `bson:"start" json:"start"` // minutes from midnight
	End       int           `bson:"end" json:"end"`
	JoinURL   string        `bson:"join_url" json:"join_url"`
	SponsorID string        `bson:"sponsor_id" json:"sponsor_id"` // user who booked the meeting
	Record    bool          `bson:"record" json:"record"`
	Status    MeetingStatus `bson:"status" json:"status"`
	ReplayURL string        `bson:"replay_url,omitempty" json:"replay_url,omitempty"` // filled after the meeting ended
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// Window returns the meeting's booked time span.
func (m *Meeting) Window() Window {
	return Window{Date: m.Date, Start: m.Start, End: m.End}
}
