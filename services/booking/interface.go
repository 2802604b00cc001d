package booking

import (
	"context"

	"osmeet/models"
)

// BookRequest is a validated-at-the-edge booking request. Start/End are
// wall-clock "15:04" strings; Date is "2006-01-02".
type BookRequest struct {
	Community string `json:"community"`
	SigID     string `json:"sigId"`
	Platform  string `json:"platform"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Topic     string `json:"topic"`
	Agenda    string `json:"agenda,omitempty"`
	SponsorID string `json:"-"`
	Record    bool   `json:"record"`
}

// SchedulingEngine books and cancels meetings against the shared host pool.
type SchedulingEngine interface {
	// Book allocates a free host, creates the remote meeting and persists
	// the record. Nothing is persisted when the remote call fails.
	Book(ctx context.Context, req BookRequest) (*models.Meeting, error)

	// Cancel reverses a booking: remote cancel first, then the soft
	// delete, then collect cleanup and notifications.
	Cancel(ctx context.Context, meetingID string, actor models.Actor) error

	// SetReplayURL records the recording replay link once the meeting has
	// ended. Admin only.
	SetReplayURL(ctx context.Context, meetingID, url string, actor models.Actor) error
}
