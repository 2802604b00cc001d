package meetingRepo

import (
	"context"
	"errors"

	"osmeet/models"
)

var (
	// ErrNotFound is returned when no active meeting matches.
	ErrNotFound = errors.New("meeting not found")
	// ErrHostConflict is returned by CreateMeetingChecked when the
	// transactional re-check finds the chosen host already taken.
	ErrHostConflict = errors.New("host already booked for an overlapping window")
)

// MeetingRepository is the persistence gateway for meeting records.
type MeetingRepository interface {
	// FindConflicts returns the host ids occupied on platform/date within
	// the window expanded by buffer minutes. Only active meetings count.
	FindConflicts(ctx context.Context, platform string, w models.Window, buffer int) (map[string]struct{}, error)

	// CreateMeetingChecked inserts the meeting inside a transaction that
	// re-runs the conflict query for the chosen host first. Returns
	// ErrHostConflict if the host was taken between the availability check
	// and the commit.
	CreateMeetingChecked(ctx context.Context, m *models.Meeting, buffer int) error

	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	ListByDateRange(ctx context.Context, community, from, to string) ([]models.Meeting, error)

	// CancelMeeting flips an active meeting to cancelled. Returns
	// ErrNotFound when the meeting is missing or already cancelled, which
	// makes double-cancellation races resolve cleanly.
	CancelMeeting(ctx context.Context, id string) error

	// SetReplayURL denormalizes the recording replay link after the
	// meeting has ended.
	SetReplayURL(ctx context.Context, id, url string) error
}
