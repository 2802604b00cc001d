package notification

import (
	"context"

	"osmeet/models"
)

// Dispatcher queues meeting notifications for asynchronous delivery.
// Dispatch is fire-and-forget from the scheduler's point of view: a created
// meeting must survive a notification failure, so callers log returned
// errors and move on.
type Dispatcher interface {
	NotifyMeetingCreated(ctx context.Context, m *models.Meeting, recipients []string) error
	NotifyMeetingCancelled(ctx context.Context, m *models.Meeting, recipients []string) error
}
