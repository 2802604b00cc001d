package models

// Notification event kinds carried on the async queue.
const (
	NotifyMeetingCreated   = "meeting_created"
	NotifyMeetingCancelled = "meeting_cancelled"
)

// NotifyPayload is the asynq task payload for meeting notifications.
// Recipients are user ids; delivery failures are logged, never retried into
// the booking path.
type NotifyPayload struct {
	Event      string   `json:"event"`
	MeetingID  string   `json:"meetingId"`
	Topic      string   `json:"topic"`
	Date       string   `json:"date"`
	Start      string   `json:"start"`
	JoinURL    string   `json:"joinUrl,omitempty"`
	Recipients []string `json:"recipients"`
}
