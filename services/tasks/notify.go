package tasks

import (
	"encoding/json"

	"osmeet/models"

	"github.com/hibiken/asynq"
)

const TypeMeetingNotify = "meeting:notify"

// NewMeetingNotifyTask builds the asynq task carrying one meeting
// notification fan-out.
func NewMeetingNotifyTask(payload models.NotifyPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeMeetingNotify, b)
	opts := []asynq.Option{asynq.MaxRetry(3)}

	return task, opts, nil
}
