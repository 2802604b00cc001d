package notification

import (
	"context"

	"osmeet/models"
	"osmeet/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AsynqDispatcher enqueues notification tasks on the Redis-backed queue.
// Delivery happens in the worker (cron package); booking latency is never
// coupled to notification latency.
type AsynqDispatcher struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func NewAsynqDispatcher(client *asynq.Client, logger *zap.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client, Logger: logger}
}

func (d *AsynqDispatcher) NotifyMeetingCreated(ctx context.Context, m *models.Meeting, recipients []string) error {
	return d.enqueue(ctx, models.NotifyMeetingCreated, m, recipients)
}

func (d *AsynqDispatcher) NotifyMeetingCancelled(ctx context.Context, m *models.Meeting, recipients []string) error {
	return d.enqueue(ctx, models.NotifyMeetingCancelled, m, recipients)
}

func (d *AsynqDispatcher) enqueue(ctx context.Context, event string, m *models.Meeting, recipients []string) error {
	payload := models.NotifyPayload{
		Event:      event,
		MeetingID:  m.ID,
		Topic:      m.Topic,
		Date:       m.Date,
		Start:      models.FormatClock(m.Start),
		JoinURL:    m.JoinURL,
		Recipients: recipients,
	}
	task, opts, err := tasks.NewMeetingNotifyTask(payload)
	if err != nil {
		return err
	}
	info, err := d.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return err
	}
	d.Logger.Debug("queued meeting notification",
		zap.String("event", event),
		zap.String("meetingID", m.ID),
		zap.String("taskID", info.ID))
	return nil
}
