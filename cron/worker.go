package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"osmeet/config"
	"osmeet/models"
	"osmeet/services/tasks"
	"osmeet/services/user"
	"osmeet/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNotifyWorker runs the async notification worker in background until ctx
// is cancelled. The worker owns delivery; the booking path only enqueues.
func InitNotifyWorker(ctx context.Context, users user.UserService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeMeetingNotify, handleMeetingNotify(users))

	go func() {
		client := redis.NewClient(&redis.Options{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		})
		defer client.Close()
		monitorQueueConnection(ctx, client, 10*time.Second)
	}()

	go func() {
		<-ctx.Done()
		srv.Shutdown()
	}()

	go func() {
		logger := utils.GetLogger()
		logger.Info("starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("notification worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))

				if attempts == maxAttempts {
					log.Fatal("notification worker: max retry attempts reached")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleMeetingNotify(users user.UserService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p models.NotifyPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("notification task carried invalid payload", zap.Error(err))
			return err
		}

		title, body := renderNotification(p)
		recipients, err := users.GetMany(ctx, p.Recipients)
		if err != nil {
			logger.Error("failed to resolve notification recipients",
				zap.String("meetingID", p.MeetingID), zap.Error(err))
			return err
		}

		data := map[string]string{
			"event":     p.Event,
			"meetingId": p.MeetingID,
			"date":      p.Date,
			"start":     p.Start,
		}

		for _, u := range recipients {
			if u.FCMToken == "" {
				continue
			}
			msg := &messaging.Message{
				Token: u.FCMToken,
				Notification: &messaging.Notification{
					Title: title,
					Body:  body,
				},
				Data: data,
			}
			if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
				// Delivery is best effort per recipient; log and continue.
				logger.Warn("failed to deliver notification",
					zap.String("userID", u.ID),
					zap.String("meetingID", p.MeetingID),
					zap.Error(err))
			}
		}
		return nil
	}
}

func renderNotification(p models.NotifyPayload) (title, body string) {
	switch p.Event {
	case models.NotifyMeetingCancelled:
		return "Meeting cancelled: " + p.Topic,
			"The meeting on " + p.Date + " at " + p.Start + " has been cancelled."
	default:
		return "Meeting scheduled: " + p.Topic,
			"Join on " + p.Date + " at " + p.Start + "."
	}
}

// queuePinger is the slice of the redis client the monitor needs.
type queuePinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// monitorQueueConnection pings the queue Redis periodically to surface
// connection failures at runtime. Returns when ctx is cancelled.
func monitorQueueConnection(ctx context.Context, client queuePinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				utils.GetLogger().Warn("notification queue redis connection lost", zap.Error(err))
			}
		}
	}
}
