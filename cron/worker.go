package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"soupbarber/config"
	"soupbarber/models"
	"soupbarber/services/notification"
	"soupbarber/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderRedisOpt returns the asynq connection for the reminder queue.
func ReminderRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async worker in background. The caller owns
// the returned server and should Shutdown it on exit.
func InitReminderWorker(notifSvc notification.NotificationService, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		ReminderRedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendReminder, handleReminderTask(notifSvc, logger))

	go func() {
		logger.Info("[ReminderWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Warn("[ReminderWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[ReminderWorker] max retry attempts reached; reminders disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleReminderTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("[ReminderHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
		}

		logger.Info("[ReminderHandler] sending reminder", zap.String("slotKey", p.SlotKey), zap.String("topic", p.Topic))
		if err := notifSvc.SendReminder(ctx, p); err != nil {
			logger.Warn("[ReminderHandler] failed to send notification", zap.String("slotKey", p.SlotKey), zap.Error(err))
			return err
		}
		return nil
	}
}
