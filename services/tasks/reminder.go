package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"soupbarber/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		// One reminder per slot even if the hook runs twice.
		asynq.TaskID("reminder:" + payload.SlotKey),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// Enqueuer is the part of *asynq.Client used to schedule reminders.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler queues a reminder LeadTime before each confirmed booking.
type ReminderScheduler struct {
	Client   Enqueuer
	LeadTime time.Duration
	Topic    string
	Now      func() time.Time
}

// BookingConfirmed schedules the reminder; appointments too close to now
// are skipped.
func (s *ReminderScheduler) BookingConfirmed(ctx context.Context, booking models.Booking) error {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}

	fireAt := booking.Date.Add(-s.LeadTime)
	if !fireAt.After(now) {
		return nil
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		SlotKey:   booking.SlotKey,
		Title:     "Upcoming appointment",
		Body:      fmt.Sprintf("%s at %s (%s)", booking.Name, booking.Time, booking.Phone),
		FireDate:  fireAt.Format(time.RFC3339),
		Topic:     s.Topic,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder for %s: %w", booking.SlotKey, err)
	}
	return nil
}
