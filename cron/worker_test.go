package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"soupbarber/models"
	"soupbarber/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type fakeNotifier struct {
	reminders []models.ReminderPayload
	err       error
}

func (f *fakeNotifier) BookingConfirmed(ctx context.Context, booking models.Booking) error {
	return nil
}

func (f *fakeNotifier) SendReminder(ctx context.Context, payload models.ReminderPayload) error {
	f.reminders = append(f.reminders, payload)
	return f.err
}

func TestHandleReminderTask(t *testing.T) {
	notifier := &fakeNotifier{}
	handler := handleReminderTask(notifier, zap.NewNop())

	payload, _ := json.Marshal(models.ReminderPayload{SlotKey: "2024-06-01T0930", Title: "Soon"})
	if err := handler(context.Background(), asynq.NewTask(tasks.TypeSendReminder, payload)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if len(notifier.reminders) != 1 || notifier.reminders[0].SlotKey != "2024-06-01T0930" {
		t.Errorf("reminders = %+v", notifier.reminders)
	}
}

func TestHandleReminderTask_BadPayloadSkipsRetry(t *testing.T) {
	handler := handleReminderTask(&fakeNotifier{}, zap.NewNop())

	err := handler(context.Background(), asynq.NewTask(tasks.TypeSendReminder, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("handler error = %v, want SkipRetry", err)
	}
}

func TestHandleReminderTask_SendFailureRetries(t *testing.T) {
	notifier := &fakeNotifier{err: errors.New("fcm down")}
	handler := handleReminderTask(notifier, zap.NewNop())

	payload, _ := json.Marshal(models.ReminderPayload{SlotKey: "k"})
	err := handler(context.Background(), asynq.NewTask(tasks.TypeSendReminder, payload))
	if err == nil || errors.Is(err, asynq.SkipRetry) {
		t.Errorf("handler error = %v, want retryable error", err)
	}
}
