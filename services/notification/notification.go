package notification

import (
	"context"
	"fmt"

	"soupbarber/models"

	"firebase.google.com/go/v4/messaging"
)

// MessageSender is the part of *messaging.Client used here.
type MessageSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService pushes booking events to the shop's devices.
type NotificationService interface {
	BookingConfirmed(ctx context.Context, booking models.Booking) error
	SendReminder(ctx context.Context, payload models.ReminderPayload) error
}

// DefaultNotificationService sends FCM pushes to the operator topic.
type DefaultNotificationService struct {
	sender MessageSender
	topic  string
}

func NewDefaultNotificationService(sender MessageSender, topic string) (*DefaultNotificationService, error) {
	if sender == nil || topic == "" {
		return nil, fmt.Errorf("notification service initialization error: sender or topic is missing")
	}
	return &DefaultNotificationService{
		sender: sender,
		topic:  topic,
	}, nil
}

// BookingConfirmed tells the barber about a new appointment.
func (s *DefaultNotificationService) BookingConfirmed(ctx context.Context, booking models.Booking) error {
	title := "New booking 💈"
	body := fmt.Sprintf("%s booked %s at %s.", booking.Name, booking.Date.Format("Mon Jan 2"), booking.Time)

	return s.send(ctx, s.topic, title, body, map[string]string{
		"type":      "booking_confirmed",
		"bookingId": booking.ID,
		"slotKey":   booking.SlotKey,
		"phone":     booking.Phone,
		"email":     booking.Email,
	})
}

// SendReminder pushes an upcoming-appointment reminder.
func (s *DefaultNotificationService) SendReminder(ctx context.Context, payload models.ReminderPayload) error {
	topic := payload.Topic
	if topic == "" {
		topic = s.topic
	}
	return s.send(ctx, topic, payload.Title, payload.Body, map[string]string{
		"type":      "booking_reminder",
		"bookingId": payload.BookingID,
		"slotKey":   payload.SlotKey,
		"fireDate":  payload.FireDate,
	})
}

func (s *DefaultNotificationService) send(ctx context.Context, topic, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message to topic %s: %w", topic, err)
	}
	return nil
}
