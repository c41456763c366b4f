package models

// ReminderPayload is the asynq payload for an upcoming appointment reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	SlotKey   string `json:"slotKey"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"` // RFC3339, informational
	Topic     string `json:"topic"`    // FCM topic the reminder is pushed to
}
