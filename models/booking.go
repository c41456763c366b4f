package models

import "time"

// BookingStatusConfirmed is the only status this service ever writes.
const BookingStatusConfirmed = "confirmed"

// Contact holds the customer's contact fields.
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// BookingRequest is the client-held form state at submit time.
type BookingRequest struct {
	Date    time.Time `json:"date"` // zero means no date selected
	Time    string    `json:"time"` // half-hour label, e.g. "09:30"
	Contact Contact   `json:"contact"`
}

// Booking represents a confirmed appointment record in the "bookings" collection.
type Booking struct {
	ID          string    `firestore:"-" bson:"id" json:"id"`                           // Store document identifier
	SlotKey     string    `firestore:"slotKey" bson:"slotKey" json:"slotKey"`           // "2006-01-02T1504", unique per (day, time)
	Date        time.Time `firestore:"date" bson:"date" json:"date"`                    // Selected day combined with the selected time
	Time        string    `firestore:"time" bson:"time" json:"time"`                    // Same label, kept for querying
	Name        string    `firestore:"name" bson:"name" json:"name"`                    // Customer name
	Email       string    `firestore:"email" bson:"email" json:"email"`                 // Customer email
	Phone       string    `firestore:"phone" bson:"phone" json:"phone"`                 // Customer phone
	BarberEmail string    `firestore:"barberEmail" bson:"barberEmail" json:"barberEmail"` // Fixed operator identifier
	Status      string    `firestore:"status" bson:"status" json:"status"`              // Always "confirmed"
	CreatedAt   time.Time `firestore:"createdAt" bson:"createdAt" json:"createdAt"`     // Write time
}
