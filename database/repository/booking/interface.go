// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"soupbarber/models"
)

// CollectionName is the collection both backends read from and write to.
const CollectionName = "bookings"

// ErrDuplicateSlot is returned by CreateBooking when the store already holds
// a booking with the same slot key.
var ErrDuplicateSlot = errors.New("a booking already exists for this slot")

// BookingRepository is the external store of appointment records.
type BookingRepository interface {
	// GetBookedTimes returns the time label of every booking whose date lies
	// within [start, end]. Duplicates are returned as stored.
	GetBookedTimes(ctx context.Context, start, end time.Time) ([]string, error)
	// CreateBooking inserts one booking and fills in its ID.
	CreateBooking(ctx context.Context, booking *models.Booking) error
}
