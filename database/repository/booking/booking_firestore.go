package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"soupbarber/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreBookingRepo struct {
	coll *firestore.CollectionRef
}

// NewFirestoreBookingRepo constructs a Firestore-backed BookingRepository.
func NewFirestoreBookingRepo(client *firestore.Client) BookingRepository {
	return &firestoreBookingRepo{
		coll: client.Collection(CollectionName),
	}
}

// GetBookedTimes runs a range query on the "date" field.
func (r *firestoreBookingRepo) GetBookedTimes(ctx context.Context, start, end time.Time) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	docs, err := r.coll.
		Where("date", ">=", start).
		Where("date", "<=", end).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}

	times := make([]string, 0, len(docs))
	for _, doc := range docs {
		label, _ := doc.Data()["time"].(string)
		times = append(times, label)
	}
	return times, nil
}

// CreateBooking writes the booking under its slot key as document ID.
// Create fails with AlreadyExists when the slot was taken in the meantime.
func (r *firestoreBookingRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if booking.SlotKey == "" {
		return fmt.Errorf("error creating booking: missing slot key")
	}
	ref := r.coll.Doc(booking.SlotKey)
	if _, err := ref.Create(ctx, booking); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("error creating booking: %w", err)
	}
	booking.ID = ref.ID
	return nil
}
