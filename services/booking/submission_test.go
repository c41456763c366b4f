package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "soupbarber/database/repository/booking"
	"soupbarber/models"
)

// memoryRepo is an in-memory BookingRepository with slot-key uniqueness.
type memoryRepo struct {
	bookings  map[string]models.Booking
	createErr error
	writes    int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{bookings: map[string]models.Booking{}}
}

func (m *memoryRepo) GetBookedTimes(ctx context.Context, start, end time.Time) ([]string, error) {
	times := []string{}
	for _, b := range m.bookings {
		if !b.Date.Before(start) && !b.Date.After(end) {
			times = append(times, b.Time)
		}
	}
	return times, nil
}

func (m *memoryRepo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	m.writes++
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.bookings[booking.SlotKey]; exists {
		return bookingRepo.ErrDuplicateSlot
	}
	booking.ID = booking.SlotKey
	m.bookings[booking.SlotKey] = *booking
	return nil
}

type recordingHook struct {
	confirmed []models.Booking
	err       error
}

func (h *recordingHook) BookingConfirmed(ctx context.Context, booking models.Booking) error {
	h.confirmed = append(h.confirmed, booking)
	return h.err
}

func newTestBookingService(repo *memoryRepo, hooks ...ConfirmationHook) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:          repo,
		OperatorEmail: "devin@soupbarber.com",
		Location:      time.UTC,
		Now:           func() time.Time { return testNow },
		Hooks:         hooks,
	}
}

func validRequest(label string) models.BookingRequest {
	return models.BookingRequest{Date: june(1), Time: label, Contact: validContact}
}

func TestSubmitBooking_PersistsRecord(t *testing.T) {
	repo := newMemoryRepo()
	hook := &recordingHook{}
	svc := newTestBookingService(repo, hook)

	booking, err := svc.SubmitBooking(context.Background(), validRequest("15:30"))
	if err != nil {
		t.Fatalf("SubmitBooking() error = %v", err)
	}

	stored, ok := repo.bookings["2024-06-01T1530"]
	if !ok {
		t.Fatalf("booking not stored under slot key")
	}
	if stored.Time != "15:30" {
		t.Errorf("Time = %q, want 15:30", stored.Time)
	}
	if stored.Date.Hour() != 15 || stored.Date.Minute() != 30 {
		t.Errorf("Date time of day = %02d:%02d, want 15:30", stored.Date.Hour(), stored.Date.Minute())
	}
	if stored.Status != models.BookingStatusConfirmed {
		t.Errorf("Status = %q, want confirmed", stored.Status)
	}
	if stored.BarberEmail != "devin@soupbarber.com" {
		t.Errorf("BarberEmail = %q", stored.BarberEmail)
	}
	if !stored.CreatedAt.Equal(testNow) {
		t.Errorf("CreatedAt = %v, want %v", stored.CreatedAt, testNow)
	}
	if stored.Name != validContact.Name || stored.Email != validContact.Email || stored.Phone != validContact.Phone {
		t.Errorf("contact fields = %+v", stored)
	}
	if booking.ID == "" {
		t.Errorf("returned booking has no ID")
	}
	if len(hook.confirmed) != 1 {
		t.Errorf("hook calls = %d, want 1", len(hook.confirmed))
	}
}

func TestSubmitBooking_ValidationSkipsWrite(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestBookingService(repo)

	req := validRequest("10:00")
	req.Contact.Phone = "  "

	_, err := svc.SubmitBooking(context.Background(), req)
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "phone" {
		t.Fatalf("SubmitBooking() error = %v, want phone ValidationError", err)
	}
	if repo.writes != 0 {
		t.Errorf("writes = %d, want 0", repo.writes)
	}
}

func TestSubmitBooking_DuplicateSlot(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestBookingService(repo)
	ctx := context.Background()

	if _, err := svc.SubmitBooking(ctx, validRequest("09:00")); err != nil {
		t.Fatalf("first SubmitBooking() error = %v", err)
	}
	_, err := svc.SubmitBooking(ctx, validRequest("09:00"))
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("second SubmitBooking() error = %v, want ErrSlotTaken", err)
	}
	var extErr *ExternalCallError
	if !errors.As(err, &extErr) || extErr.Op != OpBookingWrite {
		t.Errorf("error = %v, want ExternalCallError for %s", err, OpBookingWrite)
	}
	if len(repo.bookings) != 1 {
		t.Errorf("stored bookings = %d, want 1", len(repo.bookings))
	}
}

func TestSubmitBooking_WriteFailure(t *testing.T) {
	repo := newMemoryRepo()
	repo.createErr = errors.New("permission denied")
	hook := &recordingHook{}
	svc := newTestBookingService(repo, hook)

	_, err := svc.SubmitBooking(context.Background(), validRequest("12:00"))
	var extErr *ExternalCallError
	if !errors.As(err, &extErr) {
		t.Fatalf("SubmitBooking() error = %v, want ExternalCallError", err)
	}
	if repo.writes != 1 {
		t.Errorf("writes = %d, want exactly 1", repo.writes)
	}
	if len(hook.confirmed) != 0 {
		t.Errorf("hook ran for a failed write")
	}
}

func TestSubmitBooking_HookFailureDoesNotFailBooking(t *testing.T) {
	repo := newMemoryRepo()
	hook := &recordingHook{err: errors.New("fcm down")}
	svc := newTestBookingService(repo, hook)

	if _, err := svc.SubmitBooking(context.Background(), validRequest("12:30")); err != nil {
		t.Fatalf("SubmitBooking() error = %v, want nil", err)
	}
}

func TestAvailabilityService_BookedSlots(t *testing.T) {
	repo := newMemoryRepo()
	bookings := newTestBookingService(repo)
	ctx := context.Background()

	for _, label := range []string{"09:00", "09:30"} {
		if _, err := bookings.SubmitBooking(ctx, validRequest(label)); err != nil {
			t.Fatalf("SubmitBooking(%s) error = %v", label, err)
		}
	}
	other := validRequest("09:00")
	other.Date = june(2)
	if _, err := bookings.SubmitBooking(ctx, other); err != nil {
		t.Fatalf("SubmitBooking(june 2) error = %v", err)
	}

	avail := &DefaultAvailabilityService{Repo: repo, Location: time.UTC}
	got, err := avail.BookedSlots(ctx, june(1).Add(13*time.Hour))
	if err != nil {
		t.Fatalf("BookedSlots() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("BookedSlots() = %v, want two labels for June 1", got)
	}

	if _, err := avail.BookedSlots(ctx, time.Time{}); err == nil {
		t.Errorf("BookedSlots(zero) error = nil, want ValidationError")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: NewValidationError("name", "Please fill in all fields"), want: "Please fill in all fields"},
		{name: "write", err: NewExternalCallError(OpBookingWrite, errors.New("x")), want: "Failed to create booking. Please try again."},
		{name: "taken", err: NewExternalCallError(OpBookingWrite, ErrSlotTaken), want: "Sorry, that time was just booked. Please pick another slot."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
