package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingRepo "soupbarber/database/repository/booking"
	"soupbarber/models"

	"go.uber.org/zap"
)

// BookingService writes confirmed bookings.
type BookingService interface {
	SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
}

// ConfirmationHook runs after a booking has been stored.
type ConfirmationHook interface {
	BookingConfirmed(ctx context.Context, booking models.Booking) error
}

// DefaultBookingService implements BookingService on a BookingRepository.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	OperatorEmail string
	Location      *time.Location
	Now           func() time.Time
	Hooks         []ConfirmationHook
	Logger        *zap.Logger
}

// ValidateRequest checks that every field needed for a booking is present.
func ValidateRequest(req models.BookingRequest) error {
	switch {
	case req.Date.IsZero():
		return NewValidationError("date", "Please select a date")
	case req.Time == "":
		return NewValidationError("time", "Please select a time")
	case !IsSlotLabel(req.Time):
		return NewValidationError("time", "Please select one of the listed times")
	case strings.TrimSpace(req.Contact.Name) == "":
		return NewValidationError("name", "Please fill in all fields")
	case strings.TrimSpace(req.Contact.Email) == "":
		return NewValidationError("email", "Please fill in all fields")
	case strings.TrimSpace(req.Contact.Phone) == "":
		return NewValidationError("phone", "Please fill in all fields")
	}
	return nil
}

// SubmitBooking performs exactly one write for a fully populated request.
// Availability is not re-read; the store's slot-key uniqueness is what stops
// two customers from taking the same slot.
func (s *DefaultBookingService) SubmitBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	loc := s.location()
	at, err := CombineDateAndSlot(req.Date, req.Time, loc)
	if err != nil {
		return nil, NewValidationError("time", "Please select one of the listed times")
	}

	booking := &models.Booking{
		SlotKey:     SlotKey(at),
		Date:        at,
		Time:        req.Time,
		Name:        req.Contact.Name,
		Email:       req.Contact.Email,
		Phone:       req.Contact.Phone,
		BarberEmail: s.OperatorEmail,
		Status:      models.BookingStatusConfirmed,
		CreatedAt:   s.now(),
	}

	logger := s.logger()
	if err := s.Repo.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
			logger.Warn("SubmitBooking: slot already taken", zap.String("slotKey", booking.SlotKey))
			return nil, NewExternalCallError(OpBookingWrite, ErrSlotTaken)
		}
		logger.Error("SubmitBooking: error creating booking", zap.String("slotKey", booking.SlotKey), zap.Error(err))
		return nil, NewExternalCallError(OpBookingWrite, err)
	}
	logger.Info("SubmitBooking: booking confirmed", zap.String("id", booking.ID), zap.String("slotKey", booking.SlotKey))

	for _, hook := range s.Hooks {
		if err := hook.BookingConfirmed(ctx, *booking); err != nil {
			logger.Warn("SubmitBooking: confirmation hook failed", zap.String("id", booking.ID), zap.Error(err))
		}
	}
	return booking, nil
}

func (s *DefaultBookingService) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
