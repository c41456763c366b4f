package booking

import (
	"context"
	"time"

	bookingRepo "soupbarber/database/repository/booking"
)

// AvailabilityService looks up which labels are already booked on a day.
type AvailabilityService interface {
	BookedSlots(ctx context.Context, date time.Time) ([]string, error)
}

// DefaultAvailabilityService queries the booking repository.
type DefaultAvailabilityService struct {
	Repo     bookingRepo.BookingRepository
	Location *time.Location
}

// BookedSlots returns the time labels booked on date's calendar day,
// duplicates included.
func (s *DefaultAvailabilityService) BookedSlots(ctx context.Context, date time.Time) ([]string, error) {
	if date.IsZero() {
		return nil, NewValidationError("date", "Please select a date")
	}

	start, end := DayBounds(date, s.location())
	times, err := s.Repo.GetBookedTimes(ctx, start, end)
	if err != nil {
		return nil, NewExternalCallError(OpAvailabilityLookup, err)
	}
	return times, nil
}

func (s *DefaultAvailabilityService) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// SlotView is one slot button as rendered to the customer.
type SlotView struct {
	Label    string `json:"label"`
	Booked   bool   `json:"booked"`
	Selected bool   `json:"selected"`
}

// BuildSlotViews marks every bookable label as booked or selected.
func BuildSlotViews(booked []string, selected string) []SlotView {
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}

	views := make([]SlotView, 0, len(slotLabels))
	for _, label := range slotLabels {
		views = append(views, SlotView{
			Label:    label,
			Booked:   taken[label],
			Selected: label == selected,
		})
	}
	return views
}
