package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"soupbarber/models"

	"go.uber.org/zap"
)

// State is a step of the slot selection flow.
type State int

const (
	StateNoDateSelected State = iota
	StateDateSelected
	StateDateAndTimeSelected
	StateSubmitting
	StateConfirmed
)

var stateNames = map[State]string{
	StateNoDateSelected:      "noDateSelected",
	StateDateSelected:        "dateSelected",
	StateDateAndTimeSelected: "dateAndTimeSelected",
	StateSubmitting:          "submitting",
	StateConfirmed:           "confirmed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText renders the state by name in JSON views.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// WidgetConfig carries a widget's collaborators.
type WidgetConfig struct {
	Availability AvailabilityService
	Bookings     BookingService
	Location     *time.Location
	Now          func() time.Time
	Logger       *zap.Logger
}

// Widget is one customer's date/time picker and contact form.
//
// The external calls run without holding mu. Every date selection bumps
// generation and an availability result is applied only if no newer selection
// (or confirmation/reset) happened while it was in flight.
type Widget struct {
	mu sync.Mutex

	availability AvailabilityService
	bookings     BookingService
	location     *time.Location
	now          func() time.Time
	logger       *zap.Logger

	state        State
	date         time.Time
	selectedTime string
	contact      models.Contact
	booked       []string
	generation   uint64
	lastError    string
	confirmation *models.Booking
}

// WidgetView is a snapshot of the widget for rendering.
type WidgetView struct {
	State        State           `json:"state"`
	Date         string          `json:"date,omitempty"`
	Time         string          `json:"time,omitempty"`
	Contact      models.Contact  `json:"contact"`
	Slots        []SlotView      `json:"slots"`
	BookedSlots  []string        `json:"bookedSlots"`
	CanSubmit    bool            `json:"canSubmit"`
	Error        string          `json:"error,omitempty"`
	Confirmation *models.Booking `json:"confirmation,omitempty"`
}

func NewWidget(cfg WidgetConfig) *Widget {
	w := &Widget{
		availability: cfg.Availability,
		bookings:     cfg.Bookings,
		location:     cfg.Location,
		now:          cfg.Now,
		logger:       cfg.Logger,
		state:        StateNoDateSelected,
	}
	if w.location == nil {
		w.location = time.Local
	}
	if w.now == nil {
		w.now = time.Now
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	return w
}

// editableLocked rejects actions while submitting or after confirmation.
func (w *Widget) editableLocked() error {
	switch w.state {
	case StateSubmitting:
		return ErrSubmissionInProgress
	case StateConfirmed:
		return ErrInvalidTransition
	}
	return nil
}

// SelectDate picks a calendar day, clears any selected time and refreshes the
// booked-slots view. A failed lookup keeps the previous view and is returned
// as a non-fatal ExternalCallError.
func (w *Widget) SelectDate(ctx context.Context, date time.Time) error {
	if date.IsZero() {
		return NewValidationError("date", "Please select a date")
	}
	day, _ := DayBounds(date, w.location)

	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return err
	}
	today, _ := DayBounds(w.now(), w.location)
	if day.Before(today) {
		w.mu.Unlock()
		return NewValidationError("date", "Please choose today or a later date")
	}

	w.date = day
	w.selectedTime = ""
	w.state = StateDateSelected
	w.lastError = ""
	w.generation++
	gen := w.generation
	w.mu.Unlock()

	booked, err := w.availability.BookedSlots(ctx, day)

	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.generation {
		w.logger.Debug("discarding stale availability result", zap.String("date", FormatDate(day)))
		return nil
	}
	if err != nil {
		w.logger.Error("Error fetching booked slots", zap.String("date", FormatDate(day)), zap.Error(err))
		w.lastError = UserMessage(err)
		return err
	}

	w.booked = booked
	// A time picked while the lookup was in flight may turn out to be taken.
	if w.state == StateDateAndTimeSelected && w.isBookedLocked(w.selectedTime) {
		w.selectedTime = ""
		w.state = StateDateSelected
	}
	return nil
}

// SelectTime picks one of the day's labels. Booked labels are refused and
// leave the widget unchanged.
func (w *Widget) SelectTime(label string) error {
	if !IsSlotLabel(label) {
		return NewValidationError("time", "Please select one of the listed times")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(); err != nil {
		return err
	}
	if w.state == StateNoDateSelected {
		return ErrInvalidTransition
	}
	if w.isBookedLocked(label) {
		return ErrSlotUnavailable
	}

	w.selectedTime = label
	w.state = StateDateAndTimeSelected
	return nil
}

// SetContact replaces the contact fields.
func (w *Widget) SetContact(contact models.Contact) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.editableLocked(); err != nil {
		return err
	}
	w.contact = contact
	return nil
}

// Submit writes the booking once. Missing fields leave the widget untouched.
// On failure the widget becomes editable again with the contact fields kept.
func (w *Widget) Submit(ctx context.Context) (*models.Booking, error) {
	w.mu.Lock()
	if err := w.editableLocked(); err != nil {
		w.mu.Unlock()
		return nil, err
	}

	req := models.BookingRequest{
		Date:    w.date,
		Time:    w.selectedTime,
		Contact: w.contact,
	}
	if err := ValidateRequest(req); err != nil {
		w.mu.Unlock()
		return nil, err
	}

	w.state = StateSubmitting
	w.lastError = ""
	w.mu.Unlock()

	booking, err := w.bookings.SubmitBooking(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		w.logger.Error("Error creating booking", zap.String("date", FormatDate(req.Date)), zap.String("time", req.Time), zap.Error(err))
		w.lastError = UserMessage(err)
		if errors.Is(err, ErrSlotTaken) {
			if !w.isBookedLocked(req.Time) {
				w.booked = append(w.booked, req.Time)
			}
			w.selectedTime = ""
			w.state = StateDateSelected
		} else {
			w.state = StateDateAndTimeSelected
		}
		return nil, err
	}

	w.state = StateConfirmed
	w.date = time.Time{}
	w.selectedTime = ""
	w.contact = models.Contact{}
	w.booked = nil
	w.confirmation = booking
	w.generation++
	return booking, nil
}

// Reset starts a new booking after a confirmation.
func (w *Widget) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateConfirmed {
		return ErrInvalidTransition
	}

	w.state = StateNoDateSelected
	w.date = time.Time{}
	w.selectedTime = ""
	w.contact = models.Contact{}
	w.booked = nil
	w.lastError = ""
	w.confirmation = nil
	w.generation++
	return nil
}

// State returns the current step.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// View returns a snapshot for rendering.
func (w *Widget) View() WidgetView {
	w.mu.Lock()
	defer w.mu.Unlock()

	view := WidgetView{
		State:        w.state,
		Time:         w.selectedTime,
		Contact:      w.contact,
		Slots:        BuildSlotViews(w.booked, w.selectedTime),
		BookedSlots:  append([]string{}, w.booked...),
		CanSubmit:    w.state == StateDateAndTimeSelected,
		Error:        w.lastError,
		Confirmation: w.confirmation,
	}
	if !w.date.IsZero() {
		view.Date = FormatDate(w.date)
	}
	return view
}

func (w *Widget) isBookedLocked(label string) bool {
	for _, b := range w.booked {
		if b == label {
			return true
		}
	}
	return false
}
