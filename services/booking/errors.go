package booking

import (
	"errors"
	"fmt"
)

// Error codes shared with the HTTP layer.
const (
	CodeValidation   = "validationError"
	CodeExternalCall = "externalCallError"
)

// External operations named in ExternalCallError.Op.
const (
	OpAvailabilityLookup = "availability lookup"
	OpBookingWrite       = "booking write"
)

var (
	// ErrSlotTaken is returned when the store refuses a second booking for a slot.
	ErrSlotTaken = errors.New("this time slot has just been booked")
	// ErrSlotUnavailable is returned when selecting a label already booked.
	ErrSlotUnavailable = errors.New("this time slot is not available")
	// ErrSubmissionInProgress is returned while a submission is in flight.
	ErrSubmissionInProgress = errors.New("a booking is already being submitted")
	// ErrInvalidTransition is returned for actions the current state does not allow.
	ErrInvalidTransition = errors.New("action not allowed in the current booking state")
	// ErrSessionNotFound is returned for unknown or expired widget sessions.
	ErrSessionNotFound = errors.New("booking session not found or expired")
)

// ValidationError reports a missing or invalid field.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{
		Code:    CodeValidation,
		Field:   field,
		Message: msg,
	}
}

// ExternalCallError wraps a failed store query or write.
type ExternalCallError struct {
	Code string
	Op   string
	Err  error
}

func (e *ExternalCallError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Code, e.Op, e.Err)
}

func (e *ExternalCallError) Unwrap() error {
	return e.Err
}

func NewExternalCallError(op string, err error) error {
	return &ExternalCallError{
		Code: CodeExternalCall,
		Op:   op,
		Err:  err,
	}
}

// UserMessage turns err into the text shown to the customer.
func UserMessage(err error) string {
	var vErr *ValidationError
	var extErr *ExternalCallError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.As(err, &extErr) && extErr.Op == OpAvailabilityLookup:
		return "Could not load booked times. Some slots may already be taken."
	case errors.Is(err, ErrSlotTaken):
		return "Sorry, that time was just booked. Please pick another slot."
	case errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrSubmissionInProgress),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrSessionNotFound):
		return err.Error()
	default:
		return "Failed to create booking. Please try again."
	}
}
