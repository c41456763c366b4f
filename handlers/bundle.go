// File: soupbarber/handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability
	GetSlots gin.HandlerFunc

	// Booking widget sessions
	CreateSession gin.HandlerFunc
	GetSession    gin.HandlerFunc
	DeleteSession gin.HandlerFunc
	SelectDate    gin.HandlerFunc
	SelectTime    gin.HandlerFunc
	UpdateContact gin.HandlerFunc
	Submit        gin.HandlerFunc
	Reset         gin.HandlerFunc
}

// NewHandlerBundle exposes a BookingHandler's endpoints.
func NewHandlerBundle(h *BookingHandler) *HandlerBundle {
	return &HandlerBundle{
		GetSlots:      h.GetSlots,
		CreateSession: h.CreateSession,
		GetSession:    h.GetSession,
		DeleteSession: h.DeleteSession,
		SelectDate:    h.SelectDate,
		SelectTime:    h.SelectTime,
		UpdateContact: h.UpdateContact,
		Submit:        h.Submit,
		Reset:         h.Reset,
	}
}
