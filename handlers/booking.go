package handlers

import (
	"errors"
	"net/http"
	"time"

	"soupbarber/models"
	"soupbarber/services/booking"
	"soupbarber/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler drives booking widgets over HTTP.
type BookingHandler struct {
	Sessions     *booking.SessionRegistry
	Availability booking.AvailabilityService
	Location     *time.Location
	Logger       *zap.Logger
}

func NewBookingHandler(sessions *booking.SessionRegistry, availability booking.AvailabilityService, loc *time.Location, logger *zap.Logger) *BookingHandler {
	if loc == nil {
		loc = time.Local
	}
	return &BookingHandler{
		Sessions:     sessions,
		Availability: availability,
		Location:     loc,
		Logger:       logger,
	}
}

// GetSlots returns the slot buttons for a day without opening a session.
func (h *BookingHandler) GetSlots(c *gin.Context) {
	date, err := booking.ParseDate(c.Query("date"), h.Location)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "Missing or invalid date; expected YYYY-MM-DD", err.Error())
		return
	}

	resp := gin.H{"date": booking.FormatDate(date)}
	booked, err := h.Availability.BookedSlots(c.Request.Context(), date)
	if err != nil {
		// Fail open: every slot is shown as available.
		h.Logger.Error("Error fetching booked slots", zap.String("date", booking.FormatDate(date)), zap.Error(err))
		resp["warning"] = booking.UserMessage(err)
		booked = nil
	}
	if booked == nil {
		booked = []string{}
	}
	resp["bookedSlots"] = booked
	resp["slots"] = booking.BuildSlotViews(booked, "")
	c.JSON(http.StatusOK, resp)
}

// CreateSession opens a new booking widget.
func (h *BookingHandler) CreateSession(c *gin.Context) {
	id, w := h.Sessions.Create()
	h.Logger.Debug("booking session created", zap.String("sessionID", id))
	c.JSON(http.StatusCreated, gin.H{"sessionID": id, "widget": w.View()})
}

// GetSession returns the widget's current view.
func (h *BookingHandler) GetSession(c *gin.Context) {
	w, ok := h.widget(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"widget": w.View()})
}

// SelectDate handles PUT /session/:sessionID/date.
func (h *BookingHandler) SelectDate(c *gin.Context) {
	w, ok := h.widget(c)
	if !ok {
		return
	}

	var body struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "Missing or invalid date in request body", err.Error())
		return
	}
	date, err := booking.ParseDate(body.Date, h.Location)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "Missing or invalid date; expected YYYY-MM-DD", err.Error())
		return
	}

	resp := gin.H{}
	if err := w.SelectDate(c.Request.Context(), date); err != nil {
		var extErr *booking.ExternalCallError
		if !errors.As(err, &extErr) {
			h.respondError(c, err)
			return
		}
		resp["warning"] = booking.UserMessage(err)
	}
	resp["widget"] = w.View()
	c.JSON(http.StatusOK, resp)
}

// SelectTime handles PUT /session/:sessionID/time.
func (h *BookingHandler) SelectTime(c *gin.Context) {
	w, ok := h.widget(c)
	if !ok {
		return
	}

	var body struct {
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "Missing or invalid time in request body", err.Error())
		return
	}

	if err := w.SelectTime(body.Time); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"widget": w.View()})
}

// UpdateContact handles PUT /session/:sessionID/contact.
func (h *BookingHandler) UpdateContact(c *gin.Context) {
	w, ok := h.widget(c)
	if !ok {
		return
	}

	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		utils.JSONError(c, http.StatusBadRequest, booking.CodeValidation, "Invalid request payload", err.Error())
		return
	}

	if err := w.SetContact(contact); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"widget": w.View()})
}

// Submit handles POST /session/:sessionID/submit.
func (h *BookingHandler) Submit(c *gin.Context) {
	w, ok := h.widget(c)
	if !ok {
		return
	}

	confirmed, err := w.Submit(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Booking Confirmed! We'll see you at your appointment.",
		"booking": confirmed,
		"widget":  w.View(),
	})
}

// Reset handles POST /session/:sessionID/reset.
func (h *BookingHandler) Reset(c *gin.Context) {
	w, ok := h.widget(c)
	if !ok {
		return
	}
	if err := w.Reset(); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"widget": w.View()})
}

// DeleteSession handles DELETE /session/:sessionID.
func (h *BookingHandler) DeleteSession(c *gin.Context) {
	if err := h.Sessions.Delete(c.Param("sessionID")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) widget(c *gin.Context) (*booking.Widget, bool) {
	w, err := h.Sessions.Get(c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return w, true
}

func (h *BookingHandler) respondError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("booking request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	utils.JSONError(c, status, code, booking.UserMessage(err), err.Error())
}

func errorStatus(err error) (int, string) {
	var vErr *booking.ValidationError
	var extErr *booking.ExternalCallError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Code
	case errors.Is(err, booking.ErrSessionNotFound):
		return http.StatusNotFound, "sessionNotFound"
	case errors.Is(err, booking.ErrSlotTaken):
		return http.StatusConflict, "slotTaken"
	case errors.Is(err, booking.ErrSlotUnavailable):
		return http.StatusConflict, "slotUnavailable"
	case errors.Is(err, booking.ErrSubmissionInProgress):
		return http.StatusConflict, "submissionInProgress"
	case errors.Is(err, booking.ErrInvalidTransition):
		return http.StatusConflict, "invalidTransition"
	case errors.As(err, &extErr):
		return http.StatusBadGateway, extErr.Code
	default:
		return http.StatusInternalServerError, "internalError"
	}
}
