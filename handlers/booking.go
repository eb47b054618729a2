package handlers

import (
	"net/http"

	"hotelsa/models"
	"hotelsa/navigation"

	"github.com/gin-gonic/gin"
)

func bindBooking(c *gin.Context) (models.BookingRequest, bool) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return req, false
	}
	return req, true
}

// QuoteHandler prices a stay without storing it.
func (hb *HandlerBundle) QuoteHandler(c *gin.Context) {
	req, ok := bindBooking(c)
	if !ok {
		return
	}
	quote, err := hb.Bookings.Quote(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote})
}

// ConfirmBookingHandler stores the booking for the signed-in user and
// returns the session to home.
func (hb *HandlerBundle) ConfirmBookingHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	req, ok := bindBooking(c)
	if !ok {
		return
	}

	id := s.Identity()
	if id == nil {
		f, err := s.Snapshot(c.Request.Context())
		if err != nil {
			sessionError(c, err)
			return
		}
		requiresAuth(c, f.Entry.Screen, navigation.ScreenBooking)
		return
	}

	b, err := hb.Bookings.Confirm(c.Request.Context(), id.UID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	res, err := s.Replace(c.Request.Context(), navigation.ScreenHome, nil)
	if err != nil {
		sessionError(c, err)
		return
	}
	hb.respondFrame(c, http.StatusCreated, res.Frame, gin.H{"booking": b})
}

// ListBookingsHandler returns the signed-in user's bookings, newest first.
func (hb *HandlerBundle) ListBookingsHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	id := s.Identity()
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
		return
	}
	bookings, err := hb.Bookings.ListForUser(c.Request.Context(), id.UID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
