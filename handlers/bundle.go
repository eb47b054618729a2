package handlers

import (
	"hotelsa/navigation"
	"hotelsa/services/booking"
	"hotelsa/services/review"
	"hotelsa/services/session"
	"hotelsa/services/user"
	"hotelsa/utils"
)

// HandlerBundle carries what the endpoint handlers need.
type HandlerBundle struct {
	Sessions *session.Manager
	Tokens   *utils.SessionTokens
	Screens  *navigation.Registry
	Health   *utils.HealthMonitor

	Users    user.UserService
	Bookings booking.BookingService
	Reviews  review.ReviewService
}
