package bookingRepo

import (
	"context"

	"hotelsa/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a booking. ID and CreatedAt are set when empty.
	Create(ctx context.Context, booking *models.Booking) error
	// ListByUser returns a user's bookings, newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
}
