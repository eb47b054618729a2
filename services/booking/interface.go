package booking

import (
	"context"
	"time"

	bookingRepo "hotelsa/database/repository/booking"
	hotelRepo "hotelsa/database/repository/hotel"
	"hotelsa/models"
	"hotelsa/services/notification"

	"go.uber.org/zap"
)

// BookingService prices and stores hotel stays.
type BookingService interface {
	// DefaultRequest is the stay the booking screen opens with.
	DefaultRequest(hotelID string) models.BookingRequest
	// Quote validates the request and prices it.
	Quote(ctx context.Context, req models.BookingRequest) (*models.BookingQuote, error)
	// Confirm stores the booking for userID and schedules its confirmation.
	Confirm(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error)
	// ListForUser returns the user's bookings, newest first.
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Hotels   hotelRepo.HotelRepository
	Bookings bookingRepo.BookingRepository
	Notifier notification.Enqueuer
	Logger   *zap.Logger
	Now      func() time.Time
}

func NewBookingService(
	hotels hotelRepo.HotelRepository,
	bookings bookingRepo.BookingRepository,
	notifier notification.Enqueuer,
	logger *zap.Logger,
) *DefaultBookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultBookingService{
		Hotels:   hotels,
		Bookings: bookings,
		Notifier: notifier,
		Logger:   logger,
		Now:      time.Now,
	}
}
