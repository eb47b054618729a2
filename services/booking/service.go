package booking

import (
	"context"
	"fmt"

	"hotelsa/models"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) DefaultRequest(hotelID string) models.BookingRequest {
	checkIn := s.Now().AddDate(0, 0, 1)
	return models.BookingRequest{
		HotelID:      hotelID,
		CheckInDate:  checkIn.Format(DateLayout),
		CheckOutDate: checkIn.AddDate(0, 0, DefaultNights).Format(DateLayout),
		Guests:       DefaultGuests,
		Rooms:        DefaultRooms,
	}
}

func (s *DefaultBookingService) Quote(ctx context.Context, req models.BookingRequest) (*models.BookingQuote, error) {
	if req.HotelID == "" {
		return nil, newValidationError("hotelId", "is required")
	}
	nights, err := Nights(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return nil, err
	}
	if err := validateParty(req.Guests, req.Rooms); err != nil {
		return nil, err
	}

	hotel, err := s.Hotels.GetByID(ctx, req.HotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to quote booking: %w", err)
	}

	return &models.BookingQuote{
		HotelID:      hotel.ID,
		HotelName:    hotel.Name,
		CheckInDate:  req.CheckInDate,
		CheckOutDate: req.CheckOutDate,
		Guests:       req.Guests,
		Rooms:        req.Rooms,
		Nights:       nights,
		NightlyRate:  hotel.Price,
		Total:        Total(nights, hotel.Price, req.Rooms),
	}, nil
}

func (s *DefaultBookingService) Confirm(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error) {
	if userID == "" {
		return nil, ErrSignInRequired
	}
	quote, err := s.Quote(ctx, req)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		UserID:       userID,
		HotelID:      quote.HotelID,
		HotelName:    quote.HotelName,
		CheckInDate:  quote.CheckInDate,
		CheckOutDate: quote.CheckOutDate,
		Guests:       quote.Guests,
		Rooms:        quote.Rooms,
		Nights:       quote.Nights,
		Total:        quote.Total,
		Status:       models.BookingStatusConfirmed,
		CreatedAt:    s.Now(),
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to store booking: %w", err)
	}

	// The booking stands even if the confirmation push cannot be queued.
	if s.Notifier != nil {
		confirmation := models.BookingConfirmation{
			BookingID:    b.ID,
			UserID:       b.UserID,
			HotelName:    b.HotelName,
			CheckInDate:  b.CheckInDate,
			CheckOutDate: b.CheckOutDate,
			Total:        b.Total,
			CreatedAt:    b.CreatedAt,
		}
		if err := s.Notifier.EnqueueBookingConfirmation(ctx, confirmation); err != nil {
			s.Logger.Error("Confirm: failed to enqueue booking confirmation",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	s.Logger.Info("Booking confirmed",
		zap.String("bookingID", b.ID),
		zap.String("userID", userID),
		zap.String("hotelID", b.HotelID),
		zap.Float64("total", b.Total))
	return b, nil
}

func (s *DefaultBookingService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	if userID == "" {
		return nil, ErrSignInRequired
	}
	bookings, err := s.Bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}
