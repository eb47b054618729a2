package notification

import (
	"context"
	"fmt"
	"strconv"

	userRepo "hotelsa/database/repository/user"
	"hotelsa/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// PushSender is the part of the FCM client used for delivery.
// *messaging.Client satisfies it.
type PushSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService delivers booking confirmations to the user's device.
type NotificationService interface {
	DeliverBookingConfirmation(ctx context.Context, c models.BookingConfirmation) error
}

// DefaultNotificationService is the production implementation. Without a
// PushSender, or when the user never registered a push token, the
// confirmation is only logged.
type DefaultNotificationService struct {
	users  userRepo.UserRepository
	push   PushSender
	logger *zap.Logger
}

func NewDefaultNotificationService(users userRepo.UserRepository, push PushSender, logger *zap.Logger) (*DefaultNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{users: users, push: push, logger: logger}, nil
}

// BookingConfirmationMessage renders the push shown after a booking.
func BookingConfirmationMessage(c models.BookingConfirmation) models.Notification {
	total := strconv.FormatFloat(c.Total, 'f', -1, 64)
	return models.Notification{
		UserID: c.UserID,
		Title:  "Booking Confirmed!",
		Body: fmt.Sprintf("Your booking at %s has been confirmed.\n\nCheck-in: %s\nCheck-out: %s\nTotal: R%s",
			c.HotelName, c.CheckInDate, c.CheckOutDate, total),
		Data: map[string]string{
			"type":      "booking_confirmed",
			"bookingId": c.BookingID,
		},
	}
}

func (s *DefaultNotificationService) DeliverBookingConfirmation(ctx context.Context, c models.BookingConfirmation) error {
	n := BookingConfirmationMessage(c)

	token := ""
	if s.push != nil {
		u, err := s.users.GetByID(ctx, c.UserID)
		if err != nil {
			s.logger.Warn("DeliverBookingConfirmation: profile lookup failed",
				zap.String("userID", c.UserID), zap.Error(err))
		} else {
			token = u.PushToken
		}
	}
	if token == "" {
		s.logger.Info("Booking confirmation (no push target)",
			zap.String("userID", c.UserID),
			zap.String("bookingID", c.BookingID),
			zap.String("title", n.Title),
			zap.String("body", n.Body))
		return nil
	}

	msg := &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: n.Title, Body: n.Body},
		Data:         n.Data,
	}
	id, err := s.push.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("DeliverBookingConfirmation: failed to send FCM message: %w", err)
	}
	s.logger.Info("Booking confirmation sent", zap.String("userID", c.UserID), zap.String("messageID", id))
	return nil
}
