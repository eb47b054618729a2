package notification

import (
	"context"
	"fmt"

	"hotelsa/models"
	"hotelsa/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer schedules a booking confirmation for delivery.
type Enqueuer interface {
	EnqueueBookingConfirmation(ctx context.Context, c models.BookingConfirmation) error
}

// AsynqEnqueuer hands confirmations to the asynq worker through Redis.
type AsynqEnqueuer struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewAsynqEnqueuer(client *asynq.Client, logger *zap.Logger) *AsynqEnqueuer {
	return &AsynqEnqueuer{client: client, logger: logger}
}

func (q *AsynqEnqueuer) EnqueueBookingConfirmation(ctx context.Context, c models.BookingConfirmation) error {
	task, opts, err := tasks.NewBookingConfirmationTask(c)
	if err != nil {
		return fmt.Errorf("failed to build confirmation task: %w", err)
	}
	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue confirmation for booking %s: %w", c.BookingID, err)
	}
	q.logger.Debug("Booking confirmation enqueued", zap.String("taskID", info.ID), zap.String("queue", info.Queue))
	return nil
}

// InlineEnqueuer delivers immediately. Used by the in-memory backend, which
// runs without Redis.
type InlineEnqueuer struct {
	Service NotificationService
}

func (q InlineEnqueuer) EnqueueBookingConfirmation(ctx context.Context, c models.BookingConfirmation) error {
	return q.Service.DeliverBookingConfirmation(ctx, c)
}
