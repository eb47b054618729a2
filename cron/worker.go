package cron

import (
	"context"
	"fmt"
	"time"

	"hotelsa/services/notification"
	"hotelsa/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const maxStartAttempts = 5

// InitConfirmationWorker runs the booking confirmation worker in the
// background. The returned server is shut down by the caller.
func InitConfirmationWorker(ctx context.Context, redisOpt asynq.RedisClientOpt, notifSvc notification.NotificationService, logger *zap.Logger) *asynq.Server {
	logger = logger.With(zap.String("component", "confirmation-worker"))

	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingConfirmation, HandleBookingConfirmation(notifSvc, logger))

	go monitorRedisConnection(ctx, redisOpt, logger)

	go func() {
		logger.Info("Starting async worker")
		for attempts := 1; attempts <= maxStartAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("Failed to start worker",
				zap.Int("attempt", attempts),
				zap.Int("maxAttempts", maxStartAttempts),
				zap.Error(err))
			if attempts == maxStartAttempts {
				logger.Error("Max start attempts reached; booking confirmations will not be delivered")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

// HandleBookingConfirmation delivers one queued booking confirmation.
// Malformed payloads are skipped rather than retried.
func HandleBookingConfirmation(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseBookingConfirmation(task)
		if err != nil {
			logger.Error("Invalid payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		logger.Info("Delivering booking confirmation",
			zap.String("bookingID", p.BookingID),
			zap.String("userID", p.UserID))
		if err := notifSvc.DeliverBookingConfirmation(ctx, p); err != nil {
			logger.Error("Failed to send notification", zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings the queue's Redis until ctx ends.
func monitorRedisConnection(ctx context.Context, opt asynq.RedisClientOpt, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("Redis connection lost", zap.Error(err))
			}
		}
	}
}
