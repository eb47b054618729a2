package tasks

import (
	"encoding/json"
	"fmt"

	"hotelsa/models"

	"github.com/hibiken/asynq"
)

const TypeBookingConfirmation = "booking:confirmation"

// MaxConfirmationRetries bounds redelivery of a failed push.
const MaxConfirmationRetries = 5

func NewBookingConfirmationTask(payload models.BookingConfirmation) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingConfirmation, b)
	opts := []asynq.Option{asynq.MaxRetry(MaxConfirmationRetries)}
	if payload.BookingID != "" {
		opts = append(opts, asynq.TaskID("booking-confirmation:"+payload.BookingID))
	}
	return task, opts, nil
}

func ParseBookingConfirmation(task *asynq.Task) (models.BookingConfirmation, error) {
	var p models.BookingConfirmation
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %w", TypeBookingConfirmation, err)
	}
	return p, nil
}
