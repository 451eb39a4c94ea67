package tasks

import (
	"encoding/json"
	"time"

	"tourbook/models"

	"github.com/hibiken/asynq"
)

const (
	TypePasswordReset = "email:password_reset"
	TypeBookingStatus = "email:booking_status"
)

// NewPasswordResetTask expires together with the code it carries.
func NewPasswordResetTask(payload models.PasswordResetPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePasswordReset, b)
	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Deadline(time.Now().Add(time.Duration(payload.TTL) * time.Minute)),
	}
	return task, opts, nil
}

func NewBookingStatusTask(payload models.BookingStatusPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingStatus, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}
	return task, opts, nil
}
