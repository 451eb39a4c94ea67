package notification

import (
	"context"
	"fmt"

	"tourbook/models"
	"tourbook/services/tasks"
	"tourbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NotificationService queues outgoing mail for the background worker.
type NotificationService interface {
	SendPasswordReset(ctx context.Context, payload models.PasswordResetPayload) error
	SendBookingStatus(ctx context.Context, payload models.BookingStatusPayload) error
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	queue Enqueuer
}

func NewDefaultNotificationService(queue Enqueuer) (*DefaultNotificationService, error) {
	if queue == nil {
		return nil, fmt.Errorf("notification service initialization error: queue client is nil")
	}
	return &DefaultNotificationService{queue: queue}, nil
}

func (s *DefaultNotificationService) SendPasswordReset(ctx context.Context, payload models.PasswordResetPayload) error {
	task, opts, err := tasks.NewPasswordResetTask(payload)
	if err != nil {
		return fmt.Errorf("SendPasswordReset: failed to build task: %w", err)
	}
	info, err := s.queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("SendPasswordReset: failed to enqueue: %w", err)
	}
	utils.GetLogger().Debug("Queued password reset mail", zap.String("taskID", info.ID), zap.String("email", payload.Email))
	return nil
}

func (s *DefaultNotificationService) SendBookingStatus(ctx context.Context, payload models.BookingStatusPayload) error {
	task, opts, err := tasks.NewBookingStatusTask(payload)
	if err != nil {
		return fmt.Errorf("SendBookingStatus: failed to build task: %w", err)
	}
	info, err := s.queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("SendBookingStatus: failed to enqueue: %w", err)
	}
	utils.GetLogger().Debug("Queued booking status mail",
		zap.String("taskID", info.ID),
		zap.String("bookingID", payload.BookingID),
		zap.String("status", payload.NewStatus),
	)
	return nil
}
