package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tourbook/config"
	"tourbook/models"
	"tourbook/services/tasks"
	"tourbook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueRedisOpt is shared by the API's asynq client and the worker.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewMux routes every queued task type to its handler.
func NewMux(mailer Mailer) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePasswordReset, handlePasswordResetTask(mailer))
	mux.HandleFunc(tasks.TypeBookingStatus, handleBookingStatusTask(mailer))
	return mux
}

// InitMailWorker runs the async worker in background. The returned server
// should be shut down on exit.
func InitMailWorker(ctx context.Context, mailer Mailer) *asynq.Server {
	logger := utils.GetLogger()
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)
	mux := NewMux(mailer)

	go monitorRedisConnection(ctx)

	// Start async worker with retry logic
	go func() {
		logger.Info("Starting mail worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Error("Failed to start mail worker", zap.Int("attempt", attempts), zap.Int("max", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Mail worker gave up; queued mail will wait for the next start")
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

func handlePasswordResetTask(mailer Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PasswordResetPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("Invalid password reset payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		body := fmt.Sprintf("Hello %s,\n\nYour password reset code is %s. It expires in %d minutes.\n", p.Name, p.Code, p.TTL)
		return mailer.Send(ctx, p.Email, "Password reset code", body)
	}
}

func handleBookingStatusTask(mailer Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.BookingStatusPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			utils.GetLogger().Error("Invalid booking status payload", zap.Error(err))
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		if p.Email == "" {
			utils.GetLogger().Warn("Booking status mail has no recipient", zap.String("bookingID", p.BookingID))
			return nil
		}
		dates := p.FromDate
		if p.ToDate != "" && p.ToDate != p.FromDate {
			dates = p.FromDate + " to " + p.ToDate
		}
		body := fmt.Sprintf("Your vehicle booking for %s is now %s (was %s).\n", dates, p.NewStatus, p.OldStatus)
		return mailer.Send(ctx, p.Email, "Vehicle booking "+p.NewStatus, body)
	}
}

// monitorRedisConnection pings the queue database periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil {
				utils.GetLogger().Warn("Queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
