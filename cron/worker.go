package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"grandstay/config"
	"grandstay/services/notification"
	"grandstay/services/tasks"
	"grandstay/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// NewQueueClient builds the asynq producer used to enqueue email tasks.
func NewQueueClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}

// StartEmailWorker runs the asynq consumer that delivers queued emails through
// the SMTP mailer. It blocks, so run it in its own goroutine.
func StartEmailWorker(mailer *notification.Mailer) *asynq.Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendEmail, func(ctx context.Context, t *asynq.Task) error {
		var payload tasks.EmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("failed to decode email payload: %w", err)
		}
		if err := mailer.Send(payload.To, payload.Subject, payload.Body); err != nil {
			utils.GetLogger().Warn("email delivery failed",
				zap.String("to", payload.To), zap.Error(err))
			return err
		}
		return nil
	})

	go func() {
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Error("email worker stopped", zap.Error(err))
		}
	}()
	return srv
}
