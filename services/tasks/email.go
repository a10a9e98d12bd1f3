package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TypeSendEmail is the task type for outbound email delivery.
const TypeSendEmail = "email:send"

// EmailPayload carries one outbound email through the queue.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewEmailTask builds an asynq task for the email dispatch worker.
func NewEmailTask(payload EmailPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeSendEmail, b, asynq.MaxRetry(3)), nil
}
