package notification

import (
	"context"
	"time"

	notificationRepo "grandstay/database/repository/notification"
	userRepo "grandstay/database/repository/user"
	"grandstay/models"
	"grandstay/services/tasks"
	"grandstay/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskQueue is the slice of asynq.Client the notifier needs.
type TaskQueue interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultNotifier is the production implementation of Notifier. In-app records
// are written synchronously; emails go through the asynq queue and are picked
// up by the dispatch worker.
type DefaultNotifier struct {
	Users         userRepo.UserRepository
	Notifications notificationRepo.NotificationRepository
	Queue         TaskQueue
}

func NewDefaultNotifier(users userRepo.UserRepository, notifications notificationRepo.NotificationRepository, queue TaskQueue) *DefaultNotifier {
	return &DefaultNotifier{
		Users:         users,
		Notifications: notifications,
		Queue:         queue,
	}
}

// NotifyUser records an in-app notification and enqueues an email when the
// user has email notifications enabled. Errors are logged and swallowed.
func (s *DefaultNotifier) NotifyUser(ctx context.Context, userID, notifType, subject, message, link string) {
	logger := utils.GetLogger()

	n := &models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Type:    notifType,
		Message: message,
		Link:    link,
	}
	if err := s.Notifications.Create(n); err != nil {
		logger.Warn("failed to record in-app notification",
			zap.String("userID", userID), zap.String("type", notifType), zap.Error(err))
	}

	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		logger.Warn("notification recipient lookup failed", zap.String("userID", userID), zap.Error(err))
		return
	}
	if !u.EmailNotifications {
		return
	}
	s.enqueueEmail(u.Email, subject, message)
}

// NotifyAdmins fans the notification out to every staff account.
func (s *DefaultNotifier) NotifyAdmins(ctx context.Context, notifType, subject, message, link string) {
	logger := utils.GetLogger()

	admins, err := s.Users.GetByRoles(models.RoleAdmin, models.RoleSuperAdmin)
	if err != nil {
		logger.Warn("failed to list admin accounts for fan-out", zap.Error(err))
		return
	}
	for _, admin := range admins {
		s.NotifyUser(ctx, admin.ID, notifType, subject, message, link)
	}
}

// EmailUser enqueues a bare email to one user without an in-app record.
func (s *DefaultNotifier) EmailUser(ctx context.Context, userID, subject, body string) {
	logger := utils.GetLogger()

	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		logger.Warn("email recipient lookup failed", zap.String("userID", userID), zap.Error(err))
		return
	}
	s.enqueueEmail(u.Email, subject, body)
}

func (s *DefaultNotifier) enqueueEmail(to, subject, body string) {
	logger := utils.GetLogger()

	task, err := tasks.NewEmailTask(tasks.EmailPayload{To: to, Subject: subject, Body: body})
	if err != nil {
		logger.Warn("failed to build email task", zap.String("to", to), zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task, asynq.Timeout(30*time.Second)); err != nil {
		logger.Warn("failed to enqueue email", zap.String("to", to), zap.Error(err))
	}
}
