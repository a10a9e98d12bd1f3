package notification

import (
	"context"
	"encoding/json"
	"testing"

	"grandstay/models"
	"grandstay/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(u *models.User) error { return m.Called(u).Error(0) }
func (m *MockUserRepository) Update(u *models.User) error { return m.Called(u).Error(0) }
func (m *MockUserRepository) UpdateSetDocument(id string, doc bson.M) error {
	return m.Called(id, doc).Error(0)
}
func (m *MockUserRepository) Delete(id string) error { return m.Called(id).Error(0) }
func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) GetByTokenHash(hash string) (*models.User, error) {
	args := m.Called(hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	return args.Get(0).([]models.User), args.Error(1)
}
func (m *MockUserRepository) GetByRoles(roles ...models.Role) ([]models.User, error) {
	args := m.Called(roles)
	return args.Get(0).([]models.User), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(n *models.Notification) error {
	return m.Called(n).Error(0)
}
func (m *MockNotificationRepository) GetByUser(userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	args := m.Called(userID, unreadOnly, limit)
	return args.Get(0).([]models.Notification), args.Error(1)
}
func (m *MockNotificationRepository) MarkRead(id, userID string) error {
	return m.Called(id, userID).Error(0)
}
func (m *MockNotificationRepository) MarkAllRead(userID string) error {
	return m.Called(userID).Error(0)
}

// fakeQueue captures enqueued tasks instead of talking to redis.
type fakeQueue struct {
	tasks []*asynq.Task
}

func (q *fakeQueue) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	q.tasks = append(q.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func (q *fakeQueue) payloads(t *testing.T) []tasks.EmailPayload {
	t.Helper()
	var out []tasks.EmailPayload
	for _, task := range q.tasks {
		assert.Equal(t, tasks.TypeSendEmail, task.Type())
		var p tasks.EmailPayload
		assert.NoError(t, json.Unmarshal(task.Payload(), &p))
		out = append(out, p)
	}
	return out
}

func newTestNotifier() (*DefaultNotifier, *MockUserRepository, *MockNotificationRepository, *fakeQueue) {
	users := new(MockUserRepository)
	records := new(MockNotificationRepository)
	queue := &fakeQueue{}
	return NewDefaultNotifier(users, records, queue), users, records, queue
}

func TestNotifyUser_RecordsAndEmails(t *testing.T) {
	notifier, users, records, queue := newTestNotifier()
	users.On("GetByID", "user-1").Return(&models.User{
		ID: "user-1", Email: "guest@example.com", EmailNotifications: true,
	}, nil)
	records.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == "user-1" && n.Type == "booking" && n.Message == "Your booking is confirmed."
	})).Return(nil)

	notifier.NotifyUser(context.Background(), "user-1", "booking",
		"Booking confirmed", "Your booking is confirmed.", "/bookings/b-1")

	records.AssertNumberOfCalls(t, "Create", 1)
	payloads := queue.payloads(t)
	assert.Len(t, payloads, 1)
	assert.Equal(t, "guest@example.com", payloads[0].To)
	assert.Equal(t, "Booking confirmed", payloads[0].Subject)
}

func TestNotifyUser_EmailOptOutStillRecordsInApp(t *testing.T) {
	notifier, users, records, queue := newTestNotifier()
	users.On("GetByID", "user-1").Return(&models.User{
		ID: "user-1", Email: "guest@example.com", EmailNotifications: false,
	}, nil)
	records.On("Create", mock.AnythingOfType("*models.Notification")).Return(nil)

	notifier.NotifyUser(context.Background(), "user-1", "booking",
		"Booking confirmed", "Your booking is confirmed.", "/bookings/b-1")

	records.AssertNumberOfCalls(t, "Create", 1)
	assert.Empty(t, queue.tasks)
}

func TestNotifyAdmins_FansOutToEachStaffAccount(t *testing.T) {
	notifier, users, records, queue := newTestNotifier()
	admin := models.User{ID: "admin-1", Email: "a1@example.com", Role: models.RoleAdmin, EmailNotifications: true}
	super := models.User{ID: "super-1", Email: "s1@example.com", Role: models.RoleSuperAdmin, EmailNotifications: true}
	users.On("GetByRoles", []models.Role{models.RoleAdmin, models.RoleSuperAdmin}).
		Return([]models.User{admin, super}, nil)
	users.On("GetByID", "admin-1").Return(&admin, nil)
	users.On("GetByID", "super-1").Return(&super, nil)
	records.On("Create", mock.AnythingOfType("*models.Notification")).Return(nil)

	notifier.NotifyAdmins(context.Background(), "payment", "Booking paid", "Payment received.", "/bookings/b-1")

	records.AssertNumberOfCalls(t, "Create", 2)
	payloads := queue.payloads(t)
	assert.Len(t, payloads, 2)
	assert.ElementsMatch(t, []string{"a1@example.com", "s1@example.com"},
		[]string{payloads[0].To, payloads[1].To})
}

func TestEmailUser_SkipsInAppRecord(t *testing.T) {
	notifier, users, records, queue := newTestNotifier()
	users.On("GetByID", "user-1").Return(&models.User{
		ID: "user-1", Email: "guest@example.com", EmailNotifications: true,
	}, nil)

	notifier.EmailUser(context.Background(), "user-1", "Reset your password", "Code: 12345678")

	records.AssertNotCalled(t, "Create", mock.Anything)
	payloads := queue.payloads(t)
	assert.Len(t, payloads, 1)
	assert.Equal(t, "Reset your password", payloads[0].Subject)
}
