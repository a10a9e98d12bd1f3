package booking

import (
	"context"
	"time"

	bookingRepo "grandstay/database/repository/booking"
	roomRepo "grandstay/database/repository/room"
	"grandstay/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(b *models.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockBookingRepository) Update(b *models.Booking) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateSetDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(id string) (*models.Booking, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetAll(filter bookingRepo.ListFilter) ([]models.Booking, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindOverlapping(roomID string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	args := m.Called(roomID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) CreateIfAvailable(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) ConfirmIfAvailable(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) CountActiveForRoom(roomID string) (int, error) {
	args := m.Called(roomID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) FindIntersecting(from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	args := m.Called(from, to, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(from, to time.Time) ([]models.StatusCount, error) {
	args := m.Called(from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StatusCount), args.Error(1)
}

func (m *MockBookingRepository) RevenueByRoomType(from, to time.Time) ([]models.RoomTypeRevenue, error) {
	args := m.Called(from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RoomTypeRevenue), args.Error(1)
}

func (m *MockBookingRepository) RevenueByDay(from, to time.Time) ([]models.DailyRevenue, error) {
	args := m.Called(from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyRevenue), args.Error(1)
}

func (m *MockBookingRepository) TotalRevenue(from, to time.Time) (float64, error) {
	args := m.Called(from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBookingRepository) TopCustomers(from, to time.Time, limit int) ([]models.TopCustomer, error) {
	args := m.Called(from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TopCustomer), args.Error(1)
}

func (m *MockBookingRepository) FindCheckedInEndingBy(day time.Time) ([]models.Booking, error) {
	args := m.Called(day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindStalePending(checkInBefore time.Time) ([]models.Booking, error) {
	args := m.Called(checkInBefore)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(room *models.Room) error {
	args := m.Called(room)
	return args.Error(0)
}

func (m *MockRoomRepository) Update(room *models.Room) error {
	args := m.Called(room)
	return args.Error(0)
}

func (m *MockRoomRepository) UpdateSetDocument(id string, updateDoc bson.M) error {
	args := m.Called(id, updateDoc)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(id string) (*models.Room, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomRepository) GetByNumber(roomNumber string) (*models.Room, error) {
	args := m.Called(roomNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockRoomRepository) GetAll(filter roomRepo.RoomFilter) ([]models.Room, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockRoomRepository) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

type noopNotifier struct{}

func (noopNotifier) NotifyUser(ctx context.Context, userID, notifType, subject, message, link string) {
}
func (noopNotifier) NotifyAdmins(ctx context.Context, notifType, subject, message, link string) {}
func (noopNotifier) EmailUser(ctx context.Context, userID, subject, body string)                {}

type notifierCall struct {
	userID  string
	subject string
	message string
}

// recordingNotifier captures fan-out calls for assertions on recipients and
// delivery counts.
type recordingNotifier struct {
	userCalls  []notifierCall
	adminCalls []notifierCall
	emailCalls []notifierCall
}

func (r *recordingNotifier) NotifyUser(ctx context.Context, userID, notifType, subject, message, link string) {
	r.userCalls = append(r.userCalls, notifierCall{userID: userID, subject: subject, message: message})
}

func (r *recordingNotifier) NotifyAdmins(ctx context.Context, notifType, subject, message, link string) {
	r.adminCalls = append(r.adminCalls, notifierCall{subject: subject, message: message})
}

func (r *recordingNotifier) EmailUser(ctx context.Context, userID, subject, body string) {
	r.emailCalls = append(r.emailCalls, notifierCall{userID: userID, subject: subject, message: body})
}
