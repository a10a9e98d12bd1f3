package payment

import (
	"context"
	"testing"
	"time"

	bookingRepo "grandstay/database/repository/booking"
	"grandstay/models"
	"grandstay/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(b *models.Booking) error {
	return m.Called(b).Error(0)
}

func (m *MockBookingRepository) Update(b *models.Booking) error {
	return m.Called(b).Error(0)
}

func (m *MockBookingRepository) UpdateSetDocument(id string, updateDoc bson.M) error {
	return m.Called(id, updateDoc).Error(0)
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
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindOverlapping(roomID string, start, end time.Time, excludeID string) ([]models.Booking, error) {
	args := m.Called(roomID, start, end, excludeID)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) CreateIfAvailable(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *MockBookingRepository) ConfirmIfAvailable(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookingRepository) CountActiveForRoom(roomID string) (int, error) {
	args := m.Called(roomID)
	return args.Int(0), args.Error(1)
}

func (m *MockBookingRepository) FindIntersecting(from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error) {
	args := m.Called(from, to, statuses)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) CountByStatus(from, to time.Time) ([]models.StatusCount, error) {
	args := m.Called(from, to)
	return args.Get(0).([]models.StatusCount), args.Error(1)
}

func (m *MockBookingRepository) RevenueByRoomType(from, to time.Time) ([]models.RoomTypeRevenue, error) {
	args := m.Called(from, to)
	return args.Get(0).([]models.RoomTypeRevenue), args.Error(1)
}

func (m *MockBookingRepository) RevenueByDay(from, to time.Time) ([]models.DailyRevenue, error) {
	args := m.Called(from, to)
	return args.Get(0).([]models.DailyRevenue), args.Error(1)
}

func (m *MockBookingRepository) TotalRevenue(from, to time.Time) (float64, error) {
	args := m.Called(from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockBookingRepository) TopCustomers(from, to time.Time, limit int) ([]models.TopCustomer, error) {
	args := m.Called(from, to, limit)
	return args.Get(0).([]models.TopCustomer), args.Error(1)
}

func (m *MockBookingRepository) FindCheckedInEndingBy(day time.Time) ([]models.Booking, error) {
	args := m.Called(day)
	return args.Get(0).([]models.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindStalePending(checkInBefore time.Time) ([]models.Booking, error) {
	args := m.Called(checkInBefore)
	return args.Get(0).([]models.Booking), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCheckoutSession(b *models.Booking, description string) (*models.CheckoutSession, error) {
	args := m.Called(b, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CheckoutSession), args.Error(1)
}

func (m *MockGateway) GetSession(sessionID string) (*GatewaySession, error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GatewaySession), args.Error(1)
}

func (m *MockGateway) Name() string {
	return "testpay"
}

type noopNotifier struct{}

func (noopNotifier) NotifyUser(ctx context.Context, userID, notifType, subject, message, link string) {
}
func (noopNotifier) NotifyAdmins(ctx context.Context, notifType, subject, message, link string) {}
func (noopNotifier) EmailUser(ctx context.Context, userID, subject, body string)                {}

func newTestService() (*DefaultPaymentService, *MockBookingRepository, *MockGateway) {
	bookings := new(MockBookingRepository)
	gateway := new(MockGateway)
	svc := &DefaultPaymentService{
		Bookings: bookings,
		Gateway:  gateway,
		Notifier: noopNotifier{},
	}
	return svc, bookings, gateway
}

func confirmedBooking() *models.Booking {
	return &models.Booking{
		ID:            "b-1",
		UserID:        "user-1",
		RoomID:        "room-1",
		Status:        models.BookingConfirmed,
		PaymentStatus: models.PaymentPending,
		TotalAmount:   360,
	}
}

func staff() *models.User {
	return &models.User{ID: "admin-1", Role: models.RoleAdmin}
}

func guest() *models.User {
	return &models.User{ID: "user-1", Role: models.RoleUser}
}

func TestCreateCheckoutSession_Success(t *testing.T) {
	svc, bookings, gateway := newTestService()
	b := confirmedBooking()
	bookings.On("GetByID", "b-1").Return(b, nil)
	gateway.On("CreateCheckoutSession", b, mock.AnythingOfType("string")).
		Return(&models.CheckoutSession{SessionID: "sess_1", URL: "https://pay.example/sess_1"}, nil)

	session, err := svc.CreateCheckoutSession(context.Background(), "b-1", "user-1")

	assert.NoError(t, err)
	assert.Equal(t, "sess_1", session.SessionID)
}

func TestCreateCheckoutSession_NotOwner(t *testing.T) {
	svc, bookings, _ := newTestService()
	bookings.On("GetByID", "b-1").Return(confirmedBooking(), nil)

	_, err := svc.CreateCheckoutSession(context.Background(), "b-1", "user-2")

	assert.ErrorIs(t, err, booking.ErrNotOwner)
}

func TestCreateCheckoutSession_PendingBookingRejected(t *testing.T) {
	svc, bookings, _ := newTestService()
	b := confirmedBooking()
	b.Status = models.BookingPending
	bookings.On("GetByID", "b-1").Return(b, nil)

	_, err := svc.CreateCheckoutSession(context.Background(), "b-1", "user-1")

	assert.ErrorIs(t, err, ErrNotConfirmed)
}

func TestCreateCheckoutSession_AlreadyPaid(t *testing.T) {
	svc, bookings, _ := newTestService()
	b := confirmedBooking()
	b.PaymentStatus = models.PaymentPaid
	bookings.On("GetByID", "b-1").Return(b, nil)

	_, err := svc.CreateCheckoutSession(context.Background(), "b-1", "user-1")

	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestConfirmSession_SettlesBooking(t *testing.T) {
	svc, bookings, gateway := newTestService()
	b := confirmedBooking()
	gateway.On("GetSession", "sess_1").Return(&GatewaySession{
		ID: "sess_1", Paid: true, BookingID: "b-1", UserID: "user-1", TransactionID: "pi_1",
	}, nil)
	bookings.On("GetByID", "b-1").Return(b, nil)
	bookings.On("UpdateSetDocument", "b-1", mock.MatchedBy(func(doc bson.M) bool {
		return doc["payment_status"] == models.PaymentPaid &&
			doc["payment_method"] == "testpay" &&
			doc["transaction_id"] == "pi_1"
	})).Return(nil)

	settled, err := svc.ConfirmSession(context.Background(), "sess_1")

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, settled.PaymentStatus)
	assert.NotNil(t, settled.PaymentDate)
}

func TestConfirmSession_UnsettledSession(t *testing.T) {
	svc, _, gateway := newTestService()
	gateway.On("GetSession", "sess_1").Return(&GatewaySession{ID: "sess_1", Paid: false, BookingID: "b-1"}, nil)

	_, err := svc.ConfirmSession(context.Background(), "sess_1")

	assert.ErrorIs(t, err, ErrSessionNotSettled)
}

func TestSettle_IdempotentWhenAlreadyPaid(t *testing.T) {
	svc, bookings, gateway := newTestService()
	b := confirmedBooking()
	b.PaymentStatus = models.PaymentPaid
	gateway.On("GetSession", "sess_1").Return(&GatewaySession{
		ID: "sess_1", Paid: true, BookingID: "b-1", TransactionID: "pi_1",
	}, nil)
	bookings.On("GetByID", "b-1").Return(b, nil)

	settled, err := svc.ConfirmSession(context.Background(), "sess_1")

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, settled.PaymentStatus)
	bookings.AssertNotCalled(t, "UpdateSetDocument", mock.Anything, mock.Anything)
}

func TestSetPaymentStatus_PaidNeverRevertsToPending(t *testing.T) {
	svc, bookings, _ := newTestService()
	b := confirmedBooking()
	b.PaymentStatus = models.PaymentPaid
	bookings.On("GetByID", "b-1").Return(b, nil)

	_, err := svc.SetPaymentStatus(context.Background(), "b-1", models.PaymentPending, staff())

	assert.ErrorIs(t, err, ErrIllegalPaymentTransition)
}

func TestSetPaymentStatus_RefundFromPendingRejected(t *testing.T) {
	svc, bookings, _ := newTestService()
	bookings.On("GetByID", "b-1").Return(confirmedBooking(), nil)

	_, err := svc.SetPaymentStatus(context.Background(), "b-1", models.PaymentRefunded, staff())

	assert.ErrorIs(t, err, ErrIllegalPaymentTransition)
}

func TestSetPaymentStatus_RefundRequiresStaff(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.SetPaymentStatus(context.Background(), "b-1", models.PaymentRefunded, guest())

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSetPaymentStatus_StaffRefundsPaidBooking(t *testing.T) {
	svc, bookings, _ := newTestService()
	b := confirmedBooking()
	b.PaymentStatus = models.PaymentPaid
	bookings.On("GetByID", "b-1").Return(b, nil)
	bookings.On("UpdateSetDocument", "b-1", mock.MatchedBy(func(doc bson.M) bool {
		return doc["payment_status"] == models.PaymentRefunded
	})).Return(nil)

	updated, err := svc.SetPaymentStatus(context.Background(), "b-1", models.PaymentRefunded, staff())

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, updated.PaymentStatus)
}

func TestSetPaymentStatus_ManualPaidByOwner(t *testing.T) {
	svc, bookings, _ := newTestService()
	bookings.On("GetByID", "b-1").Return(confirmedBooking(), nil)
	bookings.On("UpdateSetDocument", "b-1", mock.MatchedBy(func(doc bson.M) bool {
		return doc["payment_status"] == models.PaymentPaid && doc["payment_method"] == "manual"
	})).Return(nil)

	updated, err := svc.SetPaymentStatus(context.Background(), "b-1", models.PaymentPaid, guest())

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	assert.Equal(t, "manual", updated.PaymentMethod)
}
