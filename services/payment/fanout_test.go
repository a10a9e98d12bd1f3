package payment

import (
	"context"
	"testing"

	"grandstay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

type notifierCall struct {
	userID  string
	subject string
}

// recordingNotifier captures fan-out calls for assertions on recipients and
// delivery counts.
type recordingNotifier struct {
	userCalls  []notifierCall
	adminCalls []notifierCall
	emailCalls []notifierCall
}

func (r *recordingNotifier) NotifyUser(ctx context.Context, userID, notifType, subject, message, link string) {
	r.userCalls = append(r.userCalls, notifierCall{userID: userID, subject: subject})
}

func (r *recordingNotifier) NotifyAdmins(ctx context.Context, notifType, subject, message, link string) {
	r.adminCalls = append(r.adminCalls, notifierCall{subject: subject})
}

func (r *recordingNotifier) EmailUser(ctx context.Context, userID, subject, body string) {
	r.emailCalls = append(r.emailCalls, notifierCall{userID: userID, subject: subject})
}

func newRecordingService() (*DefaultPaymentService, *MockBookingRepository, *MockGateway, *recordingNotifier) {
	bookings := new(MockBookingRepository)
	gateway := new(MockGateway)
	recorder := &recordingNotifier{}
	svc := &DefaultPaymentService{
		Bookings: bookings,
		Gateway:  gateway,
		Notifier: recorder,
	}
	return svc, bookings, gateway, recorder
}

func TestConfirmSession_PaidFanOut(t *testing.T) {
	svc, bookings, gateway, recorder := newRecordingService()
	gateway.On("GetSession", "sess_1").Return(&GatewaySession{
		ID: "sess_1", Paid: true, BookingID: "b-1", UserID: "user-1", TransactionID: "pi_1",
	}, nil)
	bookings.On("GetByID", "b-1").Return(confirmedBooking(), nil)
	bookings.On("UpdateSetDocument", "b-1", mock.Anything).Return(nil)

	_, err := svc.ConfirmSession(context.Background(), "sess_1")

	assert.NoError(t, err)
	assert.Len(t, recorder.userCalls, 1)
	assert.Equal(t, "user-1", recorder.userCalls[0].userID)
	assert.Equal(t, "Payment received", recorder.userCalls[0].subject)
	assert.Len(t, recorder.adminCalls, 1)
	assert.Equal(t, "Booking paid", recorder.adminCalls[0].subject)
}

func TestConfirmSession_NoFanOutOnRepeatSettlement(t *testing.T) {
	svc, bookings, gateway, recorder := newRecordingService()
	b := confirmedBooking()
	b.PaymentStatus = models.PaymentPaid
	gateway.On("GetSession", "sess_1").Return(&GatewaySession{
		ID: "sess_1", Paid: true, BookingID: "b-1", TransactionID: "pi_1",
	}, nil)
	bookings.On("GetByID", "b-1").Return(b, nil)

	_, err := svc.ConfirmSession(context.Background(), "sess_1")

	assert.NoError(t, err)
	assert.Empty(t, recorder.userCalls)
	assert.Empty(t, recorder.adminCalls)
}

func TestSetPaymentStatus_RefundNotifiesOwnerOnly(t *testing.T) {
	svc, bookings, _, recorder := newRecordingService()
	b := confirmedBooking()
	b.PaymentStatus = models.PaymentPaid
	bookings.On("GetByID", "b-1").Return(b, nil)
	bookings.On("UpdateSetDocument", "b-1", mock.MatchedBy(func(doc bson.M) bool {
		return doc["payment_status"] == models.PaymentRefunded
	})).Return(nil)

	_, err := svc.SetPaymentStatus(context.Background(), "b-1", models.PaymentRefunded, staff())

	assert.NoError(t, err)
	assert.Len(t, recorder.userCalls, 1)
	assert.Equal(t, "user-1", recorder.userCalls[0].userID)
	assert.Equal(t, "Payment refunded", recorder.userCalls[0].subject)
	assert.Empty(t, recorder.adminCalls)
}
