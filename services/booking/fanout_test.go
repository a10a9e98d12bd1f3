package booking

import (
	"context"
	"testing"

	"grandstay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newRecordingService() (*DefaultBookingService, *MockBookingRepository, *MockRoomRepository, *recordingNotifier) {
	bookings := new(MockBookingRepository)
	rooms := new(MockRoomRepository)
	recorder := &recordingNotifier{}
	svc := &DefaultBookingService{
		Bookings: bookings,
		Rooms:    rooms,
		Notifier: recorder,
	}
	return svc, bookings, rooms, recorder
}

func TestCreate_NotifiesAdminsOnce(t *testing.T) {
	svc, bookings, rooms, recorder := newRecordingService()
	rooms.On("GetByID", "room-1").Return(testRoom(), nil)
	bookings.On("CreateIfAvailable", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Create(context.Background(), CreateBookingInput{
		UserID:   "user-1",
		RoomID:   "room-1",
		CheckIn:  date(2026, 6, 1),
		CheckOut: date(2026, 6, 4),
		Guests:   2,
	})

	assert.NoError(t, err)
	assert.Len(t, recorder.adminCalls, 1)
	assert.Equal(t, "New booking received", recorder.adminCalls[0].subject)
	assert.Empty(t, recorder.userCalls)
}

func TestUpdateStatus_ConfirmNotifiesOwner(t *testing.T) {
	svc, bookings, rooms, recorder := newRecordingService()
	b := &models.Booking{ID: "b-1", UserID: "user-1", RoomID: "room-1", Status: models.BookingPending}
	bookings.On("GetByID", "b-1").Return(b, nil)
	bookings.On("ConfirmIfAvailable", mock.Anything, "b-1").Return(nil)
	rooms.On("GetByID", "room-1").Return(testRoom(), nil)

	_, err := svc.UpdateStatus(context.Background(), "b-1", models.BookingConfirmed)

	assert.NoError(t, err)
	assert.Len(t, recorder.userCalls, 1)
	assert.Equal(t, "user-1", recorder.userCalls[0].userID)
	assert.Equal(t, "Booking confirmed", recorder.userCalls[0].subject)
	assert.Empty(t, recorder.adminCalls)
}

func TestRequestCancellation_NotifiesAdminsAndAcksOwner(t *testing.T) {
	svc, bookings, _, recorder := newRecordingService()
	b := &models.Booking{ID: "b-1", UserID: "user-1", RoomID: "room-1", Status: models.BookingConfirmed}
	bookings.On("GetByID", "b-1").Return(b, nil)
	bookings.On("UpdateSetDocument", "b-1", mock.Anything).Return(nil)

	_, err := svc.RequestCancellation(context.Background(), "b-1", "user-1", "change of plans")

	assert.NoError(t, err)
	assert.Len(t, recorder.adminCalls, 1)
	assert.Equal(t, "Cancellation requested", recorder.adminCalls[0].subject)
	assert.Contains(t, recorder.adminCalls[0].message, "change of plans")
	assert.Len(t, recorder.emailCalls, 1)
	assert.Equal(t, "user-1", recorder.emailCalls[0].userID)
}

func TestDeclineCancellation_NotifiesOwnerOnly(t *testing.T) {
	svc, bookings, _, recorder := newRecordingService()
	b := &models.Booking{
		ID:                    "b-1",
		UserID:                "user-1",
		RoomID:                "room-1",
		Status:                models.BookingConfirmed,
		CancellationRequested: true,
	}
	bookings.On("GetByID", "b-1").Return(b, nil)
	bookings.On("UpdateSetDocument", "b-1", mock.Anything).Return(nil)

	_, err := svc.DeclineCancellation(context.Background(), "b-1", "non-refundable after confirmation")

	assert.NoError(t, err)
	assert.Len(t, recorder.userCalls, 1)
	assert.Equal(t, "user-1", recorder.userCalls[0].userID)
	assert.Equal(t, "Cancellation request declined", recorder.userCalls[0].subject)
	assert.Contains(t, recorder.userCalls[0].message, "non-refundable after confirmation")
	assert.Empty(t, recorder.adminCalls)
}

func TestApproveCancellation_NotifiesOwnerOfCancellation(t *testing.T) {
	svc, bookings, rooms, recorder := newRecordingService()
	b := &models.Booking{
		ID:                    "b-1",
		UserID:                "user-1",
		RoomID:                "room-1",
		Status:                models.BookingConfirmed,
		CancellationRequested: true,
	}
	bookings.On("GetByID", "b-1").Return(b, nil)
	bookings.On("UpdateSetDocument", "b-1", mock.Anything).Return(nil)
	rooms.On("GetByID", "room-1").Return(testRoom(), nil)

	_, err := svc.ApproveCancellation(context.Background(), "b-1")

	assert.NoError(t, err)
	assert.Len(t, recorder.userCalls, 1)
	assert.Equal(t, "Booking cancelled", recorder.userCalls[0].subject)
}
