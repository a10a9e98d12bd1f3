package booking

import (
	"context"
	"testing"

	"grandstay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
)

func TestRequestCancellation_OwnerOnConfirmed(t *testing.T) {
	svc, bookings, _ := newTestService()
	b := &models.Booking{ID: "b-1", UserID: "user-1", Status: models.BookingConfirmed}
	bookings.On("GetByID", "b-1").Return(b, nil)
	bookings.On("UpdateSetDocument", "b-1", mock.MatchedBy(func(doc bson.M) bool {
		return doc["cancellation_requested"] == true && doc["cancellation_reason"] == "travel plans changed"
	})).Return(nil)

	updated, err := svc.RequestCancellation(context.Background(), "b-1", "user-1", "travel plans changed")

	assert.NoError(t, err)
	assert.True(t, updated.CancellationRequested)
	assert.Equal(t, "travel plans changed", updated.CancellationReason)
	assert.Equal(t, models.BookingConfirmed, updated.Status, "status must not change until approval")
	bookings.AssertExpectations(t)
}

func TestRequestCancellation_NotOwner(t *testing.T) {
	svc, bookings, _ := newTestService()
	b := &models.Booking{ID: "b-1", UserID: "user-1", Status: models.BookingConfirmed}
	bookings.On("GetByID", "b-1").Return(b, nil)

	_, err := svc.RequestCancellation(context.Background(), "b-1", "user-2", "")

	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestRequestCancellation_CheckedOutRejected(t *testing.T) {
	svc, bookings, _ := newTestService()
	b := &models.Booking{ID: "b-1", UserID: "user-1", Status: models.BookingCheckedOut}
	bookings.On("GetByID", "b-1").Return(b, nil)

	_, err := svc.RequestCancellation(context.Background(), "b-1", "user-1", "")

	assert.ErrorIs(t, err, ErrCancellationState)
}

func TestRequestCancellation_AlreadyRequested(t *testing.T) {
	svc, bookings, _ := newTestService()
	b := &models.Booking{ID: "b-1", UserID: "user-1", Status: models.BookingPending, CancellationRequested: true}
	bookings.On("GetByID", "b-1").Return(b, nil)

	_, err := svc.RequestCancellation(context.Background(), "b-1", "user-1", "")

	assert.ErrorIs(t, err, ErrCancellationState)
}

func TestApproveCancellation_CancelsAndClearsFlag(t *testing.T) {
	svc, bookings, rooms := newTestService()
	b := &models.Booking{
		ID:                    "b-1",
		UserID:                "user-1",
		RoomID:                "room-1",
		Status:                models.BookingConfirmed,
		CancellationRequested: true,
	}
	bookings.On("GetByID", "b-1").Return(b, nil)
	rooms.On("GetByID", "room-1").Return(testRoom(), nil)
	bookings.On("UpdateSetDocument", "b-1", mock.MatchedBy(func(doc bson.M) bool {
		return doc["status"] == models.BookingCancelled && doc["cancellation_requested"] == false
	})).Return(nil)

	updated, err := svc.ApproveCancellation(context.Background(), "b-1")

	assert.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, updated.Status)
	assert.False(t, updated.CancellationRequested)
}

func TestApproveCancellation_WithoutRequestRejected(t *testing.T) {
	svc, bookings, _ := newTestService()
	b := &models.Booking{ID: "b-1", Status: models.BookingConfirmed}
	bookings.On("GetByID", "b-1").Return(b, nil)

	_, err := svc.ApproveCancellation(context.Background(), "b-1")

	assert.ErrorIs(t, err, ErrCancellationState)
}

func TestDeclineCancellation_KeepsStatus(t *testing.T) {
	svc, bookings, _ := newTestService()
	b := &models.Booking{
		ID:                    "b-1",
		UserID:                "user-1",
		Status:                models.BookingConfirmed,
		CancellationRequested: true,
	}
	bookings.On("GetByID", "b-1").Return(b, nil)
	bookings.On("UpdateSetDocument", "b-1", mock.MatchedBy(func(doc bson.M) bool {
		return doc["cancellation_requested"] == false && doc["admin_notes"] == "high season, non-refundable"
	})).Return(nil)

	updated, err := svc.DeclineCancellation(context.Background(), "b-1", "high season, non-refundable")

	assert.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)
	assert.False(t, updated.CancellationRequested)
	assert.Equal(t, "high season, non-refundable", updated.AdminNotes)
}

func TestDeclineCancellation_WithoutRequestRejected(t *testing.T) {
	svc, bookings, _ := newTestService()
	b := &models.Booking{ID: "b-1", Status: models.BookingPending}
	bookings.On("GetByID", "b-1").Return(b, nil)

	_, err := svc.DeclineCancellation(context.Background(), "b-1", "")

	assert.ErrorIs(t, err, ErrCancellationState)
}
