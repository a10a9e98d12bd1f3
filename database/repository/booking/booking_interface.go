package bookingRepo

import (
	"context"
	"errors"
	"time"

	"grandstay/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrRoomConflict is returned when a guarded write would produce two active
// bookings with overlapping date ranges for the same room.
var ErrRoomConflict = errors.New("room already booked for an overlapping date range")

// ListFilter narrows booking listings.
type ListFilter struct {
	UserID string
	RoomID string
	Status models.BookingStatus
	From   time.Time
	To     time.Time
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(b *models.Booking) error
	Update(b *models.Booking) error
	UpdateSetDocument(id string, updateDoc bson.M) error

	GetByID(id string) (*models.Booking, error)
	GetAll(filter ListFilter) ([]models.Booking, error)

	// FindOverlapping returns active bookings (confirmed or checked-in) for the
	// room whose [check_in, check_out) range intersects [start, end).
	// excludeID, when non-empty, leaves out one booking (used on re-checks).
	FindOverlapping(roomID string, start, end time.Time, excludeID string) ([]models.Booking, error)

	// CreateIfAvailable runs the overlap check and the insert inside one Mongo
	// transaction, closing the read-then-write race between concurrent
	// requests for the same room. Returns ErrRoomConflict on overlap.
	CreateIfAvailable(ctx context.Context, b *models.Booking) error

	// ConfirmIfAvailable transitions a booking to confirmed inside a
	// transaction, re-checking the overlap invariant first.
	ConfirmIfAvailable(ctx context.Context, id string) error

	CountActiveForRoom(roomID string) (int, error)

	// FindIntersecting returns bookings in any of the given statuses whose
	// stay intersects [from, to). Used by reporting.
	FindIntersecting(from, to time.Time, statuses []models.BookingStatus) ([]models.Booking, error)

	// Report aggregations over bookings created in [from, to).
	CountByStatus(from, to time.Time) ([]models.StatusCount, error)
	RevenueByRoomType(from, to time.Time) ([]models.RoomTypeRevenue, error)
	RevenueByDay(from, to time.Time) ([]models.DailyRevenue, error)
	TotalRevenue(from, to time.Time) (float64, error)
	TopCustomers(from, to time.Time, limit int) ([]models.TopCustomer, error)

	// Nightly sweep queries.
	FindCheckedInEndingBy(day time.Time) ([]models.Booking, error)
	FindStalePending(checkInBefore time.Time) ([]models.Booking, error)
}
