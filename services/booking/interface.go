package booking

import (
	"context"
	"time"

	bookingRepo "grandstay/database/repository/booking"
	"grandstay/models"
)

// CreateBookingInput carries a booking creation request into the service.
type CreateBookingInput struct {
	UserID          string
	RoomID          string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	GuestName       string
	ContactNumber   string
	SpecialRequests string
}

// AvailabilityResult is the outcome of a calendar availability query.
type AvailabilityResult struct {
	Available bool             `json:"available"`
	Conflicts []models.Booking `json:"conflicts,omitempty"`
}

// BookingService owns the booking lifecycle: creation with availability and
// pricing, the status state machine, and the cancellation workflow.
type BookingService interface {
	Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter bookingRepo.ListFilter) ([]models.Booking, error)

	Availability(ctx context.Context, roomID string, from, to time.Time) (*AvailabilityResult, error)

	// UpdateStatus performs an admin-driven transition through the state
	// machine. Setting cancelled through here is an explicit admin override
	// that also clears any pending cancellation request.
	UpdateStatus(ctx context.Context, bookingID string, to models.BookingStatus) (*models.Booking, error)

	RequestCancellation(ctx context.Context, bookingID, userID, reason string) (*models.Booking, error)
	ApproveCancellation(ctx context.Context, bookingID string) (*models.Booking, error)
	DeclineCancellation(ctx context.Context, bookingID, note string) (*models.Booking, error)
}
