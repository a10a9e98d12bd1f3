package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "grandstay/database/repository/booking"
	roomRepo "grandstay/database/repository/room"
	"grandstay/models"
	"grandstay/services/notification"
	"grandstay/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation of BookingService.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Rooms    roomRepo.RoomRepository
	Notifier notification.Notifier
}

// Create validates the request, prices the stay and inserts the booking with
// the availability guard. New bookings start pending/pending.
func (s *DefaultBookingService) Create(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	if in.Guests < 1 {
		return nil, fmt.Errorf("%w: at least one guest is required", ErrValidation)
	}
	if !in.CheckOut.After(in.CheckIn) {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", ErrValidation)
	}

	room, err := s.Rooms.GetByID(in.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	if !room.Available {
		return nil, ErrRoomUnavailable
	}

	quote := Quote(room.NightlyPrice, room.Capacity, in.CheckIn, in.CheckOut, in.Guests)

	contact := in.ContactNumber
	if contact != "" {
		if contact, err = utils.EncryptField(contact); err != nil {
			return nil, fmt.Errorf("failed to encrypt contact number: %w", err)
		}
	}

	b := &models.Booking{
		ID:              uuid.New().String(),
		UserID:          in.UserID,
		RoomID:          in.RoomID,
		CheckIn:         in.CheckIn,
		CheckOut:        in.CheckOut,
		Guests:          in.Guests,
		TotalAmount:     quote.TotalAmount,
		Status:          models.BookingPending,
		PaymentStatus:   models.PaymentPending,
		GuestName:       in.GuestName,
		ContactNumber:   contact,
		SpecialRequests: in.SpecialRequests,
	}

	if err := s.Bookings.CreateIfAvailable(ctx, b); err != nil {
		if errors.Is(err, bookingRepo.ErrRoomConflict) {
			return nil, ErrRoomUnavailable
		}
		return nil, err
	}

	// Fire-and-forget: a failed fan-out never unwinds the insert.
	s.Notifier.NotifyAdmins(ctx, "booking",
		"New booking received",
		fmt.Sprintf("A new booking for room %s (%s to %s) is awaiting confirmation.",
			room.RoomNumber, b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02")),
		"/bookings/"+b.ID)

	return b, nil
}

// GetByID fetches one booking.
func (s *DefaultBookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// List returns bookings matching the filter.
func (s *DefaultBookingService) List(ctx context.Context, filter bookingRepo.ListFilter) ([]models.Booking, error) {
	return s.Bookings.GetAll(filter)
}

// UpdateStatus walks the state machine for an admin-driven transition.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, bookingID string, to models.BookingStatus) (*models.Booking, error) {
	if !models.ValidBookingStatus(to) {
		return nil, fmt.Errorf("%w: unknown booking status %q", ErrValidation, to)
	}

	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(b.Status, to) {
		return nil, &TransitionError{From: b.Status, To: to}
	}

	switch to {
	case models.BookingConfirmed:
		// Re-check the overlap invariant: another booking may have claimed the
		// dates while this one sat pending.
		if err := s.Bookings.ConfirmIfAvailable(ctx, b.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrRoomConflict) {
				return nil, ErrRoomUnavailable
			}
			return nil, err
		}
	case models.BookingCancelled:
		// Admin override: cancelling directly also voids any open request.
		update := bson.M{"status": to, "cancellation_requested": false}
		if err := s.Bookings.UpdateSetDocument(b.ID, update); err != nil {
			return nil, err
		}
		b.CancellationRequested = false
	default:
		if err := s.Bookings.UpdateSetDocument(b.ID, bson.M{"status": to}); err != nil {
			return nil, err
		}
	}
	b.Status = to

	s.notifyTransition(ctx, b, to)
	return b, nil
}

// notifyTransition fans out the owner notification for a status change.
// Best-effort only.
func (s *DefaultBookingService) notifyTransition(ctx context.Context, b *models.Booking, to models.BookingStatus) {
	roomNumber := s.roomNumberFor(b.RoomID)
	subject, body := transitionMessage(to, roomNumber)
	s.Notifier.NotifyUser(ctx, b.UserID, "booking", subject, body, "/bookings/"+b.ID)
}

func (s *DefaultBookingService) roomNumberFor(roomID string) string {
	room, err := s.Rooms.GetByID(roomID)
	if err != nil || room == nil {
		utils.GetLogger().Warn("room lookup failed for notification", zap.String("roomID", roomID), zap.Error(err))
		return roomID
	}
	return room.RoomNumber
}
