package booking

import (
	"context"
	"fmt"

	"grandstay/models"

	"go.mongodb.org/mongo-driver/bson"
)

// RequestCancellation flags a booking for cancellation on behalf of its owner.
// Only pending and confirmed bookings can be flagged.
func (s *DefaultBookingService) RequestCancellation(ctx context.Context, bookingID, userID, reason string) (*models.Booking, error) {
	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	if b.Status != models.BookingPending && b.Status != models.BookingConfirmed {
		return nil, fmt.Errorf("%w: booking is %s", ErrCancellationState, b.Status)
	}
	if b.CancellationRequested {
		return nil, fmt.Errorf("%w: cancellation already requested", ErrCancellationState)
	}

	update := bson.M{"cancellation_requested": true, "cancellation_reason": reason}
	if err := s.Bookings.UpdateSetDocument(b.ID, update); err != nil {
		return nil, err
	}
	b.CancellationRequested = true
	b.CancellationReason = reason

	// Fan-out: admins get a review prompt, the requester an acknowledgement.
	s.Notifier.NotifyAdmins(ctx, "cancellation",
		"Cancellation requested",
		fmt.Sprintf("A guest has requested to cancel booking %s. Reason: %s", b.ID, reason),
		"/bookings/"+b.ID)
	s.Notifier.EmailUser(ctx, b.UserID,
		"Cancellation request received",
		"We have received your cancellation request. Our team will review it shortly.")

	return b, nil
}

// ApproveCancellation cancels a booking whose cancellation was requested.
func (s *DefaultBookingService) ApproveCancellation(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.CancellationRequested {
		return nil, fmt.Errorf("%w: no cancellation request pending", ErrCancellationState)
	}

	update := bson.M{"status": models.BookingCancelled, "cancellation_requested": false}
	if err := s.Bookings.UpdateSetDocument(b.ID, update); err != nil {
		return nil, err
	}
	b.Status = models.BookingCancelled
	b.CancellationRequested = false

	s.notifyTransition(ctx, b, models.BookingCancelled)
	return b, nil
}

// DeclineCancellation voids a cancellation request, leaving the booking's
// status untouched. An optional admin note is recorded.
func (s *DefaultBookingService) DeclineCancellation(ctx context.Context, bookingID, note string) (*models.Booking, error) {
	b, err := s.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.CancellationRequested {
		return nil, fmt.Errorf("%w: no cancellation request pending", ErrCancellationState)
	}

	update := bson.M{"cancellation_requested": false}
	if note != "" {
		update["admin_notes"] = note
	}
	if err := s.Bookings.UpdateSetDocument(b.ID, update); err != nil {
		return nil, err
	}
	b.CancellationRequested = false
	if note != "" {
		b.AdminNotes = note
	}

	body := "Your cancellation request has been declined; the booking remains as scheduled."
	if note != "" {
		body += " Note from the hotel: " + note
	}
	s.Notifier.NotifyUser(ctx, b.UserID, "cancellation", "Cancellation request declined", body, "/bookings/"+b.ID)

	return b, nil
}
