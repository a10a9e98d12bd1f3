package payment

import (
	"context"
	"fmt"
	"time"

	bookingRepo "grandstay/database/repository/booking"
	"grandstay/models"
	"grandstay/services/booking"
	"grandstay/services/notification"

	"go.mongodb.org/mongo-driver/bson"
)

// DefaultPaymentService is the production implementation of PaymentService.
type DefaultPaymentService struct {
	Bookings bookingRepo.BookingRepository
	Gateway  Gateway
	Notifier notification.Notifier
}

// CreateCheckoutSession opens a hosted checkout session. Allowed only for the
// booking's owner, and only while the booking is confirmed and unpaid.
func (s *DefaultPaymentService) CreateCheckoutSession(ctx context.Context, bookingID, userID string) (*models.CheckoutSession, error) {
	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, booking.ErrBookingNotFound
	}
	if userID != "" && b.UserID != userID {
		return nil, booking.ErrNotOwner
	}
	if b.Status != models.BookingConfirmed {
		return nil, ErrNotConfirmed
	}
	if b.PaymentStatus == models.PaymentPaid {
		return nil, ErrAlreadyPaid
	}

	description := fmt.Sprintf("Room booking %s to %s",
		b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02"))

	session, err := s.Gateway.CreateCheckoutSession(b, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}
	return session, nil
}

// ConfirmSession polls the gateway for the session state and marks the
// booking paid when the gateway reports settlement.
func (s *DefaultPaymentService) ConfirmSession(ctx context.Context, sessionID string) (*models.Booking, error) {
	session, err := s.Gateway.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment session: %w", err)
	}
	if !session.Paid {
		return nil, ErrSessionNotSettled
	}
	return s.settle(ctx, session)
}

// settle marks the booking referenced by the session as paid. Re-settling an
// already-paid booking is a no-op, so webhook and confirm can both fire.
func (s *DefaultPaymentService) settle(ctx context.Context, session *GatewaySession) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(session.BookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, booking.ErrBookingNotFound
	}
	if b.PaymentStatus == models.PaymentPaid {
		return b, nil
	}

	now := time.Now()
	update := bson.M{
		"payment_status": models.PaymentPaid,
		"payment_method": s.Gateway.Name(),
		"payment_date":   now,
		"transaction_id": session.TransactionID,
	}
	if err := s.Bookings.UpdateSetDocument(b.ID, update); err != nil {
		return nil, err
	}
	b.PaymentStatus = models.PaymentPaid
	b.PaymentMethod = s.Gateway.Name()
	b.PaymentDate = &now
	b.TransactionID = session.TransactionID

	s.notifyPaid(ctx, b)
	return b, nil
}

// notifyPaid fans the "booking paid" notification out to the owner and all
// staff accounts. Best-effort only.
func (s *DefaultPaymentService) notifyPaid(ctx context.Context, b *models.Booking) {
	msg := fmt.Sprintf("Payment of %.2f received for booking %s.", b.TotalAmount, b.ID)
	s.Notifier.NotifyUser(ctx, b.UserID, "payment", "Payment received", msg, "/bookings/"+b.ID)
	s.Notifier.NotifyAdmins(ctx, "payment", "Booking paid", msg, "/bookings/"+b.ID)
}

// SetPaymentStatus applies a manual payment-state change. The payment state
// is monotonic with respect to "has the guest paid": pending->paid and
// paid->refunded are the only legal moves, and refunds are staff-only.
func (s *DefaultPaymentService) SetPaymentStatus(ctx context.Context, bookingID string, to models.PaymentStatus, actor *models.User) (*models.Booking, error) {
	if to != models.PaymentPaid && (actor == nil || !actor.IsStaff()) {
		return nil, ErrForbidden
	}

	b, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, booking.ErrBookingNotFound
	}
	if actor != nil && !actor.IsStaff() && b.UserID != actor.ID {
		return nil, booking.ErrNotOwner
	}

	if !legalPaymentTransition(b.PaymentStatus, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalPaymentTransition, b.PaymentStatus, to)
	}

	now := time.Now()
	update := bson.M{"payment_status": to}
	if to == models.PaymentPaid {
		update["payment_method"] = "manual"
		update["payment_date"] = now
	}
	if err := s.Bookings.UpdateSetDocument(b.ID, update); err != nil {
		return nil, err
	}
	b.PaymentStatus = to
	if to == models.PaymentPaid {
		b.PaymentMethod = "manual"
		b.PaymentDate = &now
		s.notifyPaid(ctx, b)
	}
	if to == models.PaymentRefunded {
		s.Notifier.NotifyUser(ctx, b.UserID, "payment", "Payment refunded",
			fmt.Sprintf("Your payment for booking %s has been refunded.", b.ID), "/bookings/"+b.ID)
	}

	return b, nil
}

// legalPaymentTransition encodes the monotonic payment lifecycle.
func legalPaymentTransition(from, to models.PaymentStatus) bool {
	switch {
	case from == models.PaymentPending && to == models.PaymentPaid:
		return true
	case from == models.PaymentPaid && to == models.PaymentRefunded:
		return true
	}
	return false
}
