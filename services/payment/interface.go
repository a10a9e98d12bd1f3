package payment

import (
	"context"
	"errors"

	"grandstay/models"
)

var (
	// ErrNotConfirmed is returned when checkout is started for a booking that
	// is not in confirmed status.
	ErrNotConfirmed = errors.New("booking must be confirmed before payment")

	// ErrAlreadyPaid is returned when checkout is started for a paid booking.
	ErrAlreadyPaid = errors.New("booking is already paid")

	// ErrIllegalPaymentTransition is returned when a payment status change
	// would violate monotonicity (paid can never revert to pending).
	ErrIllegalPaymentTransition = errors.New("illegal payment status transition")

	// ErrForbidden is returned when the caller's role does not allow the
	// requested payment operation.
	ErrForbidden = errors.New("operation not permitted for this caller")

	// ErrSessionNotSettled is returned on confirm when the gateway has not
	// reported the session as paid yet.
	ErrSessionNotSettled = errors.New("payment session not settled")
)

// GatewaySession is the gateway-agnostic view of a hosted checkout session.
type GatewaySession struct {
	ID            string
	Paid          bool
	BookingID     string
	UserID        string
	TransactionID string
}

// Gateway abstracts the external payment provider.
type Gateway interface {
	// CreateCheckoutSession opens a hosted checkout session for the booking,
	// keyed by bookingId/userId in its metadata, and returns the redirect URL.
	CreateCheckoutSession(b *models.Booking, description string) (*models.CheckoutSession, error)

	// GetSession fetches the session state from the gateway.
	GetSession(sessionID string) (*GatewaySession, error)

	// Name identifies the gateway in booking payment records.
	Name() string
}

// PaymentService coordinates gateway checkout with booking payment state.
type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, bookingID, userID string) (*models.CheckoutSession, error)

	// ConfirmSession is the client-side pull path: it polls the gateway for
	// the session and marks the booking paid when settled.
	ConfirmSession(ctx context.Context, sessionID string) (*models.Booking, error)

	// HandleWebhook is the gateway push path for completed checkouts.
	HandleWebhook(ctx context.Context, payload []byte, signature string) error

	// SetPaymentStatus applies a manual payment-state change under the
	// monotonicity rule. Only staff may set anything other than paid.
	SetPaymentStatus(ctx context.Context, bookingID string, to models.PaymentStatus, actor *models.User) (*models.Booking, error)
}
