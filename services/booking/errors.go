package booking

import (
	"errors"
	"fmt"

	"grandstay/models"
)

var (
	// ErrValidation marks malformed or missing input. Wrap it with context:
	// fmt.Errorf("%w: checkOut must be after checkIn", ErrValidation).
	ErrValidation = errors.New("validation error")

	// ErrRoomNotFound is returned when the referenced room does not exist.
	ErrRoomNotFound = errors.New("room not found")

	// ErrBookingNotFound is returned when the referenced booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrRoomUnavailable is returned when the requested date range overlaps an
	// active booking for the room.
	ErrRoomUnavailable = errors.New("room is not available for the requested dates")

	// ErrNotOwner is returned when a user acts on a booking they do not own.
	ErrNotOwner = errors.New("booking does not belong to this user")

	// ErrCancellationState is returned when the cancellation sub-state forbids
	// the requested operation.
	ErrCancellationState = errors.New("cancellation request not allowed in current state")
)

// TransitionError reports an illegal booking status transition.
type TransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal status transition %s -> %s", e.From, e.To)
}
