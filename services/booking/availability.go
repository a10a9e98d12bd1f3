package booking

import (
	"context"
	"fmt"
	"time"
)

// Availability reports whether the room is free over [from, to) and returns
// the conflicting active bookings for calendar display. A single-date query
// (to equal to from) covers that one night.
//
// The read is a point-in-time snapshot; the authoritative check happens again
// inside the creation/confirmation transaction.
func (s *DefaultBookingService) Availability(ctx context.Context, roomID string, from, to time.Time) (*AvailabilityResult, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: end of range must not be before start", ErrValidation)
	}
	if to.Equal(from) {
		to = from.AddDate(0, 0, 1)
	}

	room, err := s.Rooms.GetByID(roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	conflicts, err := s.Bookings.FindOverlapping(roomID, from, to, "")
	if err != nil {
		return nil, err
	}

	return &AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}
