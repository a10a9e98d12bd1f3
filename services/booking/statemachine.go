package booking

import "grandstay/models"

// legalTransitions encodes the booking lifecycle:
// pending -> confirmed -> checked-in -> checked-out, with cancellation
// possible from pending and confirmed only. cancelled is terminal.
var legalTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingPending:   {models.BookingConfirmed, models.BookingCancelled},
	models.BookingConfirmed: {models.BookingCheckedIn, models.BookingCancelled},
	models.BookingCheckedIn: {models.BookingCheckedOut},
}

// CanTransition reports whether the status change from -> to is legal.
func CanTransition(from, to models.BookingStatus) bool {
	for _, allowed := range legalTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// transitionMessage returns the owner-facing notification text for a status
// change. Confirm and cancel carry customized content.
func transitionMessage(to models.BookingStatus, roomNumber string) (subject, body string) {
	switch to {
	case models.BookingConfirmed:
		return "Booking confirmed",
			"Great news! Your booking for room " + roomNumber + " has been confirmed. We look forward to welcoming you."
	case models.BookingCancelled:
		return "Booking cancelled",
			"Your booking for room " + roomNumber + " has been cancelled. If you believe this is a mistake, please contact the front desk."
	case models.BookingCheckedIn:
		return "Checked in",
			"You are checked in to room " + roomNumber + ". Enjoy your stay!"
	case models.BookingCheckedOut:
		return "Checked out",
			"You have checked out of room " + roomNumber + ". Thank you for staying with us."
	default:
		return "Booking updated",
			"The status of your booking for room " + roomNumber + " has changed to " + string(to) + "."
	}
}
