package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCancelled  BookingStatus = "cancelled"
)

// PaymentStatus tracks whether the guest has paid. It only ever moves
// pending→paid and paid→refunded.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a room reservation for a date range.
// Date ranges are half-open: [CheckIn, CheckOut).
type Booking struct {
	ID     string `bson:"id" json:"id"`
	UserID string `bson:"user_id" json:"userId"`
	RoomID string `bson:"room_id" json:"roomId"`

	CheckIn  time.Time `bson:"check_in" json:"checkIn"`
	CheckOut time.Time `bson:"check_out" json:"checkOut"`
	Guests   int       `bson:"guests" json:"guests"`

	// TotalAmount is computed at creation time and immutable once paid.
	TotalAmount float64       `bson:"total_amount" json:"totalAmount"`
	Status      BookingStatus `bson:"status" json:"status"`

	PaymentStatus PaymentStatus `bson:"payment_status" json:"paymentStatus"`
	PaymentMethod string        `bson:"payment_method,omitempty" json:"paymentMethod,omitempty"`
	PaymentDate   *time.Time    `bson:"payment_date,omitempty" json:"paymentDate,omitempty"`
	TransactionID string        `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`

	CancellationRequested bool   `bson:"cancellation_requested" json:"cancellationRequested"`
	CancellationReason    string `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	AdminNotes            string `bson:"admin_notes,omitempty" json:"adminNotes,omitempty"`

	GuestName       string `bson:"guest_name,omitempty" json:"guestName,omitempty"`
	ContactNumber   string `bson:"contact_number,omitempty" json:"contactNumber,omitempty"` // AES-GCM encrypted at rest
	SpecialRequests string `bson:"special_requests,omitempty" json:"specialRequests,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Nights returns the length of the stay in whole nights.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}

// Active reports whether the booking currently blocks its room's calendar.
func (b *Booking) Active() bool {
	return b.Status == BookingConfirmed || b.Status == BookingCheckedIn
}

// ValidBookingStatus reports whether s is one of the five lifecycle states.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}
