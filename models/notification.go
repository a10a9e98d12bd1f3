package models

import "time"

// Notification is an in-app message shown to a user. It is a pure side-channel
// record; nothing in the booking lifecycle depends on it.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Type      string    `bson:"type" json:"type"` // e.g. "booking", "payment", "cancellation"
	Message   string    `bson:"message" json:"message"`
	Link      string    `bson:"link,omitempty" json:"link,omitempty"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
