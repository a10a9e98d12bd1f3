package models

import "time"

// RoomType enumerates the room categories offered by the hotel.
type RoomType string

const (
	RoomStandard     RoomType = "Standard"
	RoomDeluxe       RoomType = "Deluxe"
	RoomSuite        RoomType = "Suite"
	RoomPresidential RoomType = "Presidential"
)

// HousekeepingStatus tracks the cleaning state of a room.
type HousekeepingStatus string

const (
	HousekeepingClean      HousekeepingStatus = "clean"
	HousekeepingDirty      HousekeepingStatus = "dirty"
	HousekeepingInProgress HousekeepingStatus = "in-progress"
)

// Room represents a bookable hotel room.
type Room struct {
	ID           string             `bson:"id" json:"id"`
	RoomNumber   string             `bson:"room_number" json:"roomNumber"`
	Type         RoomType           `bson:"type" json:"type"`
	NightlyPrice float64            `bson:"nightly_price" json:"nightlyPrice"`
	Capacity     int                `bson:"capacity" json:"capacity"`
	Amenities    []string           `bson:"amenities,omitempty" json:"amenities,omitempty"`
	Available    bool               `bson:"available" json:"available"`
	Housekeeping HousekeepingStatus `bson:"housekeeping" json:"housekeeping"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Images       []string           `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ValidRoomType reports whether t is one of the supported room categories.
func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomStandard, RoomDeluxe, RoomSuite, RoomPresidential:
		return true
	}
	return false
}

// ValidHousekeepingStatus reports whether s is a known cleaning state.
func ValidHousekeepingStatus(s HousekeepingStatus) bool {
	switch s {
	case HousekeepingClean, HousekeepingDirty, HousekeepingInProgress:
		return true
	}
	return false
}
