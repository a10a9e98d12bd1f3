package models

// StatusCount is one bucket of a grouped booking count.
type StatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int    `bson:"count" json:"count"`
}

// RoomTypeRevenue is revenue grouped by room category.
type RoomTypeRevenue struct {
	RoomType string  `bson:"_id" json:"roomType"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
	Bookings int     `bson:"bookings" json:"bookings"`
}

// DailyRevenue is revenue grouped by calendar day of check-in.
type DailyRevenue struct {
	Day     string  `bson:"_id" json:"day"` // YYYY-MM-DD
	Revenue float64 `bson:"revenue" json:"revenue"`
}

// TopCustomer is one row of the top-customers breakdown.
type TopCustomer struct {
	UserID   string  `bson:"_id" json:"userId"`
	Email    string  `bson:"email,omitempty" json:"email,omitempty"`
	Spent    float64 `bson:"spent" json:"spent"`
	Bookings int     `bson:"bookings" json:"bookings"`
}

// OccupancyReport summarizes utilization over a date window.
type OccupancyReport struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	RoomCount       int     `json:"roomCount"`
	Days            int     `json:"days"`
	BookedRoomNight int     `json:"bookedRoomNights"`
	OccupancyRate   float64 `json:"occupancyRate"` // booked room-nights / (rooms × days)
}

// RevenueReport aggregates paid booking revenue over a date window.
type RevenueReport struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	Total      float64           `json:"total"`
	ByStatus   []StatusCount     `json:"byStatus"`
	ByRoomType []RoomTypeRevenue `json:"byRoomType"`
	ByDay      []DailyRevenue    `json:"byDay"`
}
