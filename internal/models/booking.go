package models

import "time"

// Booking is a confirmed reservation of a room for a half-open time window
// [StartTime, EndTime). Bookings are created and deleted, never rescheduled.
type Booking struct {
	ID          string    `db:"id" json:"id"`
	RoomID      string    `db:"room_id" json:"roomId"`
	StartTime   time.Time `db:"start_time" json:"startTime"`
	EndTime     time.Time `db:"end_time" json:"endTime"`
	Attendees   int       `db:"attendees" json:"attendees"`
	Purpose     string    `db:"purpose" json:"purpose"`
	BookerName  string    `db:"booker_name" json:"bookerName"`
	BookerEmail string    `db:"booker_email" json:"bookerEmail"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// BookingWindow optionally narrows booking queries to a date range.
type BookingWindow struct {
	Start *time.Time
	End   *time.Time
}
