package models

// CalendarSlot is one fixed-width cell of the weekly availability grid.
// Booking metadata is only present when the slot is occupied.
type CalendarSlot struct {
	TimeSlot   string `json:"timeSlot"`
	IsBooked   bool   `json:"isBooked"`
	BookingID  string `json:"bookingId,omitempty"`
	BookerName string `json:"bookerName,omitempty"`
	Purpose    string `json:"purpose,omitempty"`
}

// CalendarDay groups the slots of a single date.
type CalendarDay struct {
	Date      string         `json:"date"`
	DayOfWeek string         `json:"dayOfWeek"`
	Slots     []CalendarSlot `json:"slots"`
}

// CalendarData is a room's seven-day availability grid.
type CalendarData struct {
	Room          Room          `json:"room"`
	WeekStartDate string        `json:"weekStartDate"`
	WeekEndDate   string        `json:"weekEndDate"`
	Days          []CalendarDay `json:"days"`
}
