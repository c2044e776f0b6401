package service

import (
	"time"

	"github.com/MasaoAsano/roomRSV/internal/models"
)

// overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// overlap. Touching intervals (e1 == s2) do not overlap. Intervals without
// positive length overlap nothing; duration validation should prevent them
// from reaching this point at all.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	if !e1.After(s1) || !e2.After(s2) {
		return false
	}
	return s1.Before(e2) && e1.After(s2)
}

// anyOverlap reports whether any booking conflicts with [start, end).
func anyOverlap(bookings []models.Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if overlaps(b.StartTime, b.EndTime, start, end) {
			return true
		}
	}
	return false
}

// filterAvailable returns the rooms without a conflicting booking for
// [start, end), preserving the input order. Rooms with no bookings are
// trivially available.
func filterAvailable(rooms []models.Room, bookingsByRoom map[string][]models.Booking, start, end time.Time) []models.Room {
	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if anyOverlap(bookingsByRoom[room.ID], start, end) {
			continue
		}
		available = append(available, room)
	}
	return available
}
