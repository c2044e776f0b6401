package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MasaoAsano/roomRSV/internal/models"
)

// BookingRepository provides persistence for bookings.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = "id, room_id, start_time, end_time, attendees, purpose, booker_name, booker_email, created_at"

// List returns all bookings, optionally narrowed to a date window, ordered
// by start time.
func (r *BookingRepository) List(ctx context.Context, window models.BookingWindow) ([]models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings", bookingColumns)
	var args []interface{}
	if window.Start != nil && window.End != nil {
		query += " WHERE start_time >= $1 AND end_time <= $2"
		args = append(args, *window.Start, *window.End)
	}
	query += " ORDER BY start_time"

	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ListByRoom returns a room's bookings, optionally narrowed to a date
// window, ordered by start time.
func (r *BookingRepository) ListByRoom(ctx context.Context, roomID string, window models.BookingWindow) ([]models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE room_id = $1", bookingColumns)
	args := []interface{}{roomID}
	if window.Start != nil && window.End != nil {
		query += " AND start_time >= $2 AND end_time <= $3"
		args = append(args, *window.Start, *window.End)
	}
	query += " ORDER BY start_time"

	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("list bookings by room: %w", err)
	}
	return bookings, nil
}

// ListIntersecting returns a room's bookings whose interval touches the
// given range at all, ordered by start time. Used by the calendar grid,
// which needs bookings spilling over the week boundary as well.
func (r *BookingRepository) ListIntersecting(ctx context.Context, roomID string, start, end time.Time) ([]models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE room_id = $1 AND start_time < $2 AND end_time > $3 ORDER BY start_time", bookingColumns)
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, roomID, end, start); err != nil {
		return nil, fmt.Errorf("list intersecting bookings: %w", err)
	}
	return bookings, nil
}

// FindByID loads a booking by id.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE id = $1", bookingColumns)
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindOverlapping returns bookings for the room that conflict with the
// half-open window [start, end). Two such intervals overlap iff
// start_time < end AND end_time > start; touching boundaries do not count.
func (r *BookingRepository) FindOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE room_id = $1 AND start_time < $2 AND end_time > $3", bookingColumns)
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, roomID, end, start); err != nil {
		return nil, fmt.Errorf("find overlapping bookings: %w", err)
	}
	return bookings, nil
}

// ListBookedRoomIDs returns the distinct ids of rooms with at least one
// booking overlapping the window.
func (r *BookingRepository) ListBookedRoomIDs(ctx context.Context, start, end time.Time) ([]string, error) {
	const query = `SELECT DISTINCT room_id FROM bookings WHERE start_time < $1 AND end_time > $2`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, end, start); err != nil {
		return nil, fmt.Errorf("list booked room ids: %w", err)
	}
	return ids, nil
}

// Create stores a new booking record.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO bookings (id, room_id, start_time, end_time, attendees, purpose, booker_name, booker_email, created_at) VALUES (:id, :room_id, :start_time, :end_time, :attendees, :purpose, :booker_name, :booker_email, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// Delete removes a booking by id and reports whether a row was removed.
func (r *BookingRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete booking: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete booking rows affected: %w", err)
	}
	return affected > 0, nil
}
