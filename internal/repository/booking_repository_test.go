package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/MasaoAsano/roomRSV/internal/models"
)

func newBookingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "room_id", "start_time", "end_time", "attendees", "purpose", "booker_name", "booker_email", "created_at"})
}

func TestBookingRepositoryCreateAndFind(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	booking := &models.Booking{
		RoomID:      "room-001",
		StartTime:   time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC),
		Attendees:   4,
		Purpose:     "planning",
		BookerName:  "Alex",
		BookerEmail: "alex@example.com",
	}
	require.NoError(t, repo.Create(context.Background(), booking))
	require.NotEmpty(t, booking.ID)
	require.False(t, booking.CreatedAt.IsZero())

	rows := bookingRows().
		AddRow(booking.ID, booking.RoomID, booking.StartTime, booking.EndTime, booking.Attendees, booking.Purpose, booking.BookerName, booking.BookerEmail, booking.CreatedAt)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, room_id, start_time, end_time")).
		WithArgs(booking.ID).
		WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), booking.ID)
	require.NoError(t, err)
	require.Equal(t, booking.RoomID, found.RoomID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryFindOverlapping(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	start := time.Date(2025, 3, 3, 10, 30, 0, 0, time.UTC)
	end := time.Date(2025, 3, 3, 11, 30, 0, 0, time.UTC)

	rows := bookingRows().
		AddRow("b1", "room-001", start.Add(-30*time.Minute), end.Add(-30*time.Minute), 4, "standup", "Sam", "sam@example.com", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE room_id = $1 AND start_time < $2 AND end_time > $3")).
		WithArgs("room-001", end, start).
		WillReturnRows(rows)

	conflicts, err := repo.FindOverlapping(context.Background(), "room-001", start, end)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	require.Equal(t, "b1", conflicts[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListByRoomWithWindow(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE room_id = $1 AND start_time >= $2 AND end_time <= $3 ORDER BY start_time")).
		WithArgs("room-001", start, end).
		WillReturnRows(bookingRows())

	bookings, err := repo.ListByRoom(context.Background(), "room-001", models.BookingWindow{Start: &start, End: &end})
	require.NoError(t, err)
	require.Empty(t, bookings)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListBookedRoomIDs(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	start := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	rows := sqlmock.NewRows([]string{"room_id"}).AddRow("room-001").AddRow("room-003")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT room_id FROM bookings")).
		WithArgs(end, start).
		WillReturnRows(rows)

	ids, err := repo.ListBookedRoomIDs(context.Background(), start, end)
	require.NoError(t, err)
	require.Equal(t, []string{"room-001", "room-003"}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")).
		WithArgs("b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), "b1")
	require.NoError(t, err)
	require.True(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryDeleteUnknown(t *testing.T) {
	db, mock, cleanup := newBookingRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "missing")
	require.NoError(t, err)
	require.False(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
