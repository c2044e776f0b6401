package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newRoomRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func roomRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "capacity", "projector", "video_conference", "whiteboard", "location", "floor"})
}

func TestRoomRepositoryList(t *testing.T) {
	db, mock, cleanup := newRoomRepoMock(t)
	defer cleanup()

	repo := NewRoomRepository(db)
	rows := roomRows().
		AddRow("room-001", "Meeting Room A", 6, true, false, true, "Head Office", 4).
		AddRow("room-002", "Meeting Room B", 10, true, true, false, "Head Office", 5)
	mock.ExpectQuery(regexp.QuoteMeta("FROM meeting_rooms ORDER BY name")).
		WillReturnRows(rows)

	rooms, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	first := rooms[0]
	require.Equal(t, "room-001", first.ID)
	require.True(t, first.Equipment.Projector)
	require.False(t, first.Equipment.VideoConference)
	require.True(t, first.Equipment.Whiteboard)
	require.Equal(t, 4, first.Floor)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRoomRepoMock(t)
	defer cleanup()

	repo := NewRoomRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM meeting_rooms WHERE id = $1")).
		WithArgs("room-002").
		WillReturnRows(roomRows().AddRow("room-002", "Meeting Room B", 10, true, true, false, "Head Office", 5))

	room, err := repo.FindByID(context.Background(), "room-002")
	require.NoError(t, err)
	require.Equal(t, "Meeting Room B", room.Name)
	require.True(t, room.Equipment.VideoConference)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newRoomRepoMock(t)
	defer cleanup()

	repo := NewRoomRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("FROM meeting_rooms WHERE id = $1")).
		WithArgs("ghost").
		WillReturnRows(roomRows())

	_, err := repo.FindByID(context.Background(), "ghost")
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
