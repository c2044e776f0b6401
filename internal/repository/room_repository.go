package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/MasaoAsano/roomRSV/internal/models"
)

// RoomRepository provides read access to the meeting room reference data.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository creates a new room repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// roomRow mirrors the flattened meeting_rooms columns.
type roomRow struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	Capacity        int    `db:"capacity"`
	Projector       bool   `db:"projector"`
	VideoConference bool   `db:"video_conference"`
	Whiteboard      bool   `db:"whiteboard"`
	Location        string `db:"location"`
	Floor           int    `db:"floor"`
}

func (r roomRow) toModel() models.Room {
	return models.Room{
		ID:       r.ID,
		Name:     r.Name,
		Capacity: r.Capacity,
		Equipment: models.Equipment{
			Projector:       r.Projector,
			VideoConference: r.VideoConference,
			Whiteboard:      r.Whiteboard,
		},
		Location: r.Location,
		Floor:    r.Floor,
	}
}

const roomColumns = "id, name, capacity, projector, video_conference, whiteboard, location, floor"

// List returns every room ordered by display name.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	query := fmt.Sprintf("SELECT %s FROM meeting_rooms ORDER BY name", roomColumns)
	var rows []roomRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	rooms := make([]models.Room, 0, len(rows))
	for _, row := range rows {
		rooms = append(rooms, row.toModel())
	}
	return rooms, nil
}

// FindByID loads a room by id.
func (r *RoomRepository) FindByID(ctx context.Context, id string) (*models.Room, error) {
	query := fmt.Sprintf("SELECT %s FROM meeting_rooms WHERE id = $1", roomColumns)
	var row roomRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	room := row.toModel()
	return &room, nil
}
