// Command seed creates the meeting_rooms and bookings tables and loads the
// reference room inventory. Safe to re-run: rooms are upserted by id.
package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/MasaoAsano/roomRSV/pkg/config"
	"github.com/MasaoAsano/roomRSV/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS meeting_rooms (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	capacity         INTEGER NOT NULL,
	projector        BOOLEAN NOT NULL,
	video_conference BOOLEAN NOT NULL,
	whiteboard       BOOLEAN NOT NULL,
	location         TEXT NOT NULL,
	floor            INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	id           TEXT PRIMARY KEY,
	room_id      TEXT NOT NULL REFERENCES meeting_rooms (id),
	start_time   TIMESTAMPTZ NOT NULL,
	end_time     TIMESTAMPTZ NOT NULL,
	attendees    INTEGER NOT NULL,
	purpose      TEXT NOT NULL,
	booker_name  TEXT NOT NULL,
	booker_email TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookings_room_window ON bookings (room_id, start_time, end_time);
`

type seedRoom struct {
	ID              string
	Name            string
	Capacity        int
	Projector       bool
	VideoConference bool
	Whiteboard      bool
	Location        string
	Floor           int
}

var rooms = []seedRoom{
	{"room-001", "Meeting Room A", 4, true, false, true, "Head Office", 5},
	{"room-002", "Meeting Room B", 6, true, true, true, "Head Office", 5},
	{"room-003", "Meeting Room C", 8, false, true, false, "Head Office", 6},
	{"room-004", "Large Conference Room", 12, true, true, true, "Head Office", 7},
	{"room-005", "Seminar Room", 20, true, true, true, "Head Office", 8},
	{"room-006", "Small Meeting Room D", 2, false, false, true, "Head Office", 4},
	{"room-007", "Meeting Room E", 10, true, false, true, "Head Office", 6},
	{"room-008", "Meeting Room F", 6, false, true, false, "Head Office", 5},
	{"room-009", "Meeting Room G", 4, true, true, true, "Head Office", 7},
	{"room-010", "VIP Conference Room", 8, true, true, true, "Head Office", 9},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}

	if err := seedRooms(db); err != nil {
		log.Fatalf("failed to seed rooms: %v", err)
	}

	log.Printf("seeded %d rooms", len(rooms))
}

func seedRooms(db *sqlx.DB) error {
	const upsert = `
		INSERT INTO meeting_rooms (id, name, capacity, projector, video_conference, whiteboard, location, floor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			capacity = EXCLUDED.capacity,
			projector = EXCLUDED.projector,
			video_conference = EXCLUDED.video_conference,
			whiteboard = EXCLUDED.whiteboard,
			location = EXCLUDED.location,
			floor = EXCLUDED.floor`

	for _, room := range rooms {
		if _, err := db.Exec(upsert, room.ID, room.Name, room.Capacity, room.Projector, room.VideoConference, room.Whiteboard, room.Location, room.Floor); err != nil {
			return err
		}
	}
	return nil
}
