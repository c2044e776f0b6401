package service

import (
	"fmt"
	"strings"

	"github.com/MasaoAsano/roomRSV/internal/models"
)

// Scoring weights. Equipment is the only hard gate; a room missing required
// equipment scores exactly zero. Capacity deficiency merely contributes no
// capacity points.
const (
	scoreEquipmentBase  = 100
	scoreCapacityTight  = 40
	scoreCapacitySome   = 30
	scoreCapacityComfy  = 20
	scoreCapacityLoose  = 10
	scoreBonusExact     = 50
	scoreBonusNearExact = 30
)

// scoreRoom computes the recommendation score for one room against the
// requested attendee count and equipment. Pure and total; reasons are
// appended in the order the rules fired.
func scoreRoom(room models.Room, attendees int, required models.Equipment) models.RoomRecommendation {
	score := 0
	var reasons []string

	if missing := room.Equipment.Missing(required); len(missing) > 0 {
		return models.RoomRecommendation{
			Room:    room,
			Score:   0,
			Reasons: []string{fmt.Sprintf("missing required equipment: %s", strings.Join(missing, ", "))},
		}
	}
	score += scoreEquipmentBase
	reasons = append(reasons, "all required equipment is available")

	points, reason := capacityScore(room.Capacity, attendees)
	score += points
	reasons = append(reasons, reason)

	if room.Capacity == attendees {
		score += scoreBonusExact
		reasons = append(reasons, "capacity matches exactly")
	} else if room.Capacity > attendees && room.Capacity <= attendees+2 {
		score += scoreBonusNearExact
		reasons = append(reasons, "modest headroom")
	}

	return models.RoomRecommendation{Room: room, Score: score, Reasons: reasons}
}

// capacityScore buckets how tightly the attendees fill the room.
func capacityScore(capacity, attendees int) (int, string) {
	if capacity < attendees {
		return 0, "insufficient capacity"
	}

	ratio := float64(attendees) / float64(capacity)
	switch {
	case ratio >= 0.8:
		return scoreCapacityTight, "capacity is appropriate"
	case ratio >= 0.6:
		return scoreCapacitySome, "some headroom"
	case ratio >= 0.4:
		return scoreCapacityComfy, "comfortable headroom"
	default:
		return scoreCapacityLoose, "generous headroom"
	}
}
