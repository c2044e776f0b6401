package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MasaoAsano/roomRSV/internal/models"
)

func room(capacity int, equipment models.Equipment) models.Room {
	return models.Room{ID: "room-x", Name: "Room X", Capacity: capacity, Equipment: equipment}
}

func TestScoreRoomEquipmentGate(t *testing.T) {
	r := room(10, models.Equipment{Projector: true})
	rec := scoreRoom(r, 8, models.Equipment{Projector: true, Whiteboard: true})

	assert.Equal(t, 0, rec.Score)
	assert.Len(t, rec.Reasons, 1)
	assert.Contains(t, rec.Reasons[0], "whiteboard")
}

func TestScoreRoomEquipmentGateIgnoresCapacityFit(t *testing.T) {
	// Exact capacity match must not rescue a room missing equipment.
	r := room(8, models.Equipment{})
	rec := scoreRoom(r, 8, models.Equipment{VideoConference: true})

	assert.Equal(t, 0, rec.Score)
	assert.Len(t, rec.Reasons, 1)
}

func TestScoreRoomNoRequirementsPasses(t *testing.T) {
	r := room(20, models.Equipment{})
	rec := scoreRoom(r, 4, models.Equipment{})

	// base 100 + generous headroom 10 (ratio 0.2).
	assert.Equal(t, 110, rec.Score)
}

func TestScoreRoomCapacityBuckets(t *testing.T) {
	cases := []struct {
		name      string
		capacity  int
		attendees int
		want      int
	}{
		{"exact match", 8, 8, 100 + 40 + 50},
		{"ratio 0.8 tight without bonus", 15, 12, 100 + 40},
		{"near exact plus two", 10, 8, 100 + 40 + 30},
		{"ratio 0.6 some headroom", 10, 6, 100 + 30},
		{"ratio 0.4 comfortable", 10, 4, 100 + 20},
		{"ratio below 0.4 generous", 20, 4, 100 + 10},
		{"insufficient capacity", 4, 8, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := scoreRoom(room(tc.capacity, models.Equipment{}), tc.attendees, models.Equipment{})
			assert.Equal(t, tc.want, rec.Score)
		})
	}
}

func TestScoreRoomNearExactBonusWindow(t *testing.T) {
	// capacity attendees+1 and attendees+2 get the bonus, attendees+3 does not.
	recPlus1 := scoreRoom(room(9, models.Equipment{}), 8, models.Equipment{})
	recPlus2 := scoreRoom(room(10, models.Equipment{}), 8, models.Equipment{})
	recPlus3 := scoreRoom(room(11, models.Equipment{}), 8, models.Equipment{})

	assert.Equal(t, 100+40+30, recPlus1.Score) // ratio 0.889
	assert.Equal(t, 100+40+30, recPlus2.Score) // ratio 0.8
	assert.Equal(t, 100+30, recPlus3.Score)    // ratio 0.727, no bonus
}

func TestScoreRoomExactMatchBeatsLooseFit(t *testing.T) {
	exact := scoreRoom(room(8, models.Equipment{}), 8, models.Equipment{})
	loose := scoreRoom(room(13, models.Equipment{}), 8, models.Equipment{})

	assert.Greater(t, exact.Score, loose.Score)
}

func TestScoreRoomInsufficientCapacityIsSoft(t *testing.T) {
	r := room(4, models.Equipment{Projector: true})
	rec := scoreRoom(r, 10, models.Equipment{Projector: true})

	assert.Equal(t, 100, rec.Score)
	assert.Contains(t, rec.Reasons, "insufficient capacity")
}

func TestScoreRoomReasonOrder(t *testing.T) {
	rec := scoreRoom(room(8, models.Equipment{Projector: true}), 8, models.Equipment{Projector: true})

	assert.Equal(t, []string{
		"all required equipment is available",
		"capacity is appropriate",
		"capacity matches exactly",
	}, rec.Reasons)
}

func TestEquipmentSatisfies(t *testing.T) {
	full := models.Equipment{Projector: true, VideoConference: true, Whiteboard: true}
	assert.True(t, full.Satisfies(models.Equipment{Projector: true}))
	assert.True(t, full.Satisfies(models.Equipment{}))
	assert.False(t, models.Equipment{}.Satisfies(models.Equipment{Whiteboard: true}))
}
