package models

// Equipment describes the fixed equipment set of a meeting room. The same
// shape doubles as a booking request's requirement: a requirement is
// satisfied when every true field is also true on the room's capability.
type Equipment struct {
	Projector       bool `json:"projector"`
	VideoConference bool `json:"videoConference"`
	Whiteboard      bool `json:"whiteboard"`
}

// Satisfies reports whether the capability covers every item required.
func (capability Equipment) Satisfies(required Equipment) bool {
	return len(capability.Missing(required)) == 0
}

// Missing lists required equipment the capability does not provide.
func (capability Equipment) Missing(required Equipment) []string {
	var missing []string
	if required.Projector && !capability.Projector {
		missing = append(missing, "projector")
	}
	if required.VideoConference && !capability.VideoConference {
		missing = append(missing, "video conference system")
	}
	if required.Whiteboard && !capability.Whiteboard {
		missing = append(missing, "whiteboard")
	}
	return missing
}

// Room is the immutable reference record for a bookable meeting room.
// Equipment flags are flattened into boolean columns in storage; the
// repository folds them back into the nested shape the API exposes.
type Room struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Equipment Equipment `json:"equipment"`
	Location  string    `json:"location"`
	Floor     int       `json:"floor"`
}

// RoomRecommendation pairs a room with its computed score and the ordered
// reasons the scorer fired. Recomputed per request, never persisted.
type RoomRecommendation struct {
	Room    Room     `json:"room"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}
