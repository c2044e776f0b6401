package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/MasaoAsano/roomRSV/internal/models"
	appErrors "github.com/MasaoAsano/roomRSV/pkg/errors"
)

const roomListCacheKey = "rooms:all"

type roomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
}

type bookedRoomLister interface {
	ListBookedRoomIDs(ctx context.Context, start, end time.Time) ([]string, error)
}

// RecommendationRequest describes the payload for the room recommendation
// endpoint. Required equipment is a pointer so an absent requirement set can
// be told apart from "no equipment needed".
type RecommendationRequest struct {
	Duration          int               `json:"duration" validate:"required,gt=0"`
	Attendees         int               `json:"attendees" validate:"required,gt=0"`
	RequiredEquipment *models.Equipment `json:"requiredEquipment" validate:"required"`
	StartTime         *time.Time        `json:"startTime,omitempty"`
	EndTime           *time.Time        `json:"endTime,omitempty"`
}

// RoomService serves room reference data, availability search and the
// recommendation ranking.
type RoomService struct {
	rooms     roomRepository
	bookings  bookedRoomLister
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRoomService instantiates RoomService.
func NewRoomService(rooms roomRepository, bookings bookedRoomLister, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{
		rooms:     rooms,
		bookings:  bookings,
		cache:     cache,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns every room, served from cache when possible.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	if s.cache.Enabled() {
		var cached []models.Room
		if hit, _ := s.cache.Get(ctx, roomListCacheKey, &cached); hit {
			return cached, nil
		}
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, roomListCacheKey, rooms, 0)
	}
	return rooms, nil
}

// Get returns a single room by id.
func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.rooms.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	return room, nil
}

// FindAvailable returns the rooms without a conflicting booking for the
// half-open window [start, end), in room-list order.
func (s *RoomService) FindAvailable(ctx context.Context, start, end time.Time) ([]models.Room, error) {
	rooms, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	bookedIDs, err := s.bookings.ListBookedRoomIDs(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check room availability")
	}

	booked := make(map[string]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	available := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if _, taken := booked[room.ID]; taken {
			continue
		}
		available = append(available, room)
	}
	return available, nil
}

// Recommend ranks the available rooms for the request, highest score first.
// Ties keep the order of the scoring pass. Zero-score rooms are dropped; an
// empty result is a valid answer, not an error.
func (s *RoomService) Recommend(ctx context.Context, req RecommendationRequest) ([]models.RoomRecommendation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "duration, attendees and requiredEquipment are required")
	}

	start, end := resolveWindow(req.StartTime, req.EndTime, req.Duration, s.now)

	available, err := s.FindAvailable(ctx, start, end)
	if err != nil {
		return nil, err
	}

	recommendations := make([]models.RoomRecommendation, 0, len(available))
	for _, room := range available {
		rec := scoreRoom(room, req.Attendees, *req.RequiredEquipment)
		if rec.Score > 0 {
			recommendations = append(recommendations, rec)
		}
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})

	s.logger.Debug("recommendations computed",
		zap.Int("available", len(available)),
		zap.Int("recommended", len(recommendations)),
	)
	return recommendations, nil
}

// resolveWindow derives the effective booking window: explicit start/end
// when provided, otherwise start defaults to now and end to start plus the
// requested duration.
func resolveWindow(start, end *time.Time, durationMinutes int, now func() time.Time) (time.Time, time.Time) {
	effectiveStart := now()
	if start != nil {
		effectiveStart = *start
	}
	effectiveEnd := effectiveStart.Add(time.Duration(durationMinutes) * time.Minute)
	if end != nil {
		effectiveEnd = *end
	}
	return effectiveStart, effectiveEnd
}
