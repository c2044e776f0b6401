package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/MasaoAsano/roomRSV/internal/models"
	appErrors "github.com/MasaoAsano/roomRSV/pkg/errors"
)

// Booking duration constraints in minutes. Confirmed bookings must be a
// positive multiple of the slot granularity within these bounds; the
// search/recommend path deliberately does not enforce them.
const (
	MinBookingMinutes  = 15
	MaxBookingMinutes  = 120
	SlotGranularityMin = 15
)

type bookingRepository interface {
	List(ctx context.Context, window models.BookingWindow) ([]models.Booking, error)
	ListByRoom(ctx context.Context, roomID string, window models.BookingWindow) ([]models.Booking, error)
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	FindOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id string) (bool, error)
}

type roomFinder interface {
	FindByID(ctx context.Context, id string) (*models.Room, error)
}

// CreateBookingRequest describes the payload for creating a booking.
type CreateBookingRequest struct {
	RoomID      string     `json:"roomId" validate:"required"`
	Duration    int        `json:"duration" validate:"required"`
	Attendees   int        `json:"attendees" validate:"required,gt=0"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	Purpose     string     `json:"purpose" validate:"required"`
	BookerName  string     `json:"bookerName" validate:"required"`
	BookerEmail string     `json:"bookerEmail" validate:"required,email"`
}

// BookingService owns the booking lifecycle: commit-time availability
// checking, creation and cancellation.
type BookingService struct {
	bookings  bookingRepository
	rooms     roomFinder
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time

	// Per-room critical section around check-then-insert. The store gives
	// no per-room serializable scope, so without this two concurrent
	// creates for the same window could both pass the overlap check.
	lockMu    sync.Mutex
	roomLocks map[string]*sync.Mutex
}

// NewBookingService instantiates BookingService.
func NewBookingService(bookings bookingRepository, rooms roomFinder, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		bookings:  bookings,
		rooms:     rooms,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		roomLocks: make(map[string]*sync.Mutex),
	}
}

func (s *BookingService) roomLock(roomID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	lock, ok := s.roomLocks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		s.roomLocks[roomID] = lock
	}
	return lock
}

// Create validates the request, re-checks availability at commit time and
// persists the booking. Any earlier search-time availability result is
// advisory only; the overlap check here is authoritative.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "roomId, duration, attendees, purpose, bookerName and bookerEmail are required")
	}

	if err := validateDuration(req.Duration); err != nil {
		return nil, err
	}

	start, end := resolveWindow(req.StartTime, req.EndTime, req.Duration, s.now)
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "endTime must be after startTime")
	}

	room, err := s.rooms.FindByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	lock := s.roomLock(room.ID)
	lock.Lock()
	defer lock.Unlock()

	conflicts, err := s.bookings.FindOverlapping(ctx, room.ID, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check availability")
	}
	if len(conflicts) > 0 {
		s.metrics.RecordBookingConflict()
		return nil, appErrors.Clone(appErrors.ErrConflict, "the room is not available for the requested time window")
	}

	booking := models.Booking{
		RoomID:      room.ID,
		StartTime:   start,
		EndTime:     end,
		Attendees:   req.Attendees,
		Purpose:     req.Purpose,
		BookerName:  req.BookerName,
		BookerEmail: req.BookerEmail,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.bookings.Create(ctx, &booking); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create booking")
	}

	s.metrics.RecordBookingCreated()
	s.invalidateCalendar(ctx, room.ID)
	s.logger.Info("booking created",
		zap.String("booking_id", booking.ID),
		zap.String("room_id", room.ID),
		zap.Time("start", start),
		zap.Time("end", end),
	)
	return &booking, nil
}

// List returns all bookings, optionally narrowed to a date window.
func (s *BookingService) List(ctx context.Context, window models.BookingWindow) ([]models.Booking, error) {
	bookings, err := s.bookings.List(ctx, window)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list bookings")
	}
	return bookings, nil
}

// ListByRoom returns a room's bookings, optionally narrowed to a window.
func (s *BookingService) ListByRoom(ctx context.Context, roomID string, window models.BookingWindow) ([]models.Booking, error) {
	bookings, err := s.bookings.ListByRoom(ctx, roomID, window)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list room bookings")
	}
	return bookings, nil
}

// Get returns a booking by id.
func (s *BookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}
	return booking, nil
}

// Delete cancels a booking. It reports whether a record was removed;
// an unknown id yields false, not an error.
func (s *BookingService) Delete(ctx context.Context, id string) (bool, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}

	deleted, err := s.bookings.Delete(ctx, id)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete booking")
	}
	if deleted {
		s.metrics.RecordBookingCancelled()
		if booking != nil {
			s.invalidateCalendar(ctx, booking.RoomID)
		}
		s.logger.Info("booking cancelled", zap.String("booking_id", id))
	}
	return deleted, nil
}

func (s *BookingService) invalidateCalendar(ctx context.Context, roomID string) {
	if !s.cache.Enabled() {
		return
	}
	_ = s.cache.Invalidate(ctx, fmt.Sprintf("calendar:%s:*", roomID))
}

// validateDuration enforces the slot granularity and booking bounds.
func validateDuration(minutes int) error {
	if minutes < MinBookingMinutes || minutes > MaxBookingMinutes {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duration must be between %d and %d minutes", MinBookingMinutes, MaxBookingMinutes))
	}
	if minutes%SlotGranularityMin != 0 {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("duration must be a multiple of %d minutes", SlotGranularityMin))
	}
	return nil
}
