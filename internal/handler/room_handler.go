package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MasaoAsano/roomRSV/internal/models"
	"github.com/MasaoAsano/roomRSV/internal/service"
	appErrors "github.com/MasaoAsano/roomRSV/pkg/errors"
	"github.com/MasaoAsano/roomRSV/pkg/response"
)

type roomService interface {
	List(ctx context.Context) ([]models.Room, error)
	Get(ctx context.Context, id string) (*models.Room, error)
	Recommend(ctx context.Context, req service.RecommendationRequest) ([]models.RoomRecommendation, error)
}

type roomBookingLister interface {
	ListByRoom(ctx context.Context, roomID string, window models.BookingWindow) ([]models.Booking, error)
}

type calendarService interface {
	BuildWeek(ctx context.Context, roomID string, weekStart time.Time) (*models.CalendarData, error)
	ExportWeek(ctx context.Context, roomID string, weekStart time.Time, format string) ([]byte, string, error)
}

// RoomHandler manages room, recommendation and calendar endpoints.
type RoomHandler struct {
	rooms    roomService
	bookings roomBookingLister
	calendar calendarService
}

// NewRoomHandler constructs handler.
func NewRoomHandler(rooms roomService, bookings roomBookingLister, calendar calendarService) *RoomHandler {
	return &RoomHandler{rooms: rooms, bookings: bookings, calendar: calendar}
}

// List godoc
// @Summary List meeting rooms
// @Tags Rooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.rooms.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rooms)
}

// Get godoc
// @Summary Get a meeting room
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	room, err := h.rooms.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, room)
}

// ListBookings godoc
// @Summary List a room's bookings
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param startDate query string false "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string false "Window end (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id}/bookings [get]
func (h *RoomHandler) ListBookings(c *gin.Context) {
	window, err := parseWindow(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	bookings, err := h.bookings.ListByRoom(c.Request.Context(), c.Param("id"), window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bookings)
}

// Recommend godoc
// @Summary Recommend rooms for a booking request
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body service.RecommendationRequest true "Recommendation payload"
// @Success 200 {object} response.Envelope
// @Router /rooms/recommend [post]
func (h *RoomHandler) Recommend(c *gin.Context) {
	var req service.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	recommendations, err := h.rooms.Recommend(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, recommendations)
}

// Calendar godoc
// @Summary Weekly availability grid for a room
// @Tags Rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param startDate query string false "Week start date; defaults to today"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id}/calendar [get]
func (h *RoomHandler) Calendar(c *gin.Context) {
	weekStart, err := parseWeekStart(c.Query("startDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := h.calendar.BuildWeek(c.Request.Context(), c.Param("id"), weekStart)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, data)
}

// ExportCalendar godoc
// @Summary Export the weekly grid as PDF or CSV
// @Tags Rooms
// @Produce application/pdf
// @Param id path string true "Room ID"
// @Param startDate query string false "Week start date; defaults to today"
// @Param format query string false "pdf (default) or csv"
// @Success 200 {file} binary
// @Router /rooms/{id}/calendar/export [get]
func (h *RoomHandler) ExportCalendar(c *gin.Context) {
	weekStart, err := parseWeekStart(c.Query("startDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, contentType, err := h.calendar.ExportWeek(c.Request.Context(), c.Param("id"), weekStart, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	ext := "pdf"
	if contentType == "text/csv" {
		ext = "csv"
	}
	filename := fmt.Sprintf("calendar-%s-%s.%s", c.Param("id"), weekStart.Format("2006-01-02"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
