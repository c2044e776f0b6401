package handler

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/MasaoAsano/roomRSV/internal/models"
	"github.com/MasaoAsano/roomRSV/internal/service"
	appErrors "github.com/MasaoAsano/roomRSV/pkg/errors"
)

type bookingServiceStub struct {
	bookings map[string]models.Booking
	createFn func(req service.CreateBookingRequest) (*models.Booking, error)
}

func (s *bookingServiceStub) Create(ctx context.Context, req service.CreateBookingRequest) (*models.Booking, error) {
	if s.createFn != nil {
		return s.createFn(req)
	}
	return &models.Booking{
		ID:          "b1",
		RoomID:      req.RoomID,
		Attendees:   req.Attendees,
		Purpose:     req.Purpose,
		BookerName:  req.BookerName,
		BookerEmail: req.BookerEmail,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (s *bookingServiceStub) List(ctx context.Context, window models.BookingWindow) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range s.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (s *bookingServiceStub) Get(ctx context.Context, id string) (*models.Booking, error) {
	if b, ok := s.bookings[id]; ok {
		return &b, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
}

func (s *bookingServiceStub) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.bookings[id]; !ok {
		return false, nil
	}
	delete(s.bookings, id)
	return true, nil
}

func buildBookingRouter(h *BookingHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/bookings", h.Create)
	router.GET("/bookings", h.List)
	router.GET("/bookings/:id", h.Get)
	router.DELETE("/bookings/:id", h.Delete)
	return router
}

const validBookingPayload = `{"roomId":"room-001","duration":60,"attendees":4,"purpose":"planning","bookerName":"Alex","bookerEmail":"alex@example.com"}`

func TestBookingHandlerCreate(t *testing.T) {
	h := NewBookingHandler(&bookingServiceStub{})
	router := buildBookingRouter(h)

	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(validBookingPayload))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Contains(t, resp.Body.String(), `"success":true`)
	require.Contains(t, resp.Body.String(), `"roomId":"room-001"`)
}

func TestBookingHandlerCreateInvalidJSON(t *testing.T) {
	h := NewBookingHandler(&bookingServiceStub{})
	router := buildBookingRouter(h)

	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(`{`))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Contains(t, resp.Body.String(), "invalid payload")
}

func TestBookingHandlerCreateConflict(t *testing.T) {
	stub := &bookingServiceStub{createFn: func(req service.CreateBookingRequest) (*models.Booking, error) {
		return nil, appErrors.Clone(appErrors.ErrConflict, "the room is not available for the requested time window")
	}}
	h := NewBookingHandler(stub)
	router := buildBookingRouter(h)

	req, _ := http.NewRequest(http.MethodPost, "/bookings", bytes.NewBufferString(validBookingPayload))
	req.Header.Set("Content-Type", "application/json")
	resp := performRequest(router, req)
	require.Equal(t, http.StatusConflict, resp.Code)
	require.Contains(t, resp.Body.String(), `"success":false`)
	require.Contains(t, resp.Body.String(), "not available")
}

func TestBookingHandlerGetNotFound(t *testing.T) {
	h := NewBookingHandler(&bookingServiceStub{})
	router := buildBookingRouter(h)

	req, _ := http.NewRequest(http.MethodGet, "/bookings/ghost", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestBookingHandlerDelete(t *testing.T) {
	stub := &bookingServiceStub{bookings: map[string]models.Booking{"b1": {ID: "b1", RoomID: "room-001"}}}
	h := NewBookingHandler(stub)
	router := buildBookingRouter(h)

	req, _ := http.NewRequest(http.MethodDelete, "/bookings/b1", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `"success":true`)
}

func TestBookingHandlerDeleteUnknown(t *testing.T) {
	h := NewBookingHandler(&bookingServiceStub{})
	router := buildBookingRouter(h)

	req, _ := http.NewRequest(http.MethodDelete, "/bookings/ghost", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
	require.Contains(t, resp.Body.String(), "booking not found")
}
