package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MasaoAsano/roomRSV/internal/models"
	"github.com/MasaoAsano/roomRSV/internal/service"
	appErrors "github.com/MasaoAsano/roomRSV/pkg/errors"
	"github.com/MasaoAsano/roomRSV/pkg/response"
)

type bookingService interface {
	Create(ctx context.Context, req service.CreateBookingRequest) (*models.Booking, error)
	List(ctx context.Context, window models.BookingWindow) ([]models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// BookingHandler manages booking lifecycle endpoints.
type BookingHandler struct {
	service bookingService
}

// NewBookingHandler constructs handler.
func NewBookingHandler(svc bookingService) *BookingHandler {
	return &BookingHandler{service: svc}
}

// Create godoc
// @Summary Create a booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body service.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	booking, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// List godoc
// @Summary List bookings
// @Tags Bookings
// @Produce json
// @Param startDate query string false "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string false "Window end (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	window, err := parseWindow(c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}
	bookings, err := h.service.List(c.Request.Context(), window)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, bookings)
}

// Get godoc
// @Summary Get a booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, booking)
}

// Delete godoc
// @Summary Cancel a booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Envelope
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !deleted {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "booking not found"))
		return
	}
	response.OK(c, nil)
}
