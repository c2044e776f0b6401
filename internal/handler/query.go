package handler

import (
	"fmt"
	"time"

	"github.com/MasaoAsano/roomRSV/internal/models"
	appErrors "github.com/MasaoAsano/roomRSV/pkg/errors"
)

// parseTime accepts the timestamp shapes the SPA sends: full RFC 3339 or a
// bare date.
func parseTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", raw)
}

// parseWindow builds an optional date window from query parameters. Both
// sides must be present for the window to apply, matching the storage
// filter semantics.
func parseWindow(startRaw, endRaw string) (models.BookingWindow, error) {
	var window models.BookingWindow
	if startRaw == "" || endRaw == "" {
		return window, nil
	}
	start, err := parseTime(startRaw)
	if err != nil {
		return window, appErrors.Clone(appErrors.ErrValidation, "startDate must be RFC 3339 or YYYY-MM-DD")
	}
	end, err := parseTime(endRaw)
	if err != nil {
		return window, appErrors.Clone(appErrors.ErrValidation, "endDate must be RFC 3339 or YYYY-MM-DD")
	}
	window.Start = &start
	window.End = &end
	return window, nil
}

// parseWeekStart resolves the calendar week anchor, defaulting to today.
func parseWeekStart(raw string) (time.Time, error) {
	if raw == "" {
		return time.Now(), nil
	}
	t, err := parseTime(raw)
	if err != nil {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "startDate must be RFC 3339 or YYYY-MM-DD")
	}
	return t, nil
}
