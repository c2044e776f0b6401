package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/MasaoAsano/roomRSV/internal/models"
	appErrors "github.com/MasaoAsano/roomRSV/pkg/errors"
	"github.com/MasaoAsano/roomRSV/pkg/export"
)

const (
	calendarDays    = 7
	slotWidth       = SlotGranularityMin * time.Minute
	slotTimeLayout  = "15:04"
	calendarDateFmt = "2006-01-02"
)

type intersectingBookingLister interface {
	ListIntersecting(ctx context.Context, roomID string, start, end time.Time) ([]models.Booking, error)
}

// CalendarService materializes the weekly availability grid for a room and
// renders it for export.
type CalendarService struct {
	rooms        roomFinder
	bookings     intersectingBookingLister
	cache        *CacheService
	csv          *export.CSVExporter
	pdf          *export.PDFExporter
	dayStartHour int
	dayEndHour   int
	logger       *zap.Logger
}

// NewCalendarService instantiates CalendarService. The grid runs from
// dayStartHour (inclusive) to dayEndHour (exclusive) in 15-minute slots;
// the defaults render business hours 09:00 through 17:45.
func NewCalendarService(rooms roomFinder, bookings intersectingBookingLister, cache *CacheService, dayStartHour, dayEndHour int, logger *zap.Logger) *CalendarService {
	if dayStartHour < 0 || dayStartHour > 23 {
		dayStartHour = 9
	}
	if dayEndHour <= dayStartHour || dayEndHour > 24 {
		dayEndHour = 18
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{
		rooms:        rooms,
		bookings:     bookings,
		cache:        cache,
		csv:          export.NewCSVExporter(),
		pdf:          export.NewPDFExporter(),
		dayStartHour: dayStartHour,
		dayEndHour:   dayEndHour,
		logger:       logger,
	}
}

// BuildWeek produces the seven-day slot grid for the room starting at
// weekStart's date. Each slot is booked iff its own 15-minute interval
// overlaps a stored booking; booked slots carry the first match's metadata.
func (s *CalendarService) BuildWeek(ctx context.Context, roomID string, weekStart time.Time) (*models.CalendarData, error) {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}

	dayStart := time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	weekEnd := dayStart.AddDate(0, 0, calendarDays-1)

	cacheKey := fmt.Sprintf("calendar:%s:%s", roomID, dayStart.Format(calendarDateFmt))
	if s.cache.Enabled() {
		var cached models.CalendarData
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	bookings, err := s.bookings.ListIntersecting(ctx, roomID, dayStart, dayStart.AddDate(0, 0, calendarDays))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings for calendar")
	}

	data := &models.CalendarData{
		Room:          *room,
		WeekStartDate: dayStart.Format(calendarDateFmt),
		WeekEndDate:   weekEnd.Format(calendarDateFmt),
		Days:          make([]models.CalendarDay, 0, calendarDays),
	}

	for day := 0; day < calendarDays; day++ {
		date := dayStart.AddDate(0, 0, day)
		data.Days = append(data.Days, models.CalendarDay{
			Date:      date.Format(calendarDateFmt),
			DayOfWeek: date.Weekday().String(),
			Slots:     s.buildDaySlots(date, bookings),
		})
	}

	if s.cache.Enabled() {
		_ = s.cache.Set(ctx, cacheKey, data, 0)
	}
	return data, nil
}

func (s *CalendarService) buildDaySlots(date time.Time, bookings []models.Booking) []models.CalendarSlot {
	slotsPerDay := (s.dayEndHour - s.dayStartHour) * int(time.Hour/slotWidth)
	slots := make([]models.CalendarSlot, 0, slotsPerDay)

	slotStart := time.Date(date.Year(), date.Month(), date.Day(), s.dayStartHour, 0, 0, 0, date.Location())
	dayEnd := time.Date(date.Year(), date.Month(), date.Day(), s.dayEndHour, 0, 0, 0, date.Location())

	for ; slotStart.Before(dayEnd); slotStart = slotStart.Add(slotWidth) {
		slot := models.CalendarSlot{TimeSlot: slotStart.Format(slotTimeLayout)}
		slotEnd := slotStart.Add(slotWidth)
		for _, b := range bookings {
			if overlaps(b.StartTime, b.EndTime, slotStart, slotEnd) {
				slot.IsBooked = true
				slot.BookingID = b.ID
				slot.BookerName = b.BookerName
				slot.Purpose = b.Purpose
				break
			}
		}
		slots = append(slots, slot)
	}
	return slots
}

// ExportWeek renders the weekly grid as a downloadable document. Supported
// formats are "csv" and "pdf".
func (s *CalendarService) ExportWeek(ctx context.Context, roomID string, weekStart time.Time, format string) ([]byte, string, error) {
	data, err := s.BuildWeek(ctx, roomID, weekStart)
	if err != nil {
		return nil, "", err
	}

	dataset := calendarDataset(data)
	title := fmt.Sprintf("%s %s - %s", data.Room.Name, data.WeekStartDate, data.WeekEndDate)

	switch format {
	case "csv":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render calendar csv")
		}
		return payload, "text/csv", nil
	case "", "pdf":
		payload, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render calendar pdf")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

// calendarDataset flattens the grid into a table: one row per time slot,
// one column per day, cells holding the booking purpose when occupied.
func calendarDataset(data *models.CalendarData) export.Dataset {
	headers := make([]string, 0, calendarDays+1)
	headers = append(headers, "Time")
	for _, day := range data.Days {
		headers = append(headers, day.Date)
	}

	var rows []map[string]string
	if len(data.Days) > 0 {
		for i, slot := range data.Days[0].Slots {
			row := map[string]string{"Time": slot.TimeSlot}
			for _, day := range data.Days {
				cell := ""
				if i < len(day.Slots) && day.Slots[i].IsBooked {
					cell = fmt.Sprintf("%s (%s)", day.Slots[i].Purpose, day.Slots[i].BookerName)
				}
				row[day.Date] = cell
			}
			rows = append(rows, row)
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
