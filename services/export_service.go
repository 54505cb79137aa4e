package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"hotel-frontdesk/models"

	"github.com/sirupsen/logrus"
)

const notAvailable = "N/A"

var csvHeader = []string{"ID", "Guest Name", "Room", "Check-in", "Check-out", "Duration", "Amount", "Status"}

// Archiver keeps a copy of every export somewhere outside the response.
type Archiver interface {
	Archive(ctx context.Context, name string, body []byte) error
}

type Export struct {
	FileName string
	Content  []byte
	Rows     int
}

type ExportService struct {
	stays    *StayService
	archiver Archiver
	log      *logrus.Logger
	now      func() time.Time
}

// NewExportService: archiver may be nil.
func NewExportService(stays *StayService, archiver Archiver, log *logrus.Logger) *ExportService {
	return &ExportService{stays: stays, archiver: archiver, log: log, now: time.Now}
}

// ExportFileName is stay_records_<date>.csv for the given day.
func ExportFileName(day time.Time) string {
	return "stay_records_" + day.Format(time.DateOnly) + ".csv"
}

// StaysCSV renders records as comma joined lines. Fields are not quoted, so
// a comma inside a guest name shifts the columns of that row.
func StaysCSV(records []models.StayWithGuest) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, r := range records {
		checkOut, duration := notAvailable, notAvailable
		if r.CheckOutDate != nil {
			checkOut = r.CheckOutDate.Format(time.DateOnly)
			duration = strconv.Itoa(models.StayDuration(r.CheckInDate, *r.CheckOutDate))
		}
		lines = append(lines, strings.Join([]string{
			r.ID,
			r.GuestName,
			string(r.RoomNumber),
			r.CheckInDate.Format(time.DateOnly),
			checkOut,
			duration,
			strconv.FormatFloat(r.TotalAmount, 'f', -1, 64),
			string(r.Status),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

// ExportStays renders the filtered records list and archives a copy when an
// archiver is configured. Archive failures are logged only.
func (s *ExportService) ExportStays(ctx context.Context, f StayFilter) (Export, error) {
	records, err := s.stays.Records(ctx, f)
	if err != nil {
		return Export{}, err
	}

	exp := Export{
		FileName: ExportFileName(s.now().UTC()),
		Content:  []byte(StaysCSV(records)),
		Rows:     len(records),
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, exp.FileName, exp.Content); err != nil {
			s.log.Errorf("❌ ExportService.ExportStays archive %s failed: %v", exp.FileName, err)
		} else {
			s.log.Infof("📦 archived %s (%d rows)", exp.FileName, exp.Rows)
		}
	}
	return exp, nil
}
