package services

import (
	"context"
	"math"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"

	"github.com/sirupsen/logrus"
)

const DefaultRecentLimit = 5

type DashboardStats struct {
	TotalGuests   int     `json:"totalGuests"`
	ActiveStays   int     `json:"activeStays"`
	Revenue       float64 `json:"revenue"`
	OccupancyRate int     `json:"occupancyRate"`
}

type RoomOccupancy struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
	Rate        int `json:"rate"`
}

type DashboardService struct {
	store *store.Store
	stays *StayService
	log   *logrus.Logger
}

func NewDashboardService(st *store.Store, stays *StayService, log *logrus.Logger) *DashboardService {
	return &DashboardService{store: st, stays: stays, log: log}
}

// OccupancyRate is round(occupied / total * 100), and 0 without rooms.
func OccupancyRate(occupied, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(occupied) / float64(total) * 100))
}

// Stats: revenue is lifetime, the sum over every stay in any status.
func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	guests, err := s.store.Guests().List(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	stays, err := s.store.Stays().List(ctx)
	if err != nil {
		return DashboardStats{}, err
	}
	occ, err := s.RoomOccupancy(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{TotalGuests: len(guests), OccupancyRate: occ.Rate}
	for _, st := range stays {
		if st.Status == models.StayActive {
			stats.ActiveStays++
		}
		stats.Revenue += st.TotalAmount
	}
	return stats, nil
}

func (s *DashboardService) RoomOccupancy(ctx context.Context) (RoomOccupancy, error) {
	rooms, err := s.store.Rooms().List(ctx)
	if err != nil {
		return RoomOccupancy{}, err
	}

	occ := RoomOccupancy{Total: len(rooms)}
	for _, r := range rooms {
		switch r.Status {
		case models.RoomAvailable:
			occ.Available++
		case models.RoomOccupied:
			occ.Occupied++
		case models.RoomMaintenance:
			occ.Maintenance++
		}
	}
	occ.Rate = OccupancyRate(occ.Occupied, occ.Total)
	return occ, nil
}

// RecentCheckIns returns the newest active stays with their guests.
func (s *DashboardService) RecentCheckIns(ctx context.Context, limit int) ([]models.StayWithGuest, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	active, err := s.stays.Records(ctx, StayFilter{Status: FilterActive})
	if err != nil {
		return nil, err
	}
	if len(active) > limit {
		active = active[:limit]
	}
	return active, nil
}
