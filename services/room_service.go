package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"

	"github.com/sirupsen/logrus"
)

type RoomService struct {
	store *store.Store
	log   *logrus.Logger
}

func NewRoomService(st *store.Store, log *logrus.Logger) *RoomService {
	return &RoomService{store: st, log: log}
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	return s.store.Rooms().List(ctx)
}

// ListByStatus returns every room when status is blank.
func (s *RoomService) ListByStatus(ctx context.Context, status models.RoomStatus) ([]models.Room, error) {
	rooms, err := s.store.Rooms().List(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return rooms, nil
	}
	out := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

// Available is what the check-in form offers.
func (s *RoomService) Available(ctx context.Context) ([]models.Room, error) {
	return s.ListByStatus(ctx, models.RoomAvailable)
}

func (s *RoomService) Get(ctx context.Context, number models.RoomNumber) (models.Room, error) {
	room, found, err := s.store.Rooms().Get(ctx, number)
	if err != nil {
		return models.Room{}, err
	}
	if !found {
		return models.Room{}, ErrRoomNotFound
	}
	return room, nil
}

// Save upserts by room number.
func (s *RoomService) Save(ctx context.Context, room models.Room) (models.Room, error) {
	room.RoomNumber = models.RoomNumber(strings.TrimSpace(string(room.RoomNumber)))
	if room.Type == "" {
		room.Type = models.RoomDouble
	}
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	if ve := validateStruct(room); ve != nil {
		return models.Room{}, ve
	}

	if err := s.store.Rooms().Upsert(ctx, room); err != nil {
		return models.Room{}, fmt.Errorf("save room %s: %w", room.RoomNumber, err)
	}
	s.log.Infof("🛏️ RoomService.Save ok: room=%s status=%s", room.RoomNumber, room.Status)
	return room, nil
}

// SetStatus flips one room, e.g. into Maintenance. It does not look at stays.
func (s *RoomService) SetStatus(ctx context.Context, number models.RoomNumber, status models.RoomStatus) (models.Room, error) {
	candidate := models.Room{RoomNumber: number, Type: models.RoomDouble, Status: status}
	if ve := validateStruct(candidate); ve != nil {
		return models.Room{}, ve
	}

	var updated models.Room
	err := s.store.Tx(ctx, func(tx *store.Store) error {
		room, found, err := tx.Rooms().Get(ctx, number)
		if err != nil {
			return err
		}
		if !found {
			return ErrRoomNotFound
		}
		room.Status = status
		updated = room
		return tx.Rooms().Upsert(ctx, room)
	})
	if err != nil {
		return models.Room{}, err
	}
	s.log.Infof("🛏️ RoomService.SetStatus room=%s -> %s", number, status)
	return updated, nil
}
