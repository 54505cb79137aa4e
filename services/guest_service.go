package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type GuestService struct {
	store    *store.Store
	log      *logrus.Logger
	notifier Notifier
	recorder Recorder
}

func NewGuestService(st *store.Store, log *logrus.Logger, notifier Notifier, recorder Recorder) *GuestService {
	return &GuestService{
		store:    st,
		log:      log,
		notifier: notifierOrNop(notifier),
		recorder: recorderOrNop(recorder),
	}
}

// normalizeGuest trims free text and fills the form defaults.
func normalizeGuest(g models.Guest) models.Guest {
	g.ID = models.GuestID(strings.TrimSpace(string(g.ID)))
	g.Name = strings.TrimSpace(g.Name)
	g.Phone = strings.TrimSpace(g.Phone)
	g.Email = strings.TrimSpace(g.Email)
	g.Address = strings.TrimSpace(g.Address)
	g.IDNumber = strings.TrimSpace(g.IDNumber)
	g.Notes = strings.TrimSpace(g.Notes)
	if g.Gender == "" {
		g.Gender = models.GenderMale
	}
	if g.IDType == "" {
		g.IDType = models.IDTypeAadhar
	}
	return g
}

// ValidateGuest applies the registration rules without saving.
func ValidateGuest(g models.Guest) error {
	if ve := validateStruct(normalizeGuest(g)); ve != nil {
		return ve
	}
	return nil
}

// ----------------------------------------------------
// Save: upsert by id; a blank id registers a new guest
// ----------------------------------------------------
func (s *GuestService) Save(ctx context.Context, guest models.Guest) (models.Guest, error) {
	s.log.Debugf("➡️ GuestService.Save incoming: id=%q name=%q", guest.ID, guest.Name)

	guest = normalizeGuest(guest)
	if ve := validateStruct(guest); ve != nil {
		s.log.Infof("⬅️ GuestService.Save rejected: %v", ve)
		return models.Guest{}, ve
	}

	created := guest.ID == ""
	if created {
		guest.ID = models.GuestID(uuid.NewString())
	}

	if err := s.store.Guests().Upsert(ctx, guest); err != nil {
		return models.Guest{}, fmt.Errorf("save guest %s: %w", guest.ID, err)
	}

	s.recorder.GuestSaved(created)
	if created {
		s.notifier.Add(fmt.Sprintf("New guest registered: %s", guest.Name))
	}
	s.log.Infof("⬅️ GuestService.Save ok: id=%s created=%t", guest.ID, created)
	return guest, nil
}

func (s *GuestService) Get(ctx context.Context, id models.GuestID) (models.Guest, error) {
	guest, found, err := s.store.Guests().Get(ctx, id)
	if err != nil {
		return models.Guest{}, err
	}
	if !found {
		return models.Guest{}, ErrGuestNotFound
	}
	return guest, nil
}

func (s *GuestService) List(ctx context.Context) ([]models.Guest, error) {
	return s.store.Guests().List(ctx)
}

// Search matches name or email case-insensitively, and phone or ID number as
// substrings. A blank term returns everyone.
func (s *GuestService) Search(ctx context.Context, term string) ([]models.Guest, error) {
	guests, err := s.store.Guests().List(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.TrimSpace(term)
	if term == "" {
		return guests, nil
	}
	lower := strings.ToLower(term)

	matched := make([]models.Guest, 0, len(guests))
	for _, g := range guests {
		if strings.Contains(strings.ToLower(g.Name), lower) ||
			strings.Contains(strings.ToLower(g.Email), lower) ||
			strings.Contains(g.Phone, term) ||
			strings.Contains(g.IDNumber, term) {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

// Delete removes the guest only. Stays that point at it are left as they are
// and render with the placeholder name afterwards.
func (s *GuestService) Delete(ctx context.Context, id models.GuestID) error {
	s.log.Infof("➡️ GuestService.Delete id=%s", id)
	if err := s.store.Guests().Delete(ctx, id); err != nil {
		return fmt.Errorf("delete guest %s: %w", id, err)
	}
	return nil
}
