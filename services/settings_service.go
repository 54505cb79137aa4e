package services

import (
	"context"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"

	"github.com/sirupsen/logrus"
)

// SettingsService holds the front-desk display preferences.
type SettingsService struct {
	store *store.Store
	log   *logrus.Logger
}

func NewSettingsService(st *store.Store, log *logrus.Logger) *SettingsService {
	return &SettingsService{store: st, log: log}
}

func (s *SettingsService) Preferences(ctx context.Context) (models.Preferences, error) {
	return s.store.Preferences(ctx)
}

func (s *SettingsService) SavePreferences(ctx context.Context, prefs models.Preferences) (models.Preferences, error) {
	if err := s.store.SavePreferences(ctx, prefs); err != nil {
		return models.Preferences{}, err
	}
	s.log.Infof("⚙️ SettingsService.SavePreferences darkMode=%t", prefs.DarkMode)
	return prefs, nil
}
