package store

import (
	"context"
	"encoding/json"
	"fmt"

	"hotel-frontdesk/models"
)

const (
	GuestsKey      = "frontdesk-guests"
	StaysKey       = "frontdesk-stays"
	RoomsKey       = "frontdesk-rooms"
	UsersKey       = "frontdesk-users"
	PreferencesKey = "frontdesk-preferences"
)

// Store exposes the typed collections over one KV backend.
type Store struct {
	kv KV
}

func New(kv KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) Guests() Table[models.Guest, models.GuestID] {
	return Table[models.Guest, models.GuestID]{
		kv:  s.kv,
		key: GuestsKey,
		id:  func(g models.Guest) models.GuestID { return g.ID },
	}
}

func (s *Store) Stays() Table[models.Stay, string] {
	return Table[models.Stay, string]{
		kv:  s.kv,
		key: StaysKey,
		id:  func(st models.Stay) string { return st.ID },
	}
}

// Rooms seeds models.DefaultRooms on the first read of an empty store.
func (s *Store) Rooms() Table[models.Room, models.RoomNumber] {
	return Table[models.Room, models.RoomNumber]{
		kv:   s.kv,
		key:  RoomsKey,
		id:   func(r models.Room) models.RoomNumber { return r.RoomNumber },
		seed: models.DefaultRooms,
	}
}

func (s *Store) Users() Table[models.User, string] {
	return Table[models.User, string]{
		kv:  s.kv,
		key: UsersKey,
		id:  func(u models.User) string { return u.Email },
	}
}

// Preferences is a single object rather than a collection.
func (s *Store) Preferences(ctx context.Context) (models.Preferences, error) {
	var prefs models.Preferences
	raw, found, err := s.kv.Get(ctx, PreferencesKey)
	if err != nil {
		return prefs, fmt.Errorf("load %s: %w", PreferencesKey, err)
	}
	if !found {
		return prefs, nil
	}
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return prefs, fmt.Errorf("decode %s: %w", PreferencesKey, err)
	}
	return prefs, nil
}

func (s *Store) SavePreferences(ctx context.Context, prefs models.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", PreferencesKey, err)
	}
	if err := s.kv.Set(ctx, PreferencesKey, raw); err != nil {
		return fmt.Errorf("save %s: %w", PreferencesKey, err)
	}
	return nil
}

// Tx runs fn against a Store whose writes commit together. If fn returns an
// error nothing it wrote is kept.
func (s *Store) Tx(ctx context.Context, fn func(tx *Store) error) error {
	return s.kv.Atomic(ctx, func(kv KV) error {
		return fn(&Store{kv: kv})
	})
}
