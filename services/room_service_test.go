package services

import (
	"testing"

	"hotel-frontdesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomAvailableAndSetStatus(t *testing.T) {
	f := newFixture(t)
	f.checkIn(t, "g1", "101", "2024-01-01")
	_, err := f.rooms.SetStatus(f.ctx, "102", models.RoomMaintenance)
	require.NoError(t, err)

	available, err := f.rooms.Available(f.ctx)
	require.NoError(t, err)
	assert.Len(t, available, 6)

	occupied, err := f.rooms.ListByStatus(f.ctx, models.RoomOccupied)
	require.NoError(t, err)
	require.Len(t, occupied, 1)
	assert.Equal(t, models.RoomNumber("101"), occupied[0].RoomNumber)

	_, err = f.rooms.SetStatus(f.ctx, "999", models.RoomAvailable)
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = f.rooms.SetStatus(f.ctx, "101", "Flooded")
	_, ok := IsValidation(err)
	assert.True(t, ok)
}

func TestRoomSave(t *testing.T) {
	f := newFixture(t)

	suite, err := f.rooms.Save(f.ctx, models.Room{RoomNumber: "201", Type: models.RoomSuite, Capacity: 4, PricePerNight: 6500})
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, suite.Status)

	rooms, err := f.rooms.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 9)

	stay := f.checkIn(t, "g1", "201", "2024-01-01")
	assert.Equal(t, 6500.0, stay.TotalAmount)

	_, err = f.rooms.Save(f.ctx, models.Room{RoomNumber: "", Type: "Penthouse"})
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "roomNumber")
	assert.Contains(t, ve.Fields, "type")

	_, err = f.rooms.Get(f.ctx, "404")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestPreferences(t *testing.T) {
	f := newFixture(t)
	settings := NewSettingsService(f.store, quietLogger())

	prefs, err := settings.Preferences(f.ctx)
	require.NoError(t, err)
	assert.False(t, prefs.DarkMode)

	_, err = settings.SavePreferences(f.ctx, models.Preferences{DarkMode: true})
	require.NoError(t, err)
	prefs, err = settings.Preferences(f.ctx)
	require.NoError(t, err)
	assert.True(t, prefs.DarkMode)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-10T00:00:00Z", d.Format("2006-01-02T15:04:05Z07:00"))

	d, err = ParseDate("2024-01-10T09:30:00+05:30")
	require.NoError(t, err)
	assert.Equal(t, 4, d.UTC().Hour())

	d, err = ParseDate("  ")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = ParseDate("10/01/2024")
	assert.Error(t, err)
}
