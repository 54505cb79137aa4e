package services

import (
	"context"
	"io"
	"testing"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Add(message string) models.Notification {
	m.Called(message)
	return models.Notification{Message: message}
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) CheckedIn(room models.RoomNumber) { m.Called(room) }
func (m *mockRecorder) CheckedOut(room models.RoomNumber, nights int) { m.Called(room, nights) }
func (m *mockRecorder) GuestSaved(created bool) { m.Called(created) }

type fixture struct {
	ctx    context.Context
	store  *store.Store
	guests *GuestService
	stays  *StayService
	rooms  *RoomService
	dash   *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.New(store.NewMemoryKV())
	log := quietLogger()
	stays := NewStayService(st, log, nil, nil)
	return &fixture{
		ctx:    context.Background(),
		store:  st,
		guests: NewGuestService(st, log, nil, nil),
		stays:  stays,
		rooms:  NewRoomService(st, log),
		dash:   NewDashboardService(st, stays, log),
	}
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func validGuest(name string) models.Guest {
	return models.Guest{
		Name:     name,
		Phone:    "9876543210",
		IDType:   models.IDTypePassport,
		IDNumber: "P1234567",
	}
}

func (f *fixture) addGuest(t *testing.T, name string) models.Guest {
	t.Helper()
	g, err := f.guests.Save(f.ctx, validGuest(name))
	require.NoError(t, err)
	return g
}

func (f *fixture) checkIn(t *testing.T, guest models.GuestID, room models.RoomNumber, day string) models.Stay {
	t.Helper()
	stay, err := f.stays.CheckIn(f.ctx, CheckInRequest{GuestID: guest, RoomNumber: room, CheckInDate: date(t, day)})
	require.NoError(t, err)
	return stay
}

func (f *fixture) roomStatus(t *testing.T, number models.RoomNumber) models.RoomStatus {
	t.Helper()
	room, err := f.rooms.Get(f.ctx, number)
	require.NoError(t, err)
	return room.Status
}
