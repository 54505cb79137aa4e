package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel-frontdesk/controllers"
	"hotel-frontdesk/metrics"
	"hotel-frontdesk/notify"
	"hotel-frontdesk/services"
	"hotel-frontdesk/store"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testApp struct {
	t      *testing.T
	router *gin.Engine
	center *notify.Center
	token  string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	st := store.New(store.NewMemoryKV())
	center := notify.NewCenter()
	t.Cleanup(center.Close)
	m := metrics.New()

	guests := services.NewGuestService(st, log, center, m)
	stays := services.NewStayService(st, log, center, m)
	rooms := services.NewRoomService(st, log)
	auth := services.NewAuthService(st, utils.NewTokenService("test-secret", time.Hour), log)

	router := SetupRouter(Controllers{
		Auth:          controllers.NewAuthController(auth, log),
		Guests:        controllers.NewGuestController(guests, stays, log),
		Rooms:         controllers.NewRoomController(rooms, log),
		Stays:         controllers.NewStayController(stays, services.NewExportService(stays, nil, log), log),
		Dashboard:     controllers.NewDashboardController(services.NewDashboardService(st, stays, log), log),
		Settings:      controllers.NewSettingsController(services.NewSettingsService(st, log), log),
		Notifications: controllers.NewNotificationController(center, log),
	}, auth, m, "", log)

	app := &testApp{t: t, router: router, center: center}
	var session struct {
		Token string `json:"token"`
	}
	app.decode(app.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    services.DefaultAdminEmail,
		"password": services.DefaultAdminPassword,
	}), http.StatusOK, &session)
	require.NotEmpty(t, session.Token)
	app.token = session.Token
	return app
}

func (a *testApp) do(method, path string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// decode checks the status and unwraps data into out.
func (a *testApp) decode(w *httptest.ResponseRecorder, status int, out any) envelope {
	a.t.Helper()
	require.Equal(a.t, status, w.Code, w.Body.String())
	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env))
	if out != nil {
		require.NoError(a.t, json.Unmarshal(env.Data, out))
	}
	return env
}

func (a *testApp) createGuest(name string) string {
	a.t.Helper()
	var guest struct {
		ID string `json:"id"`
	}
	a.decode(a.do(http.MethodPost, "/api/guests", map[string]string{
		"name":     name,
		"phone":    "9876543210",
		"idType":   "Passport",
		"idNumber": "P1234567",
	}), http.StatusCreated, &guest)
	return guest.ID
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	app := newTestApp(t)
	app.token = ""

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/health", nil).Code)
	w := app.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "frontdesk_http_requests_total")

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/api/guests", nil).Code)
}

func TestLoginFailure(t *testing.T) {
	app := newTestApp(t)
	env := app.decode(app.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": services.DefaultAdminEmail, "password": "nope",
	}), http.StatusUnauthorized, nil)
	assert.False(t, env.Success)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

func TestGuestValidationEnvelope(t *testing.T) {
	app := newTestApp(t)
	env := app.decode(app.do(http.MethodPost, "/api/guests", map[string]string{
		"name": "", "phone": "123",
	}), http.StatusBadRequest, nil)

	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "Name is required", env.Error.Details["name"])
	assert.Equal(t, "Phone must be 10 digits", env.Error.Details["phone"])
}

func TestCheckInCheckOutFlow(t *testing.T) {
	app := newTestApp(t)
	guestID := app.createGuest("Asha")

	var stay struct {
		ID          string  `json:"id"`
		Status      string  `json:"status"`
		TotalAmount float64 `json:"totalAmount"`
	}
	app.decode(app.do(http.MethodPost, "/api/checkin", map[string]any{
		"guestId": guestID, "roomNumber": "101", "checkInDate": "2024-01-01",
	}), http.StatusCreated, &stay)
	assert.Equal(t, "Active", stay.Status)
	assert.Equal(t, 2000.0, stay.TotalAmount)

	var room struct {
		Status string `json:"status"`
	}
	app.decode(app.do(http.MethodGet, "/api/rooms/101", nil), http.StatusOK, &room)
	assert.Equal(t, "Occupied", room.Status)

	var stats services.DashboardStats
	app.decode(app.do(http.MethodGet, "/api/dashboard", nil), http.StatusOK, &stats)
	assert.Equal(t, 1, stats.ActiveStays)
	assert.Equal(t, 13, stats.OccupancyRate)

	env := app.decode(app.do(http.MethodPost, "/api/checkout", map[string]any{
		"stayId": stay.ID, "checkOutDate": "2023-12-31",
	}), http.StatusBadRequest, nil)
	assert.Equal(t, "Check-out date cannot be before check-in date", env.Error.Details["checkOutDate"])

	app.decode(app.do(http.MethodPost, "/api/checkout", map[string]any{
		"stayId": stay.ID, "checkOutDate": "2024-01-03",
	}), http.StatusOK, &stay)
	assert.Equal(t, "Completed", stay.Status)

	app.decode(app.do(http.MethodGet, "/api/rooms/101", nil), http.StatusOK, &room)
	assert.Equal(t, "Available", room.Status)

	env = app.decode(app.do(http.MethodPost, "/api/checkout", map[string]any{
		"stayId": stay.ID, "checkOutDate": "2024-01-04",
	}), http.StatusConflict, nil)
	assert.Equal(t, "STAY_NOT_ACTIVE", env.Error.Code)

	var joined struct {
		GuestName string `json:"guestName"`
		Duration  *int   `json:"duration"`
	}
	app.decode(app.do(http.MethodGet, "/api/stays/"+stay.ID, nil), http.StatusOK, &joined)
	assert.Equal(t, "Asha", joined.GuestName)
	require.NotNil(t, joined.Duration)
	assert.Equal(t, 2, *joined.Duration)

	var history []map[string]any
	app.decode(app.do(http.MethodGet, "/api/guests/"+guestID+"/stays", nil), http.StatusOK, &history)
	assert.Len(t, history, 1)

	var feed []map[string]any
	app.decode(app.do(http.MethodGet, "/api/notifications", nil), http.StatusOK, &feed)
	require.Len(t, feed, 3)
	assert.Equal(t, "Asha checked out of Room 101 after 2 night(s)", feed[0]["message"])
}

func TestCheckInBadDate(t *testing.T) {
	app := newTestApp(t)
	env := app.decode(app.do(http.MethodPost, "/api/checkin", map[string]any{
		"guestId": "g1", "roomNumber": "101", "checkInDate": "01/02/2024",
	}), http.StatusBadRequest, nil)
	assert.Equal(t, map[string]string{"checkInDate": "Date must be YYYY-MM-DD"}, env.Error.Details)

	var room struct {
		Status string `json:"status"`
	}
	app.decode(app.do(http.MethodGet, "/api/rooms/101", nil), http.StatusOK, &room)
	assert.Equal(t, "Available", room.Status)
}

func TestBadDateReportedWithOtherMissingFields(t *testing.T) {
	app := newTestApp(t)
	env := app.decode(app.do(http.MethodPost, "/api/checkin", map[string]any{
		"guestId": "", "roomNumber": "", "checkInDate": "tomorrow",
	}), http.StatusBadRequest, nil)
	assert.Equal(t, "Please select or create a guest", env.Error.Details["guest"])
	assert.Equal(t, "Please select a room", env.Error.Details["roomNumber"])
	assert.Equal(t, "Date must be YYYY-MM-DD", env.Error.Details["checkInDate"])

	env = app.decode(app.do(http.MethodPost, "/api/checkout", map[string]any{
		"stayId": "", "checkOutDate": "31-12-2024",
	}), http.StatusBadRequest, nil)
	assert.Equal(t, "Please select an active stay", env.Error.Details["stay"])
	assert.Equal(t, "Date must be YYYY-MM-DD", env.Error.Details["checkOutDate"])
}

func TestStaysListExportAndClear(t *testing.T) {
	app := newTestApp(t)
	guestID := app.createGuest("Ravi")
	app.decode(app.do(http.MethodPost, "/api/checkin", map[string]any{
		"guestId": guestID, "roomNumber": "102", "checkInDate": "2024-02-01",
	}), http.StatusCreated, nil)

	var records []map[string]any
	app.decode(app.do(http.MethodGet, "/api/stays?status=active&q=ravi", nil), http.StatusOK, &records)
	require.Len(t, records, 1)
	assert.Equal(t, "Ravi", records[0]["guestName"])

	app.decode(app.do(http.MethodGet, "/api/stays?status=bogus", nil), http.StatusBadRequest, nil)

	w := app.do(http.MethodGet, "/api/stays/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "stay_records_")
	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "ID,Guest Name,Room,Check-in,Check-out,Duration,Amount,Status", lines[0])
	assert.Contains(t, lines[1], ",Ravi,102,2024-02-01,N/A,N/A,2000,Active")

	app.decode(app.do(http.MethodDelete, "/api/stays", nil), http.StatusOK, nil)
	app.decode(app.do(http.MethodGet, "/api/stays", nil), http.StatusOK, &records)
	assert.Empty(t, records)

	var room struct {
		Status string `json:"status"`
	}
	app.decode(app.do(http.MethodGet, "/api/rooms/102", nil), http.StatusOK, &room)
	assert.Equal(t, "Occupied", room.Status)
}

func TestDeletedGuestShowsUnknown(t *testing.T) {
	app := newTestApp(t)
	guestID := app.createGuest("Meera")
	var stay struct {
		ID string `json:"id"`
	}
	app.decode(app.do(http.MethodPost, "/api/checkin", map[string]any{
		"guestId": guestID, "roomNumber": "103", "checkInDate": "2024-03-01",
	}), http.StatusCreated, &stay)

	app.decode(app.do(http.MethodDelete, "/api/guests/"+guestID, nil), http.StatusOK, nil)
	app.decode(app.do(http.MethodGet, "/api/guests/"+guestID, nil), http.StatusNotFound, nil)

	var joined struct {
		GuestName string `json:"guestName"`
	}
	app.decode(app.do(http.MethodGet, "/api/stays/"+stay.ID, nil), http.StatusOK, &joined)
	assert.Equal(t, "Unknown", joined.GuestName)
}

func TestRoomsAndPreferences(t *testing.T) {
	app := newTestApp(t)

	var rooms []map[string]any
	app.decode(app.do(http.MethodGet, "/api/rooms?status=Available", nil), http.StatusOK, &rooms)
	assert.Len(t, rooms, 8)

	app.decode(app.do(http.MethodPatch, "/api/rooms/104/status", map[string]string{"status": "Maintenance"}), http.StatusOK, nil)
	app.decode(app.do(http.MethodPatch, "/api/rooms/999/status", map[string]string{"status": "Maintenance"}), http.StatusNotFound, nil)

	var occ services.RoomOccupancy
	app.decode(app.do(http.MethodGet, "/api/dashboard/occupancy", nil), http.StatusOK, &occ)
	assert.Equal(t, 1, occ.Maintenance)
	assert.Equal(t, 7, occ.Available)

	var prefs struct {
		DarkMode bool `json:"darkMode"`
	}
	app.decode(app.do(http.MethodPut, "/api/settings/preferences", map[string]bool{"darkMode": true}), http.StatusOK, nil)
	app.decode(app.do(http.MethodGet, "/api/settings/preferences", nil), http.StatusOK, &prefs)
	assert.True(t, prefs.DarkMode)
}

func TestRegisterConflict(t *testing.T) {
	app := newTestApp(t)
	body := map[string]string{"email": "desk@hotel.com", "password": "s3cret"}
	app.decode(app.do(http.MethodPost, "/api/auth/register", body), http.StatusCreated, nil)
	env := app.decode(app.do(http.MethodPost, "/api/auth/register", body), http.StatusConflict, nil)
	assert.Equal(t, "USER_EXISTS", env.Error.Code)
}

func TestRegisterIgnoresRequestedRole(t *testing.T) {
	app := newTestApp(t)
	var user struct {
		Role string `json:"role"`
	}
	app.decode(app.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "intruder@hotel.com", "password": "x", "role": "owner",
	}), http.StatusCreated, &user)
	assert.Equal(t, "staff", user.Role)
}

func TestNotificationStream(t *testing.T) {
	app := newTestApp(t)
	srv := httptest.NewServer(app.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/notifications/ws?token=" + app.token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var list []map[string]any
	require.NoError(t, conn.ReadJSON(&list))
	assert.Empty(t, list)

	app.center.Add("Room 101 is ready")
	require.NoError(t, conn.ReadJSON(&list))
	require.Len(t, list, 1)
	assert.Equal(t, "Room 101 is ready", list[0]["message"])
}

func TestParseCorsOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, parseCorsOrigins(""))
	assert.Equal(t, []string{"*"}, parseCorsOrigins(" , "))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, parseCorsOrigins("http://a.test, http://b.test,"))
}
