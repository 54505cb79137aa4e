package routes

import (
	"net/http"
	"strings"
	"time"

	"hotel-frontdesk/controllers"
	"hotel-frontdesk/metrics"
	"hotel-frontdesk/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Controllers is everything the router dispatches to.
type Controllers struct {
	Auth          *controllers.AuthController
	Guests        *controllers.GuestController
	Rooms         *controllers.RoomController
	Stays         *controllers.StayController
	Dashboard     *controllers.DashboardController
	Settings      *controllers.SettingsController
	Notifications *controllers.NotificationController
}

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires middleware and the route table. m may be nil.
func SetupRouter(ctl Controllers, auth middleware.Authenticator, m *metrics.Metrics, corsOrigins string, log *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(log), middleware.Logger(log))
	if m != nil {
		r.Use(m.Middleware())
	}

	origins := parseCorsOrigins(corsOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	api := r.Group("/api")
	api.Use(middleware.RequireAuth(auth, "/api/auth/"))
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", ctl.Auth.Login)
			authRoutes.POST("/register", ctl.Auth.Register)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", ctl.Guests.GetGuests)
			guests.POST("", ctl.Guests.CreateGuest)
			guests.GET("/:id", ctl.Guests.GetGuestByID)
			guests.PUT("/:id", ctl.Guests.UpdateGuest)
			guests.DELETE("/:id", ctl.Guests.DeleteGuest)
			guests.GET("/:id/stays", ctl.Guests.GetGuestStays)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			rooms.POST("", ctl.Rooms.SaveRoom)
			rooms.GET("/:roomNumber", ctl.Rooms.GetRoom)
			rooms.PATCH("/:roomNumber/status", ctl.Rooms.UpdateRoomStatus)
		}

		api.POST("/checkin", ctl.Stays.CheckIn)
		api.POST("/checkout", ctl.Stays.CheckOut)

		stays := api.Group("/stays")
		{
			stays.GET("", ctl.Stays.GetStays)
			// static segments before /:id
			stays.GET("/active", ctl.Stays.GetActiveStays)
			stays.GET("/export", ctl.Stays.ExportStays)
			stays.GET("/:id", ctl.Stays.GetStay)
			stays.DELETE("", ctl.Stays.ClearStays)
		}

		dashboard := api.Group("/dashboard")
		{
			dashboard.GET("", ctl.Dashboard.GetStats)
			dashboard.GET("/occupancy", ctl.Dashboard.GetOccupancy)
			dashboard.GET("/recent", ctl.Dashboard.GetRecent)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/preferences", ctl.Settings.GetPreferences)
			settings.PUT("/preferences", ctl.Settings.UpdatePreferences)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", ctl.Notifications.GetNotifications)
			notifications.DELETE("", ctl.Notifications.ClearNotifications)
			notifications.GET("/ws", ctl.Notifications.Stream)
		}
	}

	return r
}
