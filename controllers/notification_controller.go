package controllers

import (
	"net/http"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/notify"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// any origin; RequireAuth has already checked the token
	CheckOrigin: func(r *http.Request) bool { return true },
}

type NotificationController struct {
	Center *notify.Center
	log    *logrus.Logger
}

func NewNotificationController(center *notify.Center, log *logrus.Logger) *NotificationController {
	return &NotificationController{Center: center, log: log}
}

// GET /api/notifications
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, nc.Center.List())
}

// DELETE /api/notifications
func (nc *NotificationController) ClearNotifications(c *gin.Context) {
	nc.Center.Clear()
	utils.JSONSuccess(c, http.StatusOK, []models.Notification{})
}

// ----------------------------------------------------
// GET /api/notifications/ws
// Pushes the whole list on connect and after every change.
// ----------------------------------------------------
func (nc *NotificationController) Stream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		nc.log.Warnf("⚠️ websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// only the latest list matters, so a full slot is replaced
	updates := make(chan []models.Notification, 1)
	unsubscribe := nc.Center.Subscribe(func(list []models.Notification) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- list:
		default:
		}
	})
	defer unsubscribe()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					nc.log.Infof("websocket read: %v", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case list := <-updates:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(list); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-nc.Center.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(wsWriteWait))
			return
		case <-closed:
			return
		}
	}
}
