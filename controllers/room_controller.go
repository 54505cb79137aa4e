package controllers

import (
	"net/http"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RoomController struct {
	RoomSvc *services.RoomService
	log     *logrus.Logger
}

func NewRoomController(rooms *services.RoomService, log *logrus.Logger) *RoomController {
	return &RoomController{RoomSvc: rooms, log: log}
}

type roomStatusPayload struct {
	Status models.RoomStatus `json:"status"`
}

// ----------------------------------------------------
// GET /api/rooms?status=Available
// ----------------------------------------------------
func (rc *RoomController) GetRooms(c *gin.Context) {
	var (
		rooms []models.Room
		err   error
	)
	if status := c.Query("status"); status != "" {
		rooms, err = rc.RoomSvc.ListByStatus(c.Request.Context(), models.RoomStatus(status))
	} else {
		rooms, err = rc.RoomSvc.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/rooms/:roomNumber
func (rc *RoomController) GetRoom(c *gin.Context) {
	room, err := rc.RoomSvc.Get(c.Request.Context(), models.RoomNumber(c.Param("roomNumber")))
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// ----------------------------------------------------
// POST /api/rooms (upsert by room number)
// ----------------------------------------------------
func (rc *RoomController) SaveRoom(c *gin.Context) {
	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		badPayload(c, err)
		return
	}

	saved, err := rc.RoomSvc.Save(c.Request.Context(), room)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, saved)
}

// PATCH /api/rooms/:roomNumber/status
func (rc *RoomController) UpdateRoomStatus(c *gin.Context) {
	var payload roomStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}

	room, err := rc.RoomSvc.SetStatus(c.Request.Context(), models.RoomNumber(c.Param("roomNumber")), payload.Status)
	if err != nil {
		respondError(c, rc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}
