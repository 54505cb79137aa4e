package controllers

import (
	"net/http"
	"strings"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// --- Controller ---
type GuestController struct {
	GuestSvc *services.GuestService
	StaySvc  *services.StayService
	log      *logrus.Logger
}

func NewGuestController(guests *services.GuestService, stays *services.StayService, log *logrus.Logger) *GuestController {
	return &GuestController{GuestSvc: guests, StaySvc: stays, log: log}
}

// ----------------------------------------------------
// GET /api/guests?q=
// ----------------------------------------------------
func (gc *GuestController) GetGuests(c *gin.Context) {
	var (
		guests []models.Guest
		err    error
	)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		guests, err = gc.GuestSvc.Search(c.Request.Context(), q)
	} else {
		guests, err = gc.GuestSvc.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, gc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

// GET /api/guests/:id
func (gc *GuestController) GetGuestByID(c *gin.Context) {
	guest, err := gc.GuestSvc.Get(c.Request.Context(), models.GuestID(c.Param("id")))
	if err != nil {
		respondError(c, gc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

// GET /api/guests/:id/stays
func (gc *GuestController) GetGuestStays(c *gin.Context) {
	stays, err := gc.StaySvc.StaysForGuest(c.Request.Context(), models.GuestID(c.Param("id")))
	if err != nil {
		respondError(c, gc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stays)
}

// ----------------------------------------------------
// POST /api/guests
// ----------------------------------------------------
func (gc *GuestController) CreateGuest(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		badPayload(c, err)
		return
	}

	saved, err := gc.GuestSvc.Save(c.Request.Context(), guest)
	if err != nil {
		respondError(c, gc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, saved)
}

// PUT /api/guests/:id
func (gc *GuestController) UpdateGuest(c *gin.Context) {
	var guest models.Guest
	if err := c.ShouldBindJSON(&guest); err != nil {
		badPayload(c, err)
		return
	}

	id := models.GuestID(c.Param("id"))
	if _, err := gc.GuestSvc.Get(c.Request.Context(), id); err != nil {
		respondError(c, gc.log, err)
		return
	}
	guest.ID = id

	saved, err := gc.GuestSvc.Save(c.Request.Context(), guest)
	if err != nil {
		respondError(c, gc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, saved)
}

// DELETE /api/guests/:id. Stays that point at the guest are kept.
func (gc *GuestController) DeleteGuest(c *gin.Context) {
	if err := gc.GuestSvc.Delete(c.Request.Context(), models.GuestID(c.Param("id"))); err != nil {
		respondError(c, gc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
