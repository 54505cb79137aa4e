package controllers

import (
	"net/http"
	"strconv"

	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DashboardController struct {
	DashSvc *services.DashboardService
	log     *logrus.Logger
}

func NewDashboardController(dash *services.DashboardService, log *logrus.Logger) *DashboardController {
	return &DashboardController{DashSvc: dash, log: log}
}

// GET /api/dashboard
func (dc *DashboardController) GetStats(c *gin.Context) {
	stats, err := dc.DashSvc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, dc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}

// GET /api/dashboard/occupancy
func (dc *DashboardController) GetOccupancy(c *gin.Context) {
	occ, err := dc.DashSvc.RoomOccupancy(c.Request.Context())
	if err != nil {
		respondError(c, dc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, occ)
}

// GET /api/dashboard/recent?limit=5
func (dc *DashboardController) GetRecent(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(services.DefaultRecentLimit)))
	if err != nil || limit < 1 {
		respondError(c, dc.log, &services.ValidationError{Fields: map[string]string{"limit": "limit must be a positive number"}})
		return
	}

	recent, err := dc.DashSvc.RecentCheckIns(c.Request.Context(), limit)
	if err != nil {
		respondError(c, dc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, recent)
}
