package controllers

import (
	"net/http"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SettingsController struct {
	SettingsSvc *services.SettingsService
	log         *logrus.Logger
}

func NewSettingsController(settings *services.SettingsService, log *logrus.Logger) *SettingsController {
	return &SettingsController{SettingsSvc: settings, log: log}
}

// GET /api/settings/preferences
func (sc *SettingsController) GetPreferences(c *gin.Context) {
	prefs, err := sc.SettingsSvc.Preferences(c.Request.Context())
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, prefs)
}

// PUT /api/settings/preferences
func (sc *SettingsController) UpdatePreferences(c *gin.Context) {
	var prefs models.Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		badPayload(c, err)
		return
	}

	saved, err := sc.SettingsSvc.SavePreferences(c.Request.Context(), prefs)
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, saved)
}
