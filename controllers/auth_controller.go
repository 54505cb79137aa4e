package controllers

import (
	"net/http"

	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	Auth *services.AuthService
	log  *logrus.Logger
}

func NewAuthController(auth *services.AuthService, log *logrus.Logger) *AuthController {
	return &AuthController{Auth: auth, log: log}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerPayload has no role: self-registered accounts are always staff.
type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}

	session, err := ac.Auth.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, session)
}

// POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}

	user, err := ac.Auth.Register(c.Request.Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		respondError(c, ac.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, user)
}
