package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps a service error onto the response envelope.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	if ve, ok := services.IsValidation(err); ok {
		utils.JSONErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please fix the highlighted fields", ve.Fields)
		return
	}

	switch {
	case errors.Is(err, services.ErrGuestNotFound),
		errors.Is(err, services.ErrStayNotFound),
		errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, strings.ToUpper(err.Error()), "Record not found")
	case errors.Is(err, services.ErrStayNotActive):
		utils.JSONError(c, http.StatusConflict, "STAY_NOT_ACTIVE", "Stay is already closed")
	case errors.Is(err, services.ErrUserExists):
		utils.JSONError(c, http.StatusConflict, "USER_EXISTS", "A user with this email already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.JSONError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	default:
		log.Errorf("❌ %s %s: %v", c.Request.Method, c.FullPath(), err)
		utils.JSONError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Something went wrong")
	}
}

func badPayload(c *gin.Context, err error) {
	utils.JSONErrorWithDetails(c, http.StatusBadRequest, "INVALID_PAYLOAD", "Invalid request payload", err.Error())
}

// parseDateField parses a form date and records a message under field when
// it is malformed.
func parseDateField(ve *services.ValidationError, field, value string) time.Time {
	t, err := services.ParseDate(value)
	if err != nil {
		if ve.Fields == nil {
			ve.Fields = map[string]string{}
		}
		ve.Fields[field] = "Date must be YYYY-MM-DD"
		return time.Time{}
	}
	return t
}

// invalidOrNil mirrors ValidationError.orNil for controllers.
func invalidOrNil(ve *services.ValidationError) error {
	if len(ve.Fields) == 0 {
		return nil
	}
	return ve
}

// mergeFieldErrors folds date parse failures into the service's own
// ValidationError so every bad field comes back in one response.
func mergeFieldErrors(ve *services.ValidationError, err error) error {
	if len(ve.Fields) == 0 {
		return err
	}
	if sve, ok := services.IsValidation(err); ok {
		for field, msg := range ve.Fields {
			sve.Fields[field] = msg
		}
		return sve
	}
	if err != nil {
		return err
	}
	return ve
}
