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

type StayController struct {
	StaySvc   *services.StayService
	ExportSvc *services.ExportService
	log       *logrus.Logger
}

func NewStayController(stays *services.StayService, exports *services.ExportService, log *logrus.Logger) *StayController {
	return &StayController{StaySvc: stays, ExportSvc: exports, log: log}
}

// Dates travel as YYYY-MM-DD (RFC 3339 also accepted).
type checkInPayload struct {
	GuestID       models.GuestID       `json:"guestId"`
	RoomNumber    models.RoomNumber    `json:"roomNumber"`
	CheckInDate   string               `json:"checkInDate"`
	Adults        *int                 `json:"adults"`
	Children      *int                 `json:"children"`
	TotalAmount   *float64             `json:"totalAmount"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
}

type checkOutPayload struct {
	StayID        string               `json:"stayId"`
	CheckOutDate  string               `json:"checkOutDate"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
}

// ----------------------------------------------------
// POST /api/checkin
// ----------------------------------------------------
func (sc *StayController) CheckIn(c *gin.Context) {
	var payload checkInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}

	ve := &services.ValidationError{}
	// a malformed date reaches the service as zero, so the service reports
	// the other fields and the date message replaces its "required" one
	checkIn := parseDateField(ve, "checkInDate", payload.CheckInDate)

	stay, err := sc.StaySvc.CheckIn(c.Request.Context(), services.CheckInRequest{
		GuestID:       payload.GuestID,
		RoomNumber:    payload.RoomNumber,
		CheckInDate:   checkIn,
		Adults:        payload.Adults,
		Children:      payload.Children,
		TotalAmount:   payload.TotalAmount,
		PaymentStatus: payload.PaymentStatus,
		PaymentMethod: payload.PaymentMethod,
	})
	if err = mergeFieldErrors(ve, err); err != nil {
		respondError(c, sc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, stay)
}

// ----------------------------------------------------
// POST /api/checkout
// ----------------------------------------------------
func (sc *StayController) CheckOut(c *gin.Context) {
	var payload checkOutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		badPayload(c, err)
		return
	}

	ve := &services.ValidationError{}
	checkOut := parseDateField(ve, "checkOutDate", payload.CheckOutDate)

	stay, err := sc.StaySvc.CheckOut(c.Request.Context(), services.CheckOutRequest{
		StayID:        payload.StayID,
		CheckOutDate:  checkOut,
		PaymentStatus: payload.PaymentStatus,
		PaymentMethod: payload.PaymentMethod,
	})
	if err = mergeFieldErrors(ve, err); err != nil {
		respondError(c, sc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stay)
}

// stayFilter reads status, from, to and q from the query string.
func stayFilter(c *gin.Context) (services.StayFilter, error) {
	f := services.StayFilter{Search: c.Query("q")}

	ve := &services.ValidationError{}
	switch status := services.StatusFilter(strings.ToLower(strings.TrimSpace(c.Query("status")))); status {
	case "":
		f.Status = services.FilterAll
	case services.FilterAll, services.FilterActive, services.FilterCompleted:
		f.Status = status
	default:
		ve.Fields = map[string]string{"status": "status must be all, active or completed"}
	}
	f.From = parseDateField(ve, "from", c.Query("from"))
	f.To = parseDateField(ve, "to", c.Query("to"))
	return f, invalidOrNil(ve)
}

// GET /api/stays?status=&from=&to=&q=
func (sc *StayController) GetStays(c *gin.Context) {
	f, err := stayFilter(c)
	if err != nil {
		respondError(c, sc.log, err)
		return
	}

	records, err := sc.StaySvc.Records(c.Request.Context(), f)
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, records)
}

// GET /api/stays/active
func (sc *StayController) GetActiveStays(c *gin.Context) {
	stays, err := sc.StaySvc.ActiveWithGuests(c.Request.Context())
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stays)
}

// GET /api/stays/:id
func (sc *StayController) GetStay(c *gin.Context) {
	stay, err := sc.StaySvc.GetWithGuest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stay)
}

// ----------------------------------------------------
// GET /api/stays/export (same filters as the list)
// ----------------------------------------------------
func (sc *StayController) ExportStays(c *gin.Context) {
	f, err := stayFilter(c)
	if err != nil {
		respondError(c, sc.log, err)
		return
	}

	exp, err := sc.ExportSvc.ExportStays(c.Request.Context(), f)
	if err != nil {
		respondError(c, sc.log, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exp.FileName+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", exp.Content)
}

// DELETE /api/stays
func (sc *StayController) ClearStays(c *gin.Context) {
	if err := sc.StaySvc.ClearAll(c.Request.Context()); err != nil {
		respondError(c, sc.log, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"cleared": true})
}
