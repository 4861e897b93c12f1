package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BelleVueSalon/salon-booking-api/internal/httperr"
	"github.com/BelleVueSalon/salon-booking-api/internal/middleware"
	ucBooking "github.com/BelleVueSalon/salon-booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create     *ucBooking.CreateAppointment
	cancel     *ucBooking.CancelAppointment
	approve    *ucBooking.ApproveAppointment
	complete   *ucBooking.CompleteAppointment
	takenSlots *ucBooking.TakenSlots
	list       *ucBooking.ListAppointments
}

func NewAppointmentHandler(
	create *ucBooking.CreateAppointment,
	cancel *ucBooking.CancelAppointment,
	approve *ucBooking.ApproveAppointment,
	complete *ucBooking.CompleteAppointment,
	takenSlots *ucBooking.TakenSlots,
	list *ucBooking.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:     create,
		cancel:     cancel,
		approve:    approve,
		complete:   complete,
		takenSlots: takenSlots,
		list:       list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	StyleID uint   `json:"style_id" binding:"required"`
	Date    string `json:"date" binding:"required"` // YYYY-MM-DD
	Time    string `json:"time" binding:"required"` // HH:mm
	Notes   string `json:"notes"`

	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

// ======================================================
// CREATE (guests and signed-in users)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	accountName := ""
	accountEmail := ""
	if v, ok := c.Get(middleware.ContextUserName); ok {
		accountName, _ = v.(string)
	}
	if v, ok := c.Get(middleware.ContextUserEmail); ok {
		accountEmail, _ = v.(string)
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		ucBooking.CreateAppointmentInput{
			UserID:       middleware.RequesterID(c),
			AccountName:  accountName,
			AccountEmail: accountEmail,
			StyleID:      req.StyleID,
			Date:         req.Date,
			Time:         req.Time,
			Notes:        req.Notes,
			ContactName:  req.ContactName,
			ContactEmail: req.ContactEmail,
			ContactPhone: req.ContactPhone,
		},
	)

	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(201, ap)
}

// ======================================================
// TAKEN SLOTS (public)
// ======================================================

func (h *AppointmentHandler) Taken(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter 'date' (YYYY-MM-DD) is required.")
		return
	}

	var styleID *uint
	if s := c.Query("style_id"); s != "" {
		parsed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_style_id", "Invalid style_id.")
			return
		}
		id := uint(parsed)
		styleID = &id
	}

	taken, err := h.takenSlots.Execute(c.Request.Context(), dateStr, styleID)
	if err != nil {
		if httperr.IsBusiness(err, "invalid_date") {
			httperr.BadRequest(c, "invalid_date", "Missing or invalid date (YYYY-MM-DD).")
			return
		}
		httperr.Internal(c, "failed_to_list_taken_slots", "Could not list taken slots.")
		return
	}

	c.JSON(200, gin.H{
		"date":     dateStr,
		"style_id": c.Query("style_id"),
		"taken":    taken,
	})
}

// ======================================================
// LISTINGS
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	if middleware.IsAdmin(c) {
		out, err := h.list.All(c.Request.Context())
		if err != nil {
			httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
			return
		}
		c.JSON(200, out)
		return
	}

	out, err := h.list.ForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(200, out)
}

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	out, err := h.list.Upcoming(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(200, out)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(200, ap)
}

func (h *AppointmentHandler) Approve(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ap, err := h.approve.Execute(c.Request.Context(), id, adminID)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(200, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), id, adminID)
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// HELPERS
// ======================================================

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return 0, false
	}
	return uint(id), true
}

func mapBookingErrors(c *gin.Context, err error) {
	switch httperr.BusinessCode(err) {
	case "slot_taken":
		httperr.Conflict(c, "slot_taken",
			"An appointment for this service, date, and time already exists for you.")
	case "invalid_date_or_time":
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case "missing_contact_name":
		httperr.BadRequest(c, "missing_contact_name", "Please provide your name.")
	case "missing_contact_method":
		httperr.BadRequest(c, "missing_contact_method",
			"Provide at least one contact method (email or phone).")
	case "style_not_found":
		httperr.NotFound(c, "style_not_found", "Style not found.")
	case "appointment_not_found":
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case "not_allowed":
		httperr.Forbidden(c, "not_allowed", "Not allowed.")
	case "invalid_state":
		httperr.BadRequest(c, "invalid_state", "Appointment is not in a valid state for this action.")
	default:
		httperr.Internal(c, "booking_failed", "Could not process the appointment.")
	}
}
