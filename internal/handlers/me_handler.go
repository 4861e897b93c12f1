package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BelleVueSalon/salon-booking-api/internal/httperr"
	"github.com/BelleVueSalon/salon-booking-api/internal/middleware"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
	ucBooking "github.com/BelleVueSalon/salon-booking-api/internal/usecase/booking"
)

type MeHandler struct {
	db   *gorm.DB
	list *ucBooking.ListAppointments
}

func NewMeHandler(db *gorm.DB, list *ucBooking.ListAppointments) *MeHandler {
	return &MeHandler{db: db, list: list}
}

type UpdateProfileRequest struct {
	FirstName        *string `json:"first_name,omitempty"`
	LastName         *string `json:"last_name,omitempty"`
	DOB              *string `json:"dob,omitempty"` // YYYY-MM-DD
	PhoneNumber      *string `json:"phone,omitempty"`
	PreferredStylist *string `json:"preferred_stylist,omitempty"`
}

func (h *MeHandler) GetProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Could not load account.")
		return
	}

	profile, ok := h.loadOrHealProfile(c, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, profilePayload(&user, profile))
}

// loadOrHealProfile fetches the profile, creating the row for accounts
// that predate the profile rollout. It writes the error response itself
// and reports ok=false when the caller should stop.
func (h *MeHandler) loadOrHealProfile(c *gin.Context, userID uint) (*models.Profile, bool) {
	var profile models.Profile
	err := h.db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, true
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Internal(c, "failed_to_load_profile", "Could not load profile.")
		return nil, false
	}

	profile = models.Profile{UserID: userID}
	if err := h.db.Create(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_load_profile", "Could not load profile.")
		return nil, false
	}

	return &profile, true
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		httperr.Internal(c, "user_not_found", "Could not load account.")
		return
	}

	profilePtr, ok := h.loadOrHealProfile(c, userID)
	if !ok {
		return
	}
	profile := *profilePtr

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if req.DOB != nil {
		if *req.DOB == "" {
			profile.DOB = nil
		} else {
			dob, err := time.Parse("2006-01-02", *req.DOB)
			if err != nil {
				httperr.BadRequest(c, "invalid_dob", "Invalid date of birth (YYYY-MM-DD).")
				return
			}
			profile.DOB = &dob
		}
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = *req.PhoneNumber
	}
	if req.PreferredStylist != nil {
		profile.PreferredStylist = *req.PreferredStylist
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update profile.")
		return
	}
	if err := h.db.Save(&profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update profile.")
		return
	}

	c.JSON(http.StatusOK, profilePayload(&user, &profile))
}

func (h *MeHandler) MyAppointments(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	out, err := h.list.ForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not list appointments.")
		return
	}

	c.JSON(http.StatusOK, out)
}

func profilePayload(user *models.User, profile *models.Profile) gin.H {
	var dob *string
	if profile.DOB != nil {
		s := profile.DOB.Format("2006-01-02")
		dob = &s
	}

	return gin.H{
		"id":                user.ID,
		"first_name":        user.FirstName,
		"last_name":         user.LastName,
		"email":             user.Email,
		"dob":               dob,
		"phone":             profile.PhoneNumber,
		"preferred_stylist": profile.PreferredStylist,
	}
}
