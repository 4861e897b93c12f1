package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BelleVueSalon/salon-booking-api/internal/httperr"
	infraRepo "github.com/BelleVueSalon/salon-booking-api/internal/infra/repository"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
	"github.com/BelleVueSalon/salon-booking-api/internal/storage"
)

type StyleHandler struct {
	db     *gorm.DB
	images *storage.ImageStore
	logger *zap.Logger
}

func NewStyleHandler(db *gorm.DB, images *storage.ImageStore, logger *zap.Logger) *StyleHandler {
	return &StyleHandler{db: db, images: images, logger: logger}
}

// --------- Requests ---------

type CreateStyleRequest struct {
	Name         string   `json:"name" binding:"required"`
	Category     string   `json:"category"`
	PriceMin     float64  `json:"price_min" binding:"min=0"`
	PriceMax     float64  `json:"price_max" binding:"min=0"`
	DurationMins int      `json:"duration_mins" binding:"required,min=1"`
	ImageURL     string   `json:"image_url"`
	RatingAvg    *float64 `json:"rating_avg"`
}

type UpdateStyleRequest struct {
	Name         *string  `json:"name,omitempty"`
	Category     *string  `json:"category,omitempty"`
	PriceMin     *float64 `json:"price_min,omitempty"`
	PriceMax     *float64 `json:"price_max,omitempty"`
	DurationMins *int     `json:"duration_mins,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	RatingAvg    *float64 `json:"rating_avg,omitempty"`
}

// --------- Handlers ---------

func (h *StyleHandler) List(c *gin.Context) {
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Session(&gorm.Session{})

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ?", like)
	}

	var styles []models.Style
	if err := q.Order("name ASC").Find(&styles).Error; err != nil {
		httperr.Internal(c, "failed_to_list_styles", "Could not list styles.")
		return
	}

	c.JSON(http.StatusOK, styles)
}

func (h *StyleHandler) Get(c *gin.Context) {
	id := c.Param("id")

	var style models.Style
	if err := h.db.First(&style, id).Error; err != nil {
		httperr.NotFound(c, "style_not_found", "Style not found.")
		return
	}

	c.JSON(http.StatusOK, style)
}

func (h *StyleHandler) Create(c *gin.Context) {
	var req CreateStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.PriceMin > req.PriceMax {
		httperr.BadRequest(c, "invalid_price_range", "price_min must not exceed price_max.")
		return
	}

	style := models.Style{
		Name:         req.Name,
		Category:     strings.ToLower(req.Category),
		PriceMin:     req.PriceMin,
		PriceMax:     req.PriceMax,
		DurationMins: req.DurationMins,
		ImageURL:     req.ImageURL,
		RatingAvg:    req.RatingAvg,
	}

	if err := h.db.Create(&style).Error; err != nil {
		httperr.Internal(c, "failed_to_create_style", "Could not create style.")
		return
	}

	c.JSON(http.StatusCreated, style)
}

func (h *StyleHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var style models.Style
	if err := h.db.First(&style, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "style_not_found", "Style not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_style", "Could not load style.")
		return
	}

	var req UpdateStyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		style.Name = *req.Name
	}
	if req.Category != nil {
		style.Category = strings.ToLower(*req.Category)
	}
	if req.PriceMin != nil {
		style.PriceMin = *req.PriceMin
	}
	if req.PriceMax != nil {
		style.PriceMax = *req.PriceMax
	}
	if req.DurationMins != nil {
		style.DurationMins = *req.DurationMins
	}
	if req.ImageURL != nil {
		style.ImageURL = *req.ImageURL
	}
	if req.RatingAvg != nil {
		style.RatingAvg = req.RatingAvg
	}

	if style.PriceMin > style.PriceMax {
		httperr.BadRequest(c, "invalid_price_range", "price_min must not exceed price_max.")
		return
	}

	if err := h.db.Save(&style).Error; err != nil {
		httperr.Internal(c, "failed_to_update_style", "Could not update style.")
		return
	}

	c.JSON(http.StatusOK, style)
}

// Delete refuses to remove a style that appointments still reference.
// The RESTRICT foreign key makes the store the arbiter.
func (h *StyleHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var style models.Style
	if err := h.db.First(&style, id).Error; err != nil {
		httperr.NotFound(c, "style_not_found", "Style not found.")
		return
	}

	if err := h.db.Delete(&style).Error; err != nil {
		if infraRepo.IsForeignKeyViolation(err) {
			httperr.Conflict(c, "style_in_use", "Style has appointments and cannot be deleted.")
			return
		}
		httperr.Internal(c, "failed_to_delete_style", "Could not delete style.")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *StyleHandler) UploadImage(c *gin.Context) {
	id := c.Param("id")

	var style models.Style
	if err := h.db.First(&style, id).Error; err != nil {
		httperr.NotFound(c, "style_not_found", "Style not found.")
		return
	}

	if h.images == nil || !h.images.Enabled() {
		httperr.ServiceUnavailable(c, "image_storage_not_configured", "Image storage is not configured.")
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Multipart field 'image' is required.")
		return
	}
	defer file.Close()

	url, err := h.images.UploadStyleImage(c.Request.Context(), file)
	if err != nil {
		h.logger.Warn("style image upload failed", zap.Error(err))
		httperr.Internal(c, "image_upload_failed", "Could not store the image.")
		return
	}

	style.ImageURL = url
	if err := h.db.Save(&style).Error; err != nil {
		httperr.Internal(c, "failed_to_update_style", "Could not update style.")
		return
	}

	c.JSON(http.StatusOK, style)
}
