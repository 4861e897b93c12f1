package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BelleVueSalon/salon-booking-api/internal/domain/booking"
	"github.com/BelleVueSalon/salon-booking-api/internal/httperr"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Style
// --------------------------------------------------

func (r *BookingGormRepository) GetStyleByID(
	ctx context.Context,
	id uint,
) (*models.Style, error) {

	var style models.Style
	if err := r.db.WithContext(ctx).First(&style, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("style_not_found")
		}
		return nil, err
	}
	return &style, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// CreateAppointment relies on the partial unique indexes installed at
// migration time. There is deliberately no pre-check here: two
// concurrent requests for the same slot race to the insert and the
// store lets exactly one of them through.
func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		if IsUniqueViolation(err) {
			return httperr.ErrBusiness("slot_taken")
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Style").
		First(&ap, id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
		return nil, err
	}

	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Taken slots
// --------------------------------------------------

func (r *BookingGormRepository) ListScheduledTimes(
	ctx context.Context,
	start time.Time,
	end time.Time,
	styleID *uint,
) ([]time.Time, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"status <> ? AND scheduled_at >= ? AND scheduled_at < ?",
			string(domain.StatusCancelled), start, end,
		)

	if styleID != nil {
		q = q.Where("style_id = ?", *styleID)
	}

	var times []time.Time
	if err := q.
		Order("scheduled_at ASC").
		Pluck("scheduled_at", &times).Error; err != nil {
		return nil, err
	}

	return times, nil
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListAppointmentsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Style").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *BookingGormRepository) ListUpcomingForUser(
	ctx context.Context,
	userID uint,
	from time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Style").
		Where(
			"user_id = ? AND status <> ? AND scheduled_at >= ?",
			userID, string(domain.StatusCancelled), from,
		).
		Order("scheduled_at ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *BookingGormRepository) ListAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Style").
		Order("created_at DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
