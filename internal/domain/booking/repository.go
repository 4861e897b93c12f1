package booking

import (
	"context"
	"time"

	"github.com/BelleVueSalon/salon-booking-api/internal/models"
)

type Repository interface {
	// -------- Style --------
	GetStyleByID(
		ctx context.Context,
		id uint,
	) (*models.Style, error)

	// -------- Appointment (create / conflict) --------
	// CreateAppointment inserts directly; the store's partial unique
	// indexes are the arbiter of slot collisions. A violation comes back
	// as the "slot_taken" business error.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Taken slots --------
	// ListScheduledTimes returns the scheduled timestamps of all
	// non-cancelled appointments in [start, end), optionally restricted
	// to one style.
	ListScheduledTimes(
		ctx context.Context,
		start time.Time,
		end time.Time,
		styleID *uint,
	) ([]time.Time, error)

	// -------- Listings --------
	ListAppointmentsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListUpcomingForUser(
		ctx context.Context,
		userID uint,
		from time.Time,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)
}
