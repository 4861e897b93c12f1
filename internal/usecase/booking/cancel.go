package booking

import (
	"context"

	"github.com/BelleVueSalon/salon-booking-api/internal/audit"
	domain "github.com/BelleVueSalon/salon-booking-api/internal/domain/booking"
	"github.com/BelleVueSalon/salon-booking-api/internal/httperr"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
	"github.com/BelleVueSalon/salon-booking-api/internal/timezone"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewCancelAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: auditDispatcher,
		tz:    tz,
	}
}

// Execute cancels on behalf of the owning user or an admin. Cancelling
// an already-cancelled appointment returns the record unchanged. The
// freed slot is immediately visible to taken-slot queries and open for
// rebooking: the uniqueness indexes ignore cancelled rows.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	requesterID uint,
	isAdmin bool,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !isAdmin && (ap.UserID == nil || *ap.UserID != requesterID) {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	now := timezone.NowIn(uc.tz)
	changed, err := domain.Cancel(ap, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &requesterID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
