package booking

import (
	"context"

	"github.com/BelleVueSalon/salon-booking-api/internal/audit"
	domain "github.com/BelleVueSalon/salon-booking-api/internal/domain/booking"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
)

type ApproveAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewApproveAppointment(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *ApproveAppointment {
	return &ApproveAppointment{
		repo:  repo,
		audit: auditDispatcher,
	}
}

func (uc *ApproveAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	adminID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.Approve(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "appointment_approved",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
