package booking

import (
	"context"

	domain "github.com/BelleVueSalon/salon-booking-api/internal/domain/booking"
	"github.com/BelleVueSalon/salon-booking-api/internal/dto"
	"github.com/BelleVueSalon/salon-booking-api/internal/timezone"
)

type ListAppointments struct {
	repo domain.Repository
	tz   string
}

func NewListAppointments(repo domain.Repository, tz string) *ListAppointments {
	return &ListAppointments{repo: repo, tz: tz}
}

// ForUser lists everything the user ever booked, newest first.
func (uc *ListAppointments) ForUser(
	ctx context.Context,
	userID uint,
) ([]dto.AppointmentListDTO, error) {

	aps, err := uc.repo.ListAppointmentsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(aps), nil
}

// Upcoming lists the user's future non-cancelled appointments in
// chronological order.
func (uc *ListAppointments) Upcoming(
	ctx context.Context,
	userID uint,
) ([]dto.AppointmentListDTO, error) {

	aps, err := uc.repo.ListUpcomingForUser(ctx, userID, timezone.NowIn(uc.tz))
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(aps), nil
}

// All is the staff view across every customer.
func (uc *ListAppointments) All(
	ctx context.Context,
) ([]dto.AppointmentListDTO, error) {

	aps, err := uc.repo.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromAppointments(aps), nil
}
