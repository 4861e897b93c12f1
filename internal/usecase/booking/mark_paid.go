package booking

import (
	"context"

	"github.com/BelleVueSalon/salon-booking-api/internal/audit"
	domain "github.com/BelleVueSalon/salon-booking-api/internal/domain/booking"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
	"github.com/BelleVueSalon/salon-booking-api/internal/notify"
	"github.com/BelleVueSalon/salon-booking-api/internal/timezone"
)

// MarkPaid is only ever invoked from the payment webhook path, after
// the processor's signature has been verified.
type MarkPaid struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	audit    *audit.Dispatcher
	tz       string
}

func NewMarkPaid(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	auditDispatcher *audit.Dispatcher,
	tz string,
) *MarkPaid {
	return &MarkPaid{
		repo:     repo,
		notifier: notifier,
		audit:    auditDispatcher,
		tz:       tz,
	}
}

// Execute applies the paid transition once. The processor redelivers
// events at-least-once; an already-paid appointment is returned as-is
// with no second amount write and no second notification from this
// path.
func (uc *MarkPaid) Execute(
	ctx context.Context,
	appointmentID uint,
	amount float64,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if !domain.MarkPaid(ap, amount) {
		return ap, nil
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Best effort; isolated from the transition above.
	uc.notifier.Dispatch(notify.PaymentConfirmation(ap, amount, timezone.Location(uc.tz)))

	uc.audit.Dispatch(audit.Event{
		UserID:   ap.UserID,
		Action:   "appointment_paid",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"amount": amount},
	})

	return ap, nil
}
