package booking

import (
	"context"
	"strings"
	"time"

	"github.com/BelleVueSalon/salon-booking-api/internal/audit"
	domain "github.com/BelleVueSalon/salon-booking-api/internal/domain/booking"
	"github.com/BelleVueSalon/salon-booking-api/internal/httperr"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
	"github.com/BelleVueSalon/salon-booking-api/internal/notify"
	"github.com/BelleVueSalon/salon-booking-api/internal/timezone"
	"github.com/BelleVueSalon/salon-booking-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	// Identity of the requester; nil means guest.
	UserID *uint
	// Account snapshot used to auto-fill missing contact fields for
	// signed-in users.
	AccountName  string
	AccountEmail string

	StyleID uint

	Date  string // YYYY-MM-DD
	Time  string // HH:mm
	Notes string

	ContactName  string
	ContactEmail string
	ContactPhone string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	audit    *audit.Dispatcher
	tz       string
}

func NewCreateAppointment(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	auditDispatcher *audit.Dispatcher,
	tz string,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    auditDispatcher,
		tz:       tz,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	loc := timezone.Location(uc.tz)

	scheduledAt, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	name, email, phone, err := resolveContact(in)
	if err != nil {
		// Rejected before any store write.
		return nil, err
	}

	style, err := uc.repo.GetStyleByID(ctx, in.StyleID)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		UserID:       in.UserID,
		StyleID:      style.ID,
		ScheduledAt:  scheduledAt,
		Status:       string(domain.InitialStatus()),
		Notes:        in.Notes,
		ContactName:  name,
		ContactEmail: email,
		ContactPhone: phone,
	}

	// The insert itself is the collision check; see Repository.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	ap.Style = *style

	// Fire-and-forget: a failed confirmation never unwinds the booking.
	uc.notifier.Dispatch(notify.BookingConfirmation(ap, loc))

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// resolveContact enforces the reachability rule: everyone needs a name,
// guests need at least one of email or phone. Signed-in users fall back
// to their account details.
func resolveContact(in CreateAppointmentInput) (string, *string, string, error) {
	name := strings.TrimSpace(in.ContactName)
	email := validators.NormalizeEmail(in.ContactEmail)
	phone := strings.TrimSpace(in.ContactPhone)

	if in.UserID != nil {
		if name == "" {
			name = strings.TrimSpace(in.AccountName)
		}
		if email == "" {
			email = validators.NormalizeEmail(in.AccountEmail)
		}
	}

	if name == "" {
		return "", nil, "", httperr.ErrBusiness("missing_contact_name")
	}

	if email == "" && phone == "" {
		return "", nil, "", httperr.ErrBusiness("missing_contact_method")
	}

	// "" becomes NULL so the guest uniqueness index only sees real
	// addresses.
	var emailPtr *string
	if email != "" {
		emailPtr = &email
	}

	return name, emailPtr, phone, nil
}
