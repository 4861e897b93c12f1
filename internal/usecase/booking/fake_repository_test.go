package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BelleVueSalon/salon-booking-api/internal/audit"
	domain "github.com/BelleVueSalon/salon-booking-api/internal/domain/booking"
	"github.com/BelleVueSalon/salon-booking-api/internal/httperr"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
	"github.com/BelleVueSalon/salon-booking-api/internal/notify"
)

// fakeRepository is an in-memory stand-in for the gorm repository. It
// mirrors the store contract: CreateAppointment fails with slot_taken
// when createErr is armed, lookups fail with the not-found business
// codes.
type fakeRepository struct {
	styles       map[uint]*models.Style
	appointments map[uint]*models.Appointment
	nextID       uint

	createErr   error
	createCalls int
	updateCalls int

	scheduled     []time.Time
	takenErr      error
	lastStart     time.Time
	lastEnd       time.Time
	lastStyleID   *uint
	takenQueryRun bool
}

var _ domain.Repository = (*fakeRepository)(nil)

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		styles:       make(map[uint]*models.Style),
		appointments: make(map[uint]*models.Appointment),
		nextID:       1,
	}
}

func (f *fakeRepository) addStyle(s models.Style) *models.Style {
	cp := s
	f.styles[cp.ID] = &cp
	return &cp
}

func (f *fakeRepository) addAppointment(ap models.Appointment) *models.Appointment {
	cp := ap
	if cp.ID == 0 {
		cp.ID = f.nextID
		f.nextID++
	}
	f.appointments[cp.ID] = &cp
	return &cp
}

func (f *fakeRepository) GetStyleByID(_ context.Context, id uint) (*models.Style, error) {
	s, ok := f.styles[id]
	if !ok {
		return nil, httperr.ErrBusiness("style_not_found")
	}
	return s, nil
}

func (f *fakeRepository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	ap.ID = f.nextID
	f.nextID++
	cp := *ap
	f.appointments[cp.ID] = &cp
	return nil
}

func (f *fakeRepository) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	cp := *ap
	return &cp, nil
}

func (f *fakeRepository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.updateCalls++
	cp := *ap
	f.appointments[cp.ID] = &cp
	return nil
}

func (f *fakeRepository) ListScheduledTimes(
	_ context.Context,
	start, end time.Time,
	styleID *uint,
) ([]time.Time, error) {
	f.takenQueryRun = true
	f.lastStart = start
	f.lastEnd = end
	f.lastStyleID = styleID
	if f.takenErr != nil {
		return nil, f.takenErr
	}
	return f.scheduled, nil
}

func (f *fakeRepository) ListAppointmentsForUser(_ context.Context, userID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.UserID != nil && *ap.UserID == userID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListUpcomingForUser(_ context.Context, userID uint, from time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.UserID != nil && *ap.UserID == userID &&
			ap.Status != "cancelled" && ap.ScheduledAt.After(from) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListAppointments(_ context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		out = append(out, *ap)
	}
	return out, nil
}

// -------- shared wiring helpers --------

func testNotifier() *notify.Dispatcher {
	return notify.NewDispatcher(nil, nil, zap.NewNop())
}

func testAudit() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zap.NewNop())
}

func uintPtr(v uint) *uint { return &v }
