package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BelleVueSalon/salon-booking-api/internal/audit"
	domain "github.com/BelleVueSalon/salon-booking-api/internal/domain/booking"
	"github.com/BelleVueSalon/salon-booking-api/internal/httperr"
	"github.com/BelleVueSalon/salon-booking-api/internal/middleware"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
	"github.com/BelleVueSalon/salon-booking-api/internal/notify"
	ucBooking "github.com/BelleVueSalon/salon-booking-api/internal/usecase/booking"
)

// stubRepo backs the handler tests with canned data; only the paths a
// test exercises need to be armed.
type stubRepo struct {
	styles       map[uint]*models.Style
	appointments map[uint]*models.Appointment
	createErr    error
	updateErr    error
	updateCalls  int
	scheduled    []time.Time
	nextID       uint
}

var _ domain.Repository = (*stubRepo)(nil)

func newStubRepo() *stubRepo {
	return &stubRepo{
		styles:       make(map[uint]*models.Style),
		appointments: make(map[uint]*models.Appointment),
		nextID:       1,
	}
}

func (s *stubRepo) GetStyleByID(_ context.Context, id uint) (*models.Style, error) {
	st, ok := s.styles[id]
	if !ok {
		return nil, httperr.ErrBusiness("style_not_found")
	}
	return st, nil
}

func (s *stubRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	if s.createErr != nil {
		return s.createErr
	}
	ap.ID = s.nextID
	s.nextID++
	cp := *ap
	s.appointments[cp.ID] = &cp
	return nil
}

func (s *stubRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := s.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	cp := *ap
	return &cp, nil
}

func (s *stubRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	s.updateCalls++
	if s.updateErr != nil {
		return s.updateErr
	}
	cp := *ap
	s.appointments[cp.ID] = &cp
	return nil
}

func (s *stubRepo) ListScheduledTimes(_ context.Context, _, _ time.Time, _ *uint) ([]time.Time, error) {
	return s.scheduled, nil
}

func (s *stubRepo) ListAppointmentsForUser(_ context.Context, _ uint) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubRepo) ListUpcomingForUser(_ context.Context, _ uint, _ time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (s *stubRepo) ListAppointments(_ context.Context) ([]models.Appointment, error) {
	return nil, nil
}

const handlerTZ = "America/New_York"

func newTestRouter(repo *stubRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	notifier := notify.NewDispatcher(nil, nil, logger)
	auditDispatcher := audit.NewDispatcher(audit.New(nil), logger)

	h := NewAppointmentHandler(
		ucBooking.NewCreateAppointment(repo, notifier, auditDispatcher, handlerTZ),
		ucBooking.NewCancelAppointment(repo, auditDispatcher, handlerTZ),
		ucBooking.NewApproveAppointment(repo, auditDispatcher),
		ucBooking.NewCompleteAppointment(repo, auditDispatcher),
		ucBooking.NewTakenSlots(repo, handlerTZ),
		ucBooking.NewListAppointments(repo, handlerTZ),
	)

	r := gin.New()
	r.POST("/api/appointments", h.Create)
	r.GET("/api/appointments/taken", h.Taken)
	r.PATCH("/api/appointments/:id/cancel", asUser(7, false), h.Cancel)
	r.PATCH("/api/appointments/:id/approve", asUser(1, true), h.Approve)
	return r
}

// asUser plants the identity the auth middleware would have set.
func asUser(id uint, admin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextIsAdmin, admin)
		c.Next()
	}
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAppointment_Guest201(t *testing.T) {
	repo := newStubRepo()
	repo.styles[3] = &models.Style{ID: 3, Name: "Box Braids"}
	r := newTestRouter(repo)

	w := postJSON(t, r, "/api/appointments", gin.H{
		"style_id":      3,
		"date":          "2026-09-12",
		"time":          "14:30",
		"contact_name":  "Dana Reeves",
		"contact_email": "dana@example.com",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))
	assert.Equal(t, "pending", ap.Status)
	assert.Equal(t, "Box Braids", ap.Style.Name)
	assert.Nil(t, ap.UserID)
}

func TestCreateAppointment_SlotTaken409(t *testing.T) {
	repo := newStubRepo()
	repo.styles[3] = &models.Style{ID: 3, Name: "Box Braids"}
	repo.createErr = httperr.ErrBusiness("slot_taken")
	r := newTestRouter(repo)

	w := postJSON(t, r, "/api/appointments", gin.H{
		"style_id":      3,
		"date":          "2026-09-12",
		"time":          "14:30",
		"contact_name":  "Dana Reeves",
		"contact_email": "dana@example.com",
	})

	require.Equal(t, http.StatusConflict, w.Code)

	var resp httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "slot_taken", resp.Code)
}

func TestCreateAppointment_MissingContact400(t *testing.T) {
	repo := newStubRepo()
	repo.styles[3] = &models.Style{ID: 3, Name: "Box Braids"}
	r := newTestRouter(repo)

	w := postJSON(t, r, "/api/appointments", gin.H{
		"style_id":     3,
		"date":         "2026-09-12",
		"time":         "14:30",
		"contact_name": "Dana Reeves",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "missing_contact_method", resp.Code)
}

func TestCreateAppointment_UnknownStyle404(t *testing.T) {
	repo := newStubRepo()
	r := newTestRouter(repo)

	w := postJSON(t, r, "/api/appointments", gin.H{
		"style_id":      99,
		"date":          "2026-09-12",
		"time":          "14:30",
		"contact_name":  "Dana Reeves",
		"contact_email": "dana@example.com",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaken_RequiresDate(t *testing.T) {
	r := newTestRouter(newStubRepo())

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/taken", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaken_ReturnsDistinctTimes(t *testing.T) {
	repo := newStubRepo()
	loc, err := time.LoadLocation(handlerTZ)
	require.NoError(t, err)
	repo.scheduled = []time.Time{
		time.Date(2026, 9, 12, 9, 0, 0, 0, loc),
		time.Date(2026, 9, 12, 9, 0, 0, 0, loc),
		time.Date(2026, 9, 12, 11, 30, 0, 0, loc),
	}
	r := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/appointments/taken?date=2026-09-12", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Date  string   `json:"date"`
		Taken []string `json:"taken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-12", resp.Date)
	assert.Equal(t, []string{"09:00", "11:30"}, resp.Taken)
}

func TestCancel_OwnerGets200AndFreedSlot(t *testing.T) {
	repo := newStubRepo()
	userID := uint(7)
	repo.appointments[5] = &models.Appointment{ID: 5, UserID: &userID, Status: "pending"}
	r := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/appointments/5/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))
	assert.Equal(t, "cancelled", ap.Status)
}

func TestCancel_ForeignAppointment403(t *testing.T) {
	repo := newStubRepo()
	otherUser := uint(8)
	repo.appointments[5] = &models.Appointment{ID: 5, UserID: &otherUser, Status: "pending"}
	r := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/appointments/5/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApprove_AdminMovesPendingToApproved(t *testing.T) {
	repo := newStubRepo()
	repo.appointments[5] = &models.Appointment{ID: 5, Status: "pending"}
	r := newTestRouter(repo)

	req := httptest.NewRequest(http.MethodPatch, "/api/appointments/5/approve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var ap models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ap))
	assert.Equal(t, "approved", ap.Status)
}
