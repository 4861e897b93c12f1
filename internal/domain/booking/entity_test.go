package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BelleVueSalon/salon-booking-api/internal/httperr"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
)

func TestCancel_FreesSlotAndStampsTime(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	ap := &models.Appointment{Status: string(StatusPending)}

	changed, err := Cancel(ap, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.Equal(t, now, *ap.CancelledAt)
}

func TestCancel_AlreadyCancelledIsNoOp(t *testing.T) {
	stamped := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	ap := &models.Appointment{
		Status:      string(StatusCancelled),
		CancelledAt: &stamped,
	}

	changed, err := Cancel(ap, time.Now())
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, stamped, *ap.CancelledAt, "original cancellation time must survive a repeat cancel")
}

func TestCancel_BlockedOnlyFromCompleted(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusApproved, StatusPaid} {
		ap := &models.Appointment{Status: string(status)}
		changed, err := Cancel(ap, time.Now())
		require.NoError(t, err, "cancel from %s", status)
		assert.True(t, changed)
	}

	ap := &models.Appointment{Status: string(StatusCompleted)}
	_, err := Cancel(ap, time.Now())
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	assert.Equal(t, string(StatusCompleted), ap.Status)
}

func TestApprove_OnlyFromPending(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}
	require.NoError(t, Approve(ap))
	assert.Equal(t, string(StatusApproved), ap.Status)

	for _, status := range []Status{StatusApproved, StatusCompleted, StatusCancelled, StatusPaid} {
		ap := &models.Appointment{Status: string(status)}
		err := Approve(ap)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "approve from %s", status)
	}
}

func TestComplete_FromApprovedOrPaid(t *testing.T) {
	for _, status := range []Status{StatusApproved, StatusPaid} {
		ap := &models.Appointment{Status: string(status)}
		require.NoError(t, Complete(ap), "complete from %s", status)
		assert.Equal(t, string(StatusCompleted), ap.Status)
	}

	for _, status := range []Status{StatusPending, StatusCompleted, StatusCancelled} {
		ap := &models.Appointment{Status: string(status)}
		err := Complete(ap)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"), "complete from %s", status)
	}
}

func TestMarkPaid_TransitionsAndRecordsAmount(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}

	changed := MarkPaid(ap, 140.0)
	assert.True(t, changed)
	assert.Equal(t, string(StatusPaid), ap.Status)
	require.NotNil(t, ap.Amount)
	assert.Equal(t, 140.0, *ap.Amount)
}

func TestMarkPaid_ReplayIsNoOp(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusPending)}
	require.True(t, MarkPaid(ap, 140.0))

	changed := MarkPaid(ap, 999.0)
	assert.False(t, changed)
	require.NotNil(t, ap.Amount)
	assert.Equal(t, 140.0, *ap.Amount, "a redelivered event must not rewrite the amount")
}

func TestMarkPaid_KeepsExistingAmount(t *testing.T) {
	prior := 55.0
	ap := &models.Appointment{Status: string(StatusApproved), Amount: &prior}

	changed := MarkPaid(ap, 80.0)
	assert.True(t, changed)
	assert.Equal(t, string(StatusPaid), ap.Status)
	assert.Equal(t, prior, *ap.Amount)
}
