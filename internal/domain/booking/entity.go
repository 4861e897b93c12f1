package booking

import (
	"time"

	"github.com/BelleVueSalon/salon-booking-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel frees the slot. Returns false when the appointment was already
// cancelled, in which case the record is left untouched.
func Cancel(ap *models.Appointment, now time.Time) (bool, error) {
	if Status(ap.Status) == StatusCancelled {
		return false, nil
	}

	if err := CanCancel(Status(ap.Status)); err != nil {
		return false, err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return true, nil
}

func Approve(ap *models.Appointment) error {
	if err := CanApprove(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusApproved)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	return nil
}

// MarkPaid applies the payment-webhook transition. Replays are no-ops:
// once paid, neither the status nor the recorded amount changes again.
func MarkPaid(ap *models.Appointment, amount float64) bool {
	if Status(ap.Status) == StatusPaid {
		return false
	}

	ap.Status = string(StatusPaid)
	if ap.Amount == nil {
		ap.Amount = &amount
	}
	return true
}
