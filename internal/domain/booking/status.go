package booking

import "github.com/BelleVueSalon/salon-booking-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusPaid      Status = "paid"
)

func InitialStatus() Status {
	return StatusPending
}

// ===============================
// Validations
// ===============================

// CanCancel: cancellation is allowed from any state but completed.
// Cancelling a cancelled appointment is handled as a no-op by Cancel,
// not rejected here.
func CanCancel(current Status) error {
	if current == StatusCompleted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanApprove(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusApproved && current != StatusPaid {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
