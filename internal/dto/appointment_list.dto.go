package dto

import (
	"time"

	"github.com/BelleVueSalon/salon-booking-api/internal/domain/booking"
	"github.com/BelleVueSalon/salon-booking-api/internal/models"
)

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
	StyleID       uint      `json:"style_id"`
	StyleName     string    `json:"style_name"`
	StylePriceMin float64   `json:"style_price_min"`
	ContactName   string    `json:"contact_name"`
	ContactEmail  *string   `json:"contact_email"`
	ContactPhone  string    `json:"contact_phone"`
	IsPaid        bool      `json:"is_paid"`
	Amount        *float64  `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:            ap.ID,
		ScheduledAt:   ap.ScheduledAt,
		Status:        ap.Status,
		Notes:         ap.Notes,
		StyleID:       ap.StyleID,
		StyleName:     ap.Style.Name,
		StylePriceMin: ap.Style.PriceMin,
		ContactName:   ap.ContactName,
		ContactEmail:  ap.ContactEmail,
		ContactPhone:  ap.ContactPhone,
		IsPaid:        booking.Status(ap.Status) == booking.StatusPaid,
		Amount:        ap.Amount,
		CreatedAt:     ap.CreatedAt,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap))
	}
	return out
}
