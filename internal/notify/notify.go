package notify

import (
	"fmt"
	"time"

	"github.com/BelleVueSalon/salon-booking-api/internal/models"
)

// Message is one outbound notification. Email and Phone may both be
// set; each non-empty destination gets a delivery attempt.
type Message struct {
	Email   string
	Phone   string
	Subject string
	Body    string
}

func contactName(ap *models.Appointment) string {
	if ap.ContactName != "" {
		return ap.ContactName
	}
	return "there"
}

func contactEmail(ap *models.Appointment) string {
	if ap.ContactEmail != nil {
		return *ap.ContactEmail
	}
	return ""
}

// BookingConfirmation is sent right after an appointment is created.
// Slots are enforced at insert time, so we confirm immediately.
func BookingConfirmation(ap *models.Appointment, loc *time.Location) Message {
	when := ap.ScheduledAt.In(loc).Format("2006-01-02 15:04")

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your appointment for %s on %s is confirmed.\n"+
			"If anything changes before your appointment, we'll notify you in advance.\n\n"+
			"Please do not reply to this email. For assistance, contact the salon using the phone or email listed on our website.\n\n"+
			"- Belle Vue Salon",
		contactName(ap), ap.Style.Name, when,
	)

	return Message{
		Email:   contactEmail(ap),
		Phone:   ap.ContactPhone,
		Subject: "Your salon appointment is confirmed",
		Body:    body,
	}
}

// PaymentConfirmation is sent when the payment processor reports the
// appointment as paid. Email only, matching the booking receipt flow.
func PaymentConfirmation(ap *models.Appointment, amount float64, loc *time.Location) Message {
	when := ap.ScheduledAt.In(loc).Format("2006-01-02 15:04")

	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Thank you for your payment of $%.2f for %s. "+
			"Your appointment on %s has been successfully confirmed.\n"+
			"If anything changes before your appointment, we'll notify you in advance.\n\n"+
			"Please do not reply to this email. For assistance, contact the salon using the phone number or email listed on our website.\n\n"+
			"- Belle Vue Salon",
		contactName(ap), amount, ap.Style.Name, when,
	)

	return Message{
		Email:   contactEmail(ap),
		Subject: "Payment received - Belle Vue Salon",
		Body:    body,
	}
}
