package notify

import (
	"go.uber.org/zap"
)

// Sender makes one delivery attempt over a single channel.
type Sender interface {
	Enabled() bool
	Send(to, subject, body string) error
}

// Dispatcher delivers notifications off the request path. Delivery is
// strictly best-effort: failures are logged and never reach the caller,
// and a full queue drops the message rather than block a booking.
type Dispatcher struct {
	email  Sender
	sms    Sender
	queue  chan Message
	logger *zap.Logger
}

func NewDispatcher(email Sender, sms Sender, logger *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		email:  email,
		sms:    sms,
		queue:  make(chan Message, 100),
		logger: logger,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	if msg.Email != "" && d.email != nil && d.email.Enabled() {
		if err := d.email.Send(msg.Email, msg.Subject, msg.Body); err != nil {
			d.logger.Warn("email delivery failed",
				zap.String("to", msg.Email),
				zap.Error(err),
			)
		}
	}

	if msg.Phone != "" && d.sms != nil && d.sms.Enabled() {
		if err := d.sms.Send(msg.Phone, msg.Subject, msg.Body); err != nil {
			d.logger.Warn("sms delivery failed",
				zap.String("to", msg.Phone),
				zap.Error(err),
			)
		}
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		// queue full: drop rather than block the booking path
		d.logger.Warn("notification queue full, dropping message")
	}
}
