package mailer

import (
	"fmt"

	"fleetwatch/fleetwatch/config"
	"fleetwatch/fleetwatch/sources/psql/models"

	"gopkg.in/gomail.v2"
)

// Mailer sends booking confirmations. Delivery is fire-and-forget at the
// call sites: a send error is logged, never surfaced to the request.
type Mailer interface {
	SendBookingConfirmation(to string, appt models.ServiceAppointment) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

func (m *SMTPMailer) SendBookingConfirmation(to string, appt models.ServiceAppointment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Service appointment confirmed for %s", appt.VIN))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your service appointment is confirmed.\n\nVehicle: %s\nService center: %s\nDate: %s\nTime: %s\nEstimated cost: %.2f\nStatus: %s\n",
		appt.VIN, appt.ServiceCenter, appt.ServiceDate, appt.ServiceTime, appt.Cost, appt.Status,
	))
	return m.dialer.DialAndSend(msg)
}

// NopMailer is used when SMTP is not configured, and in tests.
type NopMailer struct{}

func (NopMailer) SendBookingConfirmation(string, models.ServiceAppointment) error { return nil }
