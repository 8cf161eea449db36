package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// ReservationEmail carries everything the reservation templates need.
type ReservationEmail struct {
	To          string
	Name        string
	CourtName   string
	Date        string
	StartTime   string
	EndTime     string
	ReservedFor string
	VerifyCode  string
	Reason      string
}

// Notifier sends reservation lifecycle notifications. Sending is best-effort:
// the booking flow never fails because a mail could not be delivered.
type Notifier interface {
	ReservationConfirmed(e ReservationEmail) error
	ReservationModified(e ReservationEmail) error
	ReservationCancelled(e ReservationEmail) error
}

// SMTPConfig holds the SMTP connection settings.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type smtpNotifier struct {
	cfg SMTPConfig
}

// NewSMTPNotifier creates a Notifier that delivers over SMTP using gomail.
func NewSMTPNotifier(cfg SMTPConfig) Notifier {
	return &smtpNotifier{cfg: cfg}
}

func (n *smtpNotifier) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail to %s failed: %w", to, err)
	}
	return nil
}

func (n *smtpNotifier) ReservationConfirmed(e ReservationEmail) error {
	body := fmt.Sprintf(`
		<h2>Your reservation is confirmed</h2>
		<p>Hi %s, your court reservation was created successfully.</p>
		<p><b>Verification code:</b> %s</p>
		<p><b>Court:</b> %s</p>
		<p><b>Date:</b> %s</p>
		<p><b>Time:</b> %s - %s</p>
		<p><b>Reserved for:</b> %s</p>
		<p>Present the verification code at the front desk on arrival.</p>
	`, e.Name, e.VerifyCode, e.CourtName, e.Date, e.StartTime, e.EndTime, e.ReservedFor)

	return n.send(e.To, "Reservation confirmed", body)
}

func (n *smtpNotifier) ReservationModified(e ReservationEmail) error {
	body := fmt.Sprintf(`
		<h2>Your reservation was modified</h2>
		<p>Hi %s, here are the updated details:</p>
		<ul>
			<li><b>Court:</b> %s</li>
			<li><b>Date:</b> %s</li>
			<li><b>Time:</b> %s - %s</li>
			<li><b>Reserved for:</b> %s</li>
		</ul>
		<p>If you did not request this change, please contact us.</p>
	`, e.Name, e.CourtName, e.Date, e.StartTime, e.EndTime, e.ReservedFor)

	return n.send(e.To, "Your reservation was modified", body)
}

func (n *smtpNotifier) ReservationCancelled(e ReservationEmail) error {
	body := fmt.Sprintf(`
		<h2>Your reservation was cancelled</h2>
		<p>Hi %s, your reservation for %s on %s from %s to %s has been cancelled.</p>
		<p><b>Reason:</b> %s</p>
	`, e.Name, e.CourtName, e.Date, e.StartTime, e.EndTime, e.Reason)

	return n.send(e.To, "Your reservation was cancelled", body)
}

// Noop is a Notifier that discards every message. Used in tests and when SMTP
// is not configured.
type Noop struct{}

func (Noop) ReservationConfirmed(ReservationEmail) error { return nil }
func (Noop) ReservationModified(ReservationEmail) error  { return nil }
func (Noop) ReservationCancelled(ReservationEmail) error { return nil }
