// Package notify sends reservation emails over SMTP.
package notify

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/bookflow/lms/internal/entities"
)

var ErrNotConfigured = errors.New("smtp is not configured")

// Mailer delivers reservation emails. The application treats delivery
// failures as non-fatal: the reservation record is already durable when a
// mailer is invoked.
type Mailer interface {
	SendReservationConfirmation(reservation *entities.Reservation) error
	SendAvailabilityNotice(reservation *entities.Reservation) error
}

// SMTPConfig carries the outbound mail settings, usually from the
// environment.
type SMTPConfig struct {
	Server   string
	Port     int
	Username string
	Password string
	Sender   string
}

// missing lists the unset fields, so configuration errors name exactly what
// to fix.
func (c SMTPConfig) missing() []string {
	var fields []string
	if c.Server == "" {
		fields = append(fields, "server")
	}
	if c.Port == 0 {
		fields = append(fields, "port")
	}
	if c.Username == "" {
		fields = append(fields, "username")
	}
	if c.Password == "" {
		fields = append(fields, "password")
	}
	if c.Sender == "" {
		fields = append(fields, "sender")
	}
	return fields
}

// Complete reports whether every field needed to send mail is set.
func (c SMTPConfig) Complete() bool {
	return len(c.missing()) == 0
}

// SMTPMailer sends mail through a single configured relay.
type SMTPMailer struct {
	config SMTPConfig
}

func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{config: config}
}

func (m *SMTPMailer) SendReservationConfirmation(reservation *entities.Reservation) error {
	subject := fmt.Sprintf("Reservation confirmed: %s", reservation.BookTitle)
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"Your reservation %s for \"%s\" was recorded on %s.\r\n"+
			"We will email you as soon as a copy is available.\r\n\r\n"+
			"BookFlow Library",
		reservation.UserName, reservation.ID, reservation.BookTitle, reservation.ReservedAt)
	return m.send(reservation.UserEmail, subject, body)
}

func (m *SMTPMailer) SendAvailabilityNotice(reservation *entities.Reservation) error {
	subject := fmt.Sprintf("Now available: %s", reservation.BookTitle)
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"A copy of \"%s\" is available again. Your reservation %s holds your place,\r\n"+
			"please borrow the book at your earliest convenience.\r\n\r\n"+
			"BookFlow Library",
		reservation.UserName, reservation.BookTitle, reservation.ID)
	return m.send(reservation.UserEmail, subject, body)
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if missing := m.config.missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}
	if to == "" || strings.EqualFold(to, entities.NotProvided) {
		return errors.New("recipient has no email address")
	}

	message := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		m.config.Sender, to, subject, body))

	addr := fmt.Sprintf("%s:%d", m.config.Server, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Server)

	// Port 465 is implicit TLS; everything else goes through STARTTLS via
	// smtp.SendMail.
	if m.config.Port != 465 {
		if err := smtp.SendMail(addr, auth, m.config.Sender, []string{to}, message); err != nil {
			return fmt.Errorf("sending mail to %s: %w", to, err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.config.Server})
	if err != nil {
		return fmt.Errorf("dialing smtp relay: %w", err)
	}
	client, err := smtp.NewClient(conn, m.config.Server)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := client.Mail(m.config.Sender); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := writer.Write(message); err != nil {
		writer.Close()
		return fmt.Errorf("writing message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finishing message: %w", err)
	}
	return client.Quit()
}

// LogMailer is the fallback when SMTP is not configured: it records what
// would have been sent and succeeds, so reservations keep flowing in
// development setups.
type LogMailer struct{}

func (LogMailer) SendReservationConfirmation(reservation *entities.Reservation) error {
	log.Printf("smtp disabled, skipping confirmation email for %s to %s", reservation.ID, reservation.UserEmail)
	return nil
}

func (LogMailer) SendAvailabilityNotice(reservation *entities.Reservation) error {
	log.Printf("smtp disabled, skipping availability email for %s to %s", reservation.ID, reservation.UserEmail)
	return nil
}
