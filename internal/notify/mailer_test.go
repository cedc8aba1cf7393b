package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookflow/lms/internal/entities"
)

func TestSMTPConfig_Complete(t *testing.T) {
	full := SMTPConfig{
		Server:   "smtp.example.com",
		Port:     587,
		Username: "library",
		Password: "secret",
		Sender:   "library@example.edu",
	}
	assert.True(t, full.Complete())

	partial := full
	partial.Password = ""
	assert.False(t, partial.Complete())
}

func TestSMTPMailer_IncompleteConfigNamesFields(t *testing.T) {
	mailer := NewSMTPMailer(SMTPConfig{Server: "smtp.example.com", Port: 587})
	err := mailer.SendReservationConfirmation(&entities.Reservation{
		ID:        "RSV20250101000000000",
		UserEmail: "sairam@example.edu",
	})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorContains(t, err, "username")
	assert.ErrorContains(t, err, "sender")
	assert.NotContains(t, err.Error(), "server")
}

func TestSMTPMailer_NoRecipient(t *testing.T) {
	mailer := NewSMTPMailer(SMTPConfig{
		Server:   "smtp.example.com",
		Port:     587,
		Username: "library",
		Password: "secret",
		Sender:   "library@example.edu",
	})

	err := mailer.SendAvailabilityNotice(&entities.Reservation{ID: "RSV1", UserEmail: ""})
	assert.ErrorContains(t, err, "no email address")

	err = mailer.SendAvailabilityNotice(&entities.Reservation{ID: "RSV1", UserEmail: entities.NotProvided})
	assert.ErrorContains(t, err, "no email address")
}

func TestLogMailer(t *testing.T) {
	reservation := &entities.Reservation{ID: "RSV1", UserEmail: "x@y.z"}
	assert.NoError(t, LogMailer{}.SendReservationConfirmation(reservation))
	assert.NoError(t, LogMailer{}.SendAvailabilityNotice(reservation))
}
