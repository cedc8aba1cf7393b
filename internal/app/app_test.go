package app

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookflow/lms/internal/accounts"
	"github.com/bookflow/lms/internal/entities"
	"github.com/bookflow/lms/internal/ledger"
	"github.com/bookflow/lms/internal/store"
)

// recordingMailer captures outgoing mail and can be told to fail.
type recordingMailer struct {
	confirmations []string
	notices       []string
	fail          bool
}

func (m *recordingMailer) SendReservationConfirmation(r *entities.Reservation) error {
	if m.fail {
		return errors.New("relay down")
	}
	m.confirmations = append(m.confirmations, r.ID)
	return nil
}

func (m *recordingMailer) SendAvailabilityNotice(r *entities.Reservation) error {
	if m.fail {
		return errors.New("relay down")
	}
	m.notices = append(m.notices, r.ID)
	return nil
}

func newTestApp(t *testing.T) (*App, *recordingMailer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookflow_data.json")
	s := store.New(path, store.Bootstrap{
		AdminID:       "ADM001",
		AdminUsername: "admin",
		AdminPassword: "admin123",
		AdminName:     "Administrator",
	})
	mailer := &recordingMailer{}
	application, err := New(s, mailer)
	require.NoError(t, err)
	return application, mailer
}

func TestLogin(t *testing.T) {
	application, _ := newTestApp(t)

	user, err := application.Login("sairam", "student123", entities.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "E25CSEU1187", user.ID)

	_, err = application.Login("sairam", "wrong", entities.RoleStudent)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = application.Login("sairam", "student123", entities.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	admin, err := application.Login("admin", "admin123", entities.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "ADM001", admin.ID)
}

func TestBorrowAndReturnPersist(t *testing.T) {
	application, _ := newTestApp(t)

	txn, err := application.Borrow("E25CSEU1187", "GEN001")
	require.NoError(t, err)

	// A second App over the same file sees the loan.
	reopened, err := New(store.New(application.store.Path(), store.Bootstrap{}), &recordingMailer{})
	require.NoError(t, err)
	require.Len(t, reopened.ActiveBorrows("E25CSEU1187"), 1)

	returned, err := reopened.Return(txn.ID, "E25CSEU1187")
	require.NoError(t, err)
	assert.Equal(t, entities.StatusReturned, returned.Status)
}

func TestReturn_OwnershipGuard(t *testing.T) {
	application, _ := newTestApp(t)

	txn, err := application.Borrow("E25CSEU1187", "GEN001")
	require.NoError(t, err)

	// Someone else cannot close the loan.
	_, err = application.Return(txn.ID, "B24ECE0045")
	assert.ErrorIs(t, err, ledger.ErrTxnNotFound)

	// The admin can.
	_, err = application.Return(txn.ID, "")
	assert.NoError(t, err)
}

func TestReserve_RecordSurvivesMailFailure(t *testing.T) {
	application, mailer := newTestApp(t)
	mailer.fail = true

	outcome, err := application.Reserve("E25CSEU1187", "GEN001", "sairam@example.edu")
	require.NoError(t, err)
	assert.False(t, outcome.EmailSent)
	require.Len(t, application.Reservations("E25CSEU1187"), 1)

	// The stored email address follows the reservation form.
	user, _, err := application.User("E25CSEU1187")
	require.NoError(t, err)
	assert.Equal(t, "sairam@example.edu", user.Email)

	mailer.fail = false
	outcome2, err := application.Reserve("E25CSEU1187", "GEN002", "sairam@example.edu")
	require.NoError(t, err)
	assert.True(t, outcome2.EmailSent)
	assert.Equal(t, []string{outcome2.Reservation.ID}, mailer.confirmations)
}

// stallingMailer holds the selected send until released, signalling when a
// send is in flight.
type stallingMailer struct {
	stallConfirmations bool
	stallNotices       bool
	entered            chan struct{}
	release            chan struct{}
}

func newStallingMailer() *stallingMailer {
	return &stallingMailer{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (m *stallingMailer) stall() {
	m.entered <- struct{}{}
	<-m.release
}

func (m *stallingMailer) SendReservationConfirmation(*entities.Reservation) error {
	if m.stallConfirmations {
		m.stall()
	}
	return nil
}

func (m *stallingMailer) SendAvailabilityNotice(*entities.Reservation) error {
	if m.stallNotices {
		m.stall()
	}
	return nil
}

func newStallingApp(t *testing.T, mailer *stallingMailer) *App {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookflow_data.json")
	application, err := New(store.New(path, store.Bootstrap{}), mailer)
	require.NoError(t, err)
	return application
}

func TestReserve_SlowRelayDoesNotBlockOtherUsers(t *testing.T) {
	mailer := newStallingMailer()
	mailer.stallConfirmations = true
	application := newStallingApp(t, mailer)

	type result struct {
		outcome *ReservationOutcome
		err     error
	}
	done := make(chan result, 1)
	go func() {
		outcome, err := application.Reserve("E25CSEU1187", "GEN001", "sairam@example.edu")
		done <- result{outcome, err}
	}()

	// The reservation is flushed and the send is in flight.
	<-mailer.entered

	borrowed := make(chan error, 1)
	go func() {
		_, err := application.Borrow("B24ECE0045", "GEN002")
		borrowed <- err
	}()
	select {
	case err := <-borrowed:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("borrow queued behind reservation email delivery")
	}

	close(mailer.release)
	reserved := <-done
	require.NoError(t, reserved.err)
	assert.True(t, reserved.outcome.EmailSent)
}

func TestRunReservationSweep_SlowRelayDoesNotBlockOtherUsers(t *testing.T) {
	mailer := newStallingMailer()
	mailer.stallNotices = true
	application := newStallingApp(t, mailer)

	_, err := application.Reserve("E25CSEU1187", "GEN001", "sairam@example.edu")
	require.NoError(t, err)

	notified := make(chan int, 1)
	go func() {
		notified <- application.RunReservationSweep()
	}()
	<-mailer.entered

	borrowed := make(chan error, 1)
	go func() {
		_, err := application.Borrow("B24ECE0045", "GEN002")
		borrowed <- err
	}()
	select {
	case err := <-borrowed:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("borrow queued behind availability email delivery")
	}

	close(mailer.release)
	assert.Equal(t, 1, <-notified)

	reservations := application.Reservations("E25CSEU1187")
	require.Len(t, reservations, 1)
	assert.Equal(t, entities.ReservationNotified, reservations[0].Status)
}

func TestRunReservationSweep(t *testing.T) {
	application, mailer := newTestApp(t)

	outcome, err := application.Reserve("E25CSEU1187", "GEN001", "sairam@example.edu")
	require.NoError(t, err)

	// Copies are on the shelf, so the sweep notifies immediately.
	assert.Equal(t, 1, application.RunReservationSweep())
	assert.Equal(t, []string{outcome.Reservation.ID}, mailer.notices)

	reservations := application.Reservations("E25CSEU1187")
	require.Len(t, reservations, 1)
	assert.Equal(t, entities.ReservationNotified, reservations[0].Status)

	// Nothing left to notify.
	assert.Zero(t, application.RunReservationSweep())
}

func TestRunReservationSweep_MailFailureLeavesWaiting(t *testing.T) {
	application, mailer := newTestApp(t)
	mailer.fail = true

	_, err := application.Reserve("E25CSEU1187", "GEN001", "sairam@example.edu")
	require.NoError(t, err)

	assert.Zero(t, application.RunReservationSweep())
	reservations := application.Reservations("E25CSEU1187")
	require.Len(t, reservations, 1)
	assert.Equal(t, entities.ReservationWaiting, reservations[0].Status)
}

func TestDeleteUser_ActiveLoanGuard(t *testing.T) {
	application, _ := newTestApp(t)

	txn, err := application.Borrow("E25CSEU1187", "GEN001")
	require.NoError(t, err)

	err = application.DeleteUser("E25CSEU1187", entities.RoleStudent)
	assert.ErrorIs(t, err, ErrUserHasActiveLoans)

	_, err = application.Return(txn.ID, "E25CSEU1187")
	require.NoError(t, err)

	require.NoError(t, application.DeleteUser("E25CSEU1187", entities.RoleStudent))
	_, _, err = application.User("E25CSEU1187")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteBook_ActiveLoanGuard(t *testing.T) {
	application, _ := newTestApp(t)

	txn, err := application.Borrow("E25CSEU1187", "GEN001")
	require.NoError(t, err)

	err = application.DeleteBook("GEN001")
	assert.ErrorIs(t, err, ErrBookHasActiveLoans)

	_, err = application.Return(txn.ID, "E25CSEU1187")
	require.NoError(t, err)
	assert.NoError(t, application.DeleteBook("GEN001"))
}

func TestAdminPasswordResetPersists(t *testing.T) {
	application, _ := newTestApp(t)

	password := "reset456"
	_, err := application.UpdateUser("E25CSEU1187", accounts.ProfileUpdate{NewPassword: &password})
	require.NoError(t, err)

	reopened, err := New(store.New(application.store.Path(), store.Bootstrap{}), &recordingMailer{})
	require.NoError(t, err)
	_, err = reopened.Login("sairam", "reset456", entities.RoleStudent)
	assert.NoError(t, err)
	_, err = reopened.Login("sairam", "student123", entities.RoleStudent)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterPersists(t *testing.T) {
	application, _ := newTestApp(t)

	_, err := application.Register(accounts.Registration{
		ID:              "C25AIML2001",
		Username:        "newstudent",
		Password:        "secret99",
		ConfirmPassword: "secret99",
		Name:            "New Student",
		Programme:       "BCA (Artificial Intelligence)",
	}, entities.RoleStudent)
	require.NoError(t, err)

	reopened, err := New(store.New(application.store.Path(), store.Bootstrap{}), &recordingMailer{})
	require.NoError(t, err)
	_, err = reopened.Login("newstudent", "secret99", entities.RoleStudent)
	assert.NoError(t, err)
}
