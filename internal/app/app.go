// Package app wires the directory, catalog, ledger and mailer together and
// owns the persistence discipline: every mutating operation runs under one
// lock and flushes the whole document before returning.
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/bookflow/lms/internal/accounts"
	"github.com/bookflow/lms/internal/catalog"
	"github.com/bookflow/lms/internal/entities"
	"github.com/bookflow/lms/internal/ledger"
	"github.com/bookflow/lms/internal/notify"
	"github.com/bookflow/lms/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserHasActiveLoans = errors.New("user still holds borrowed books")
	ErrBookHasActiveLoans = errors.New("book has copies out on loan")
)

// App is the single entry point for every operation. One mutex serializes all
// access: the document is small and the atomic-save discipline matters more
// than concurrency here.
type App struct {
	mu    sync.Mutex
	state *entities.State
	store *store.Store

	catalog  *catalog.Engine
	accounts *accounts.Directory
	ledger   *ledger.Ledger
	mailer   notify.Mailer
}

func New(s *store.Store, mailer notify.Mailer) (*App, error) {
	state, err := s.Load()
	if err != nil {
		return nil, fmt.Errorf("loading library data: %w", err)
	}
	engine := catalog.NewEngine(&state.Books)
	a := &App{
		state:    state,
		store:    s,
		catalog:  engine,
		accounts: accounts.NewDirectory(&state.Users),
		ledger:   ledger.New(state, engine),
		mailer:   mailer,
	}
	return a, nil
}

// flush writes the document back. Called with the lock held, after every
// mutation.
func (a *App) flush() error {
	if err := a.store.Save(a.state); err != nil {
		return fmt.Errorf("persisting library data: %w", err)
	}
	return nil
}

// Login authenticates a user against one role partition.
func (a *App) Login(username, password string, role entities.Role) (*entities.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	user := a.accounts.Authenticate(username, password, role)
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a new account and persists it.
func (a *App) Register(reg accounts.Registration, role entities.Role) (*entities.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	user, err := a.accounts.Register(reg, role)
	if err != nil {
		return nil, err
	}
	return user, a.flush()
}

// User returns the directory record for an id.
func (a *App) User(id string) (*entities.User, entities.Role, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	user, role, ok := a.accounts.FindByID(id)
	if !ok {
		return nil, "", ErrUserNotFound
	}
	return user, role, nil
}

// UpdateEmail changes a user's email address.
func (a *App) UpdateEmail(userID, email string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.accounts.UpdateEmail(userID, email); err != nil {
		return err
	}
	return a.flush()
}

// UpdateUser applies an admin edit to a directory record, including password
// resets, and persists it.
func (a *App) UpdateUser(id string, upd accounts.ProfileUpdate) (*entities.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	user, err := a.accounts.UpdateUser(id, upd)
	if err != nil {
		return nil, err
	}
	return user, a.flush()
}

// Users lists one role partition.
func (a *App) Users(role entities.Role) []*entities.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Users.Partition(role)
}

// DeleteUser removes an account, refusing while the user still holds books.
func (a *App) DeleteUser(id string, role entities.Role) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, _, ok := a.accounts.FindByID(id); !ok {
		return ErrUserNotFound
	}
	if a.ledger.HasActiveBorrows(id) {
		return ErrUserHasActiveLoans
	}
	if err := a.accounts.Delete(id, role); err != nil {
		return err
	}
	return a.flush()
}

// Borrow checks out a book for the user and persists the new loan.
func (a *App) Borrow(userID, bookID string) (*entities.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	user, _, ok := a.accounts.FindByID(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	txn, err := a.ledger.Borrow(user, bookID)
	if err != nil {
		return nil, err
	}
	return txn, a.flush()
}

// Return closes a loan and persists the fine and restock. A non-empty
// ownerID restricts the return to that user's own transactions; the admin
// passes an empty string.
func (a *App) Return(transactionID int, ownerID string) (*entities.Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ownerID != "" {
		owned := false
		for _, txn := range a.state.Transactions {
			if txn.ID == transactionID && txn.UserID == ownerID {
				owned = true
				break
			}
		}
		if !owned {
			return nil, ledger.ErrTxnNotFound
		}
	}
	txn, err := a.ledger.Return(transactionID)
	if err != nil {
		return nil, err
	}
	return txn, a.flush()
}

// ReservationOutcome reports what happened to a new reservation. The record
// is durable before any email goes out, so EmailSent false still means the
// reservation stands.
type ReservationOutcome struct {
	Reservation *entities.Reservation
	EmailSent   bool
}

// Reserve places a waitlist entry, persists it, then tries to email a
// confirmation. The send runs on a snapshot after the lock is released, so a
// slow relay never stalls other operations. Email failure is logged and
// reported, never fatal.
func (a *App) Reserve(userID, bookID, email string) (*ReservationOutcome, error) {
	reservation, err := a.placeReservation(userID, bookID, email)
	if err != nil {
		return nil, err
	}

	outcome := &ReservationOutcome{Reservation: reservation}
	record := *reservation
	if err := a.mailer.SendReservationConfirmation(&record); err != nil {
		log.Printf("reservation %s recorded but confirmation email failed: %v", record.ID, err)
	} else {
		outcome.EmailSent = true
	}
	return outcome, nil
}

// placeReservation is the locked half of Reserve: record the waitlist entry,
// update the profile email and flush.
func (a *App) placeReservation(userID, bookID, email string) (*entities.Reservation, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	user, _, ok := a.accounts.FindByID(userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	reservation, err := a.ledger.Reserve(user, bookID, email)
	if err != nil {
		return nil, err
	}
	if user.Email != email {
		user.Email = email
	}
	if err := a.flush(); err != nil {
		return nil, err
	}
	return reservation, nil
}

// CancelReservation withdraws a waitlist entry.
func (a *App) CancelReservation(reservationID, userID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.ledger.CancelReservation(reservationID, userID); err != nil {
		return err
	}
	return a.flush()
}

// RunReservationSweep emails every waiting reservation whose book is back on
// the shelf and marks the notified ones. Returns how many were notified.
// The sends run on snapshots outside the lock; a failed send leaves its
// reservation waiting for the next run.
func (a *App) RunReservationSweep() int {
	a.mu.Lock()
	due := a.ledger.FulfillableReservations()
	pending := make([]entities.Reservation, len(due))
	for i, reservation := range due {
		pending[i] = *reservation
	}
	a.mu.Unlock()

	var notified []string
	for i := range pending {
		if err := a.mailer.SendAvailabilityNotice(&pending[i]); err != nil {
			log.Printf("availability email for %s failed: %v", pending[i].ID, err)
			continue
		}
		notified = append(notified, pending[i].ID)
	}
	if len(notified) == 0 {
		return 0
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for _, id := range notified {
		a.ledger.MarkNotified(id)
	}
	if err := a.flush(); err != nil {
		log.Printf("persisting reservation sweep: %v", err)
	}
	return len(notified)
}

// AddBook inserts a catalog entry.
func (a *App) AddBook(book *entities.Book) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.catalog.AddBook(book); err != nil {
		return err
	}
	return a.flush()
}

// EditBook applies an edit to a catalog entry.
func (a *App) EditBook(id string, apply func(*entities.Book)) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.catalog.EditBook(id, apply); err != nil {
		return err
	}
	return a.flush()
}

// DeleteBook removes a catalog entry, refusing while copies are out on loan.
func (a *App) DeleteBook(id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if open := a.ledger.BorrowersOf(id); len(open) > 0 {
		return fmt.Errorf("%w: %d open loan(s)", ErrBookHasActiveLoans, len(open))
	}
	if err := a.catalog.DeleteBook(id); err != nil {
		return err
	}
	return a.flush()
}

// Catalog queries. Reads still lock: the underlying slices are shared with
// mutating operations.

func (a *App) ProgrammeBooks(programme string) []*entities.Book {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.ProgrammeBooks(programme)
}

func (a *App) TeacherBooks() []*entities.Book {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.TeacherBooks()
}

func (a *App) Collections() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.Collections()
}

func (a *App) CollectionItems(name string) []*entities.Book {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.CollectionItems(name)
}

func (a *App) Subjects() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.Subjects()
}

func (a *App) Search(term string, scope catalog.Scope) []*entities.Book {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.Search(term, scope)
}

func (a *App) FilterBySubject(subject string, scope catalog.Scope) []*entities.Book {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.FilterBySubject(subject, scope)
}

func (a *App) FindBook(id string) (*entities.Book, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.FindBook(id)
}

// Ledger queries.

func (a *App) ActiveBorrows(userID string) []*entities.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.ActiveBorrows(userID)
}

func (a *App) History(userID string) []*entities.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.History(userID)
}

func (a *App) AllTransactions() []*entities.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.All()
}

func (a *App) Reservations(userID string) []*entities.Reservation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Reservations(userID)
}
