// Package ledger tracks the lending lifecycle: borrows, returns, late fines
// and the reservation waitlist.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bookflow/lms/internal/catalog"
	"github.com/bookflow/lms/internal/entities"
)

const (
	// LoanDays is the length of every loan.
	LoanDays = 14
	// FinePerDay is charged for each day past the due date, in rupees.
	FinePerDay = 10
)

var (
	ErrBookNotFound    = errors.New("book not found")
	ErrNotBorrowable   = errors.New("this title is reference-only and cannot be borrowed")
	ErrUnavailable     = errors.New("no copies available")
	ErrAlreadyReturned = errors.New("this book has already been returned")
	ErrTxnNotFound     = errors.New("transaction not found")
	ErrInvalidEmail    = errors.New("invalid email address")
)

// AlreadyBorrowedError rejects a second concurrent borrow of the same title
// by the same user, carrying the dates of the open loan for the UI.
type AlreadyBorrowedError struct {
	BorrowDate string
	DueDate    string
}

func (e *AlreadyBorrowedError) Error() string {
	return fmt.Sprintf("already borrowed on %s, due %s", e.BorrowDate, e.DueDate)
}

// AlreadyReservedError rejects a duplicate reservation, carrying the open
// reservation's details.
type AlreadyReservedError struct {
	ReservationID string
	ReservedAt    string
}

func (e *AlreadyReservedError) Error() string {
	return fmt.Sprintf("already reserved (%s) at %s", e.ReservationID, e.ReservedAt)
}

// Ledger operates on the transaction and reservation lists of the shared
// document. The clock is injectable so fine math is testable.
type Ledger struct {
	state   *entities.State
	catalog *catalog.Engine
	clock   func() time.Time
}

func New(state *entities.State, engine *catalog.Engine) *Ledger {
	return &Ledger{state: state, catalog: engine, clock: time.Now}
}

// WithClock overrides the time source. Test hook.
func (l *Ledger) WithClock(clock func() time.Time) *Ledger {
	l.clock = clock
	return l
}

func (l *Ledger) nextTransactionID() int {
	max := 0
	for _, txn := range l.state.Transactions {
		if txn.ID > max {
			max = txn.ID
		}
	}
	return max + 1
}

// openLoan finds the user's active transaction for a book, if any.
func (l *Ledger) openLoan(userID, bookID string) *entities.Transaction {
	for _, txn := range l.state.Transactions {
		if txn.UserID == userID && txn.BookID == bookID && txn.Status == entities.StatusBorrowed {
			return txn
		}
	}
	return nil
}

// Borrow checks out one copy for the user. The availability counter and the
// new transaction move together or not at all.
func (l *Ledger) Borrow(user *entities.User, bookID string) (*entities.Transaction, error) {
	book, ok := l.catalog.FindBook(bookID)
	if !ok {
		return nil, ErrBookNotFound
	}
	if !book.Borrowable {
		return nil, ErrNotBorrowable
	}
	if open := l.openLoan(user.ID, bookID); open != nil {
		return nil, &AlreadyBorrowedError{BorrowDate: open.BorrowDate, DueDate: open.DueDate}
	}
	if book.Available <= 0 {
		return nil, ErrUnavailable
	}

	now := l.clock()
	txn := &entities.Transaction{
		ID:            l.nextTransactionID(),
		UserID:        user.ID,
		UserName:      user.Name,
		BookID:        book.ID,
		BookTitle:     book.Title,
		BookProgramme: book.Programme,
		BorrowDate:    now.Format(entities.DateLayout),
		DueDate:       now.AddDate(0, 0, LoanDays).Format(entities.DateLayout),
		Status:        entities.StatusBorrowed,
	}

	if err := l.catalog.AdjustAvailability(book.ID, -1); err != nil {
		return nil, err
	}
	l.state.Transactions = append(l.state.Transactions, txn)
	return txn, nil
}

// Return closes a transaction, computes the late fine and restocks the copy.
// If the book was deleted from the catalog in the meantime the restock is
// skipped silently: the return itself must still succeed.
func (l *Ledger) Return(transactionID int) (*entities.Transaction, error) {
	var txn *entities.Transaction
	for _, t := range l.state.Transactions {
		if t.ID == transactionID {
			txn = t
			break
		}
	}
	if txn == nil {
		return nil, ErrTxnNotFound
	}
	if txn.Status == entities.StatusReturned {
		return nil, ErrAlreadyReturned
	}

	now := l.clock()
	txn.ReturnDate = now.Format(entities.DateLayout)
	txn.Status = entities.StatusReturned
	txn.Fine = lateFine(txn.DueDate, now)

	if book, ok := l.catalog.FindLendable(txn.BookProgramme, txn.BookID); ok && book.Available < book.Copies {
		if err := l.catalog.AdjustAvailability(book.ID, 1); err != nil {
			return nil, err
		}
	}
	return txn, nil
}

// lateFine charges FinePerDay for every full day past the due date. An
// unparseable due date charges nothing.
func lateFine(dueDate string, returnedAt time.Time) int {
	due, err := time.Parse(entities.DateLayout, dueDate)
	if err != nil {
		return 0
	}
	returned, err := time.Parse(entities.DateLayout, returnedAt.Format(entities.DateLayout))
	if err != nil {
		return 0
	}
	daysLate := int(returned.Sub(due).Hours() / 24)
	if daysLate <= 0 {
		return 0
	}
	return daysLate * FinePerDay
}

// Reserve puts the user on the waitlist for a book with no available copies.
// The email is stored with the reservation so notification still works if the
// user later changes their profile address.
func (l *Ledger) Reserve(user *entities.User, bookID, email string) (*entities.Reservation, error) {
	book, ok := l.catalog.FindBook(bookID)
	if !ok {
		return nil, ErrBookNotFound
	}
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, ErrInvalidEmail
	}
	for _, r := range l.state.Reservations {
		if r.UserID == user.ID && r.BookID == bookID && r.Status == entities.ReservationWaiting {
			return nil, &AlreadyReservedError{ReservationID: r.ID, ReservedAt: r.ReservedAt}
		}
	}

	now := l.clock()
	reservation := &entities.Reservation{
		ID:         fmt.Sprintf("RSV%s%03d", now.Format("20060102150405"), (len(l.state.Reservations)+1)%1000),
		BookID:     book.ID,
		BookTitle:  book.Title,
		Programme:  book.Programme,
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  email,
		Status:     entities.ReservationWaiting,
		ReservedAt: now.Format(entities.DateTimeLayout),
	}
	l.state.Reservations = append(l.state.Reservations, reservation)
	return reservation, nil
}

// CancelReservation marks a waiting reservation cancelled.
func (l *Ledger) CancelReservation(reservationID, userID string) error {
	for _, r := range l.state.Reservations {
		if r.ID == reservationID && r.UserID == userID && r.Status == entities.ReservationWaiting {
			r.Status = entities.ReservationCancelled
			return nil
		}
	}
	return ErrTxnNotFound
}

// ActiveBorrows lists the user's open loans.
func (l *Ledger) ActiveBorrows(userID string) []*entities.Transaction {
	var active []*entities.Transaction
	for _, txn := range l.state.Transactions {
		if txn.UserID == userID && txn.Status == entities.StatusBorrowed {
			active = append(active, txn)
		}
	}
	return active
}

// History lists every transaction of the user, open and closed.
func (l *Ledger) History(userID string) []*entities.Transaction {
	var history []*entities.Transaction
	for _, txn := range l.state.Transactions {
		if txn.UserID == userID {
			history = append(history, txn)
		}
	}
	return history
}

// All returns every transaction in the ledger.
func (l *Ledger) All() []*entities.Transaction {
	return l.state.Transactions
}

// BorrowersOf lists the open loans against one book. Used by the admin delete
// guard.
func (l *Ledger) BorrowersOf(bookID string) []*entities.Transaction {
	var open []*entities.Transaction
	for _, txn := range l.state.Transactions {
		if txn.BookID == bookID && txn.Status == entities.StatusBorrowed {
			open = append(open, txn)
		}
	}
	return open
}

// HasActiveBorrows reports whether the user holds any open loan.
func (l *Ledger) HasActiveBorrows(userID string) bool {
	return len(l.ActiveBorrows(userID)) > 0
}

// Reservations lists the user's waitlist entries.
func (l *Ledger) Reservations(userID string) []*entities.Reservation {
	var mine []*entities.Reservation
	for _, r := range l.state.Reservations {
		if r.UserID == userID {
			mine = append(mine, r)
		}
	}
	return mine
}

// FulfillableReservations returns the waiting reservations whose book has a
// copy available again, oldest first per the list order.
func (l *Ledger) FulfillableReservations() []*entities.Reservation {
	var due []*entities.Reservation
	for _, r := range l.state.Reservations {
		if r.Status != entities.ReservationWaiting {
			continue
		}
		book, ok := l.catalog.FindBook(r.BookID)
		if !ok || book.Available <= 0 {
			continue
		}
		due = append(due, r)
	}
	return due
}

// MarkNotified flips a reservation to notified once the holder was emailed.
func (l *Ledger) MarkNotified(reservationID string) {
	for _, r := range l.state.Reservations {
		if r.ID == reservationID {
			r.Status = entities.ReservationNotified
			return
		}
	}
}
