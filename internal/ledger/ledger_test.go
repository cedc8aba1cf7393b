package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookflow/lms/internal/catalog"
	"github.com/bookflow/lms/internal/entities"
)

func fixedClock(value string) func() time.Time {
	parsed, err := time.Parse(entities.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return parsed }
}

func newTestLedger(t *testing.T) (*Ledger, *catalog.Engine, *entities.State) {
	t.Helper()
	state := &entities.State{}
	engine := catalog.NewEngine(&state.Books)
	require.True(t, engine.SeedDefaults())
	engine.Normalize()
	ledger := New(state, engine).WithClock(fixedClock("2025-01-01"))
	return ledger, engine, state
}

func testStudent() *entities.User {
	return &entities.User{
		ID:        "E25CSEU1187",
		Username:  "sairam",
		Name:      "Sai Ram",
		Email:     "sairam@example.edu",
		Programme: "B.Tech (Computer Science Engineering)",
	}
}

func TestBorrow(t *testing.T) {
	ledger, engine, state := newTestLedger(t)
	user := testStudent()

	book, ok := engine.FindBook("GEN001")
	require.True(t, ok)
	before := book.Available

	txn, err := ledger.Borrow(user, "GEN001")
	require.NoError(t, err)

	assert.Equal(t, 1, txn.ID)
	assert.Equal(t, "2025-01-01", txn.BorrowDate)
	assert.Equal(t, "2025-01-15", txn.DueDate)
	assert.Equal(t, entities.StatusBorrowed, txn.Status)
	assert.Equal(t, "General Library", txn.BookProgramme)
	assert.Equal(t, before-1, book.Available)
	assert.Len(t, state.Transactions, 1)
}

func TestBorrow_Rejections(t *testing.T) {
	ledger, engine, _ := newTestLedger(t)
	user := testStudent()

	_, err := ledger.Borrow(user, "NOPE")
	assert.ErrorIs(t, err, ErrBookNotFound)

	// Reference-only collection items cannot leave the library.
	_, err = ledger.Borrow(user, "MAG001")
	assert.ErrorIs(t, err, ErrNotBorrowable)

	_, err = ledger.Borrow(user, "GEN001")
	require.NoError(t, err)

	var already *AlreadyBorrowedError
	_, err = ledger.Borrow(user, "GEN001")
	require.ErrorAs(t, err, &already)
	assert.Equal(t, "2025-01-01", already.BorrowDate)
	assert.Equal(t, "2025-01-15", already.DueDate)

	// Empty shelf: a different user gets turned away.
	book, _ := engine.FindBook("GEN001")
	for book.Available > 0 {
		require.NoError(t, engine.AdjustAvailability("GEN001", -1))
	}
	other := testStudent()
	other.ID = "B24ECE0045"
	other.Name = "Other Student"
	_, err = ledger.Borrow(other, "GEN001")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestReturn_OnTime(t *testing.T) {
	ledger, engine, _ := newTestLedger(t)
	user := testStudent()

	txn, err := ledger.Borrow(user, "GEN001")
	require.NoError(t, err)
	book, _ := engine.FindBook("GEN001")
	afterBorrow := book.Available

	ledger.WithClock(fixedClock("2025-01-15"))
	returned, err := ledger.Return(txn.ID)
	require.NoError(t, err)

	assert.Equal(t, entities.StatusReturned, returned.Status)
	assert.Equal(t, "2025-01-15", returned.ReturnDate)
	assert.Zero(t, returned.Fine)
	assert.Equal(t, afterBorrow+1, book.Available)
}

func TestReturn_LateFine(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	user := testStudent()

	txn, err := ledger.Borrow(user, "GEN001")
	require.NoError(t, err)
	require.Equal(t, "2025-01-15", txn.DueDate)

	// Five days late at ten rupees a day.
	ledger.WithClock(fixedClock("2025-01-20"))
	returned, err := ledger.Return(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, returned.Fine)
}

func TestReturn_Twice(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	user := testStudent()

	txn, err := ledger.Borrow(user, "GEN001")
	require.NoError(t, err)

	_, err = ledger.Return(txn.ID)
	require.NoError(t, err)

	_, err = ledger.Return(txn.ID)
	assert.ErrorIs(t, err, ErrAlreadyReturned)

	_, err = ledger.Return(999)
	assert.ErrorIs(t, err, ErrTxnNotFound)
}

func TestReturn_BookDeletedMeanwhile(t *testing.T) {
	ledger, engine, _ := newTestLedger(t)
	user := testStudent()

	txn, err := ledger.Borrow(user, "GEN001")
	require.NoError(t, err)
	require.NoError(t, engine.DeleteBook("GEN001"))

	returned, err := ledger.Return(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusReturned, returned.Status)
}

func TestReturn_ShelfAlreadyFull(t *testing.T) {
	ledger, engine, _ := newTestLedger(t)
	user := testStudent()

	txn, err := ledger.Borrow(user, "GEN001")
	require.NoError(t, err)

	// The title shrank while the copy was out, so the shelf is full again.
	require.NoError(t, engine.EditBook("GEN001", func(book *entities.Book) {
		book.Copies = book.Available
	}))

	returned, err := ledger.Return(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusReturned, returned.Status)

	book, _ := engine.FindBook("GEN001")
	assert.Equal(t, book.Copies, book.Available)
}

func TestReserve(t *testing.T) {
	ledger, _, state := newTestLedger(t)
	user := testStudent()

	reservation, err := ledger.Reserve(user, "GEN001", "sairam@example.edu")
	require.NoError(t, err)

	assert.Equal(t, "RSV20250101000000001", reservation.ID)
	assert.Equal(t, entities.ReservationWaiting, reservation.Status)
	assert.Equal(t, "2025-01-01 00:00", reservation.ReservedAt)
	assert.Equal(t, "sairam@example.edu", reservation.UserEmail)
	assert.Len(t, state.Reservations, 1)

	var already *AlreadyReservedError
	_, err = ledger.Reserve(user, "GEN001", "sairam@example.edu")
	require.ErrorAs(t, err, &already)
	assert.Equal(t, reservation.ID, already.ReservationID)

	_, err = ledger.Reserve(user, "GEN002", "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = ledger.Reserve(user, "NOPE", "sairam@example.edu")
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestCancelReservation(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	user := testStudent()

	reservation, err := ledger.Reserve(user, "GEN001", "sairam@example.edu")
	require.NoError(t, err)

	require.NoError(t, ledger.CancelReservation(reservation.ID, user.ID))
	assert.Equal(t, entities.ReservationCancelled, reservation.Status)

	// Cancelled entries cannot be cancelled again, but a fresh one can be made.
	assert.ErrorIs(t, ledger.CancelReservation(reservation.ID, user.ID), ErrTxnNotFound)
	_, err = ledger.Reserve(user, "GEN001", "sairam@example.edu")
	assert.NoError(t, err)
}

func TestFulfillableReservations(t *testing.T) {
	ledger, engine, _ := newTestLedger(t)
	user := testStudent()

	reservation, err := ledger.Reserve(user, "GEN001", "sairam@example.edu")
	require.NoError(t, err)

	// Copies on the shelf: the reservation is immediately fulfillable.
	due := ledger.FulfillableReservations()
	require.Len(t, due, 1)
	assert.Same(t, reservation, due[0])

	// Shelf drained: nothing to notify.
	book, _ := engine.FindBook("GEN001")
	for book.Available > 0 {
		require.NoError(t, engine.AdjustAvailability("GEN001", -1))
	}
	assert.Empty(t, ledger.FulfillableReservations())

	require.NoError(t, engine.AdjustAvailability("GEN001", 1))
	require.Len(t, ledger.FulfillableReservations(), 1)

	ledger.MarkNotified(reservation.ID)
	assert.Equal(t, entities.ReservationNotified, reservation.Status)
	assert.Empty(t, ledger.FulfillableReservations())
}

func TestHistoryAndGuards(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	user := testStudent()

	first, err := ledger.Borrow(user, "GEN001")
	require.NoError(t, err)
	_, err = ledger.Borrow(user, "GEN002")
	require.NoError(t, err)

	assert.Len(t, ledger.ActiveBorrows(user.ID), 2)
	assert.True(t, ledger.HasActiveBorrows(user.ID))
	assert.Len(t, ledger.BorrowersOf("GEN001"), 1)

	_, err = ledger.Return(first.ID)
	require.NoError(t, err)

	assert.Len(t, ledger.ActiveBorrows(user.ID), 1)
	assert.Len(t, ledger.History(user.ID), 2)
	assert.Empty(t, ledger.BorrowersOf("GEN001"))
	assert.False(t, ledger.HasActiveBorrows("B24ECE0045"))
}
