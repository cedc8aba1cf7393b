package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookflow/lms/internal/accounts"
	"github.com/bookflow/lms/internal/app"
	"github.com/bookflow/lms/internal/catalog"
	"github.com/bookflow/lms/internal/ledger"
)

// respondError maps domain errors onto HTTP statuses. Anything unmapped is a
// 500 with the raw message.
func respondError(c *gin.Context, err error) {
	var alreadyBorrowed *ledger.AlreadyBorrowedError
	var alreadyReserved *ledger.AlreadyReservedError

	switch {
	case errors.As(err, &alreadyBorrowed):
		c.IndentedJSON(http.StatusConflict, gin.H{
			"error":       "you already borrowed this book",
			"borrow_date": alreadyBorrowed.BorrowDate,
			"due_date":    alreadyBorrowed.DueDate,
		})
	case errors.As(err, &alreadyReserved):
		c.IndentedJSON(http.StatusConflict, gin.H{
			"error":          "you already reserved this book",
			"reservation_id": alreadyReserved.ReservationID,
			"reserved_at":    alreadyReserved.ReservedAt,
		})
	case errors.Is(err, ledger.ErrAlreadyReturned),
		errors.Is(err, accounts.ErrDuplicateID),
		errors.Is(err, accounts.ErrDuplicateUsername),
		errors.Is(err, catalog.ErrDuplicateBookID),
		errors.Is(err, app.ErrUserHasActiveLoans),
		errors.Is(err, app.ErrBookHasActiveLoans):
		c.IndentedJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrBookNotFound),
		errors.Is(err, ledger.ErrTxnNotFound),
		errors.Is(err, catalog.ErrBookNotFound),
		errors.Is(err, accounts.ErrUserNotFound),
		errors.Is(err, app.ErrUserNotFound):
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, app.ErrInvalidCredentials):
		c.IndentedJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrUnavailable),
		errors.Is(err, ledger.ErrNotBorrowable),
		errors.Is(err, ledger.ErrInvalidEmail),
		errors.Is(err, catalog.ErrUnknownProgramme),
		errors.Is(err, accounts.ErrMissingFields),
		errors.Is(err, accounts.ErrUsernameTooShort),
		errors.Is(err, accounts.ErrPasswordTooShort),
		errors.Is(err, accounts.ErrPasswordMismatch),
		errors.Is(err, accounts.ErrInvalidStudentID),
		errors.Is(err, accounts.ErrInvalidTeacherID),
		errors.Is(err, accounts.ErrUnknownProgramme):
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// userView strips credential material from a directory record before it goes
// over the wire.
func userView(id, username, name, contact, email, programme string) gin.H {
	view := gin.H{
		"id":       id,
		"username": username,
		"name":     name,
		"contact":  contact,
		"email":    email,
	}
	if programme != "" {
		view["programme"] = programme
	}
	return view
}
