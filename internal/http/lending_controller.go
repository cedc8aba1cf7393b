package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookflow/lms/internal/app"
	"github.com/bookflow/lms/internal/auth"
	"github.com/bookflow/lms/internal/entities"
)

type LendingController struct {
	app *app.App
}

func NewLendingController(application *app.App) *LendingController {
	return &LendingController{app: application}
}

type borrowRequest struct {
	BookID string `json:"book_id" binding:"required"`
}

func (controller *LendingController) Borrow(c *gin.Context) {
	var req borrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := controller.app.Borrow(auth.GetUserID(c), req.BookID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, gin.H{"transaction": txn})
}

func (controller *LendingController) Return(c *gin.Context) {
	transactionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "transaction id must be a number"})
		return
	}

	// Users close their own loans; the admin closes anyone's.
	ownerID := auth.GetUserID(c)
	if auth.GetUserRole(c) == entities.RoleAdmin {
		ownerID = ""
	}
	txn, err := controller.app.Return(transactionID, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"transaction": txn})
}

func (controller *LendingController) GetActiveBorrows(c *gin.Context) {
	borrows := controller.app.ActiveBorrows(auth.GetUserID(c))
	c.IndentedJSON(http.StatusOK, gin.H{"borrows": borrows, "count": len(borrows)})
}

func (controller *LendingController) GetHistory(c *gin.Context) {
	history := controller.app.History(auth.GetUserID(c))
	c.IndentedJSON(http.StatusOK, gin.H{"transactions": history, "count": len(history)})
}

type reserveRequest struct {
	BookID string `json:"book_id" binding:"required"`
	Email  string `json:"email" binding:"required"`
}

func (controller *LendingController) Reserve(c *gin.Context) {
	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := controller.app.Reserve(auth.GetUserID(c), req.BookID, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, gin.H{
		"reservation": outcome.Reservation,
		"email_sent":  outcome.EmailSent,
	})
}

func (controller *LendingController) CancelReservation(c *gin.Context) {
	if err := controller.app.CancelReservation(c.Param("id"), auth.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func (controller *LendingController) GetReservations(c *gin.Context) {
	reservations := controller.app.Reservations(auth.GetUserID(c))
	c.IndentedJSON(http.StatusOK, gin.H{"reservations": reservations, "count": len(reservations)})
}

type updateEmailRequest struct {
	Email string `json:"email"`
}

func (controller *LendingController) UpdateEmail(c *gin.Context) {
	var req updateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := controller.app.UpdateEmail(auth.GetUserID(c), req.Email); err != nil {
		respondError(c, err)
		return
	}
	user, _, err := controller.app.User(auth.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{
		"user": userView(user.ID, user.Username, user.Name, user.Contact, user.Email, user.Programme),
	})
}
