package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookflow/lms/internal/accounts"
	"github.com/bookflow/lms/internal/app"
	"github.com/bookflow/lms/internal/entities"
)

type AdminController struct {
	app *app.App
}

func NewAdminController(application *app.App) *AdminController {
	return &AdminController{app: application}
}

func (controller *AdminController) GetUsers(c *gin.Context) {
	role := entities.Role(c.Query("role"))
	if !role.Valid() {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "role query parameter must be student, teacher or admin"})
		return
	}

	users := controller.app.Users(role)
	views := make([]gin.H, 0, len(users))
	for _, user := range users {
		views = append(views, userView(user.ID, user.Username, user.Name, user.Contact, user.Email, user.Programme))
	}
	c.IndentedJSON(http.StatusOK, gin.H{"users": views, "count": len(views)})
}

type userCreateRequest struct {
	Role      string `json:"role" binding:"required"`
	ID        string `json:"id" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Contact   string `json:"contact"`
	Email     string `json:"email"`
	Programme string `json:"programme"`
}

// CreateUser adds an account directly, bypassing the self-service signup
// flow. The same validation applies.
func (controller *AdminController) CreateUser(c *gin.Context) {
	var req userCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role := entities.Role(req.Role)
	if role != entities.RoleStudent && role != entities.RoleTeacher {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "role must be student or teacher"})
		return
	}

	user, err := controller.app.Register(accounts.Registration{
		ID:              req.ID,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.Password,
		Name:            req.Name,
		Contact:         req.Contact,
		Email:           req.Email,
		Programme:       req.Programme,
	}, role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, userView(user.ID, user.Username, user.Name, user.Contact, user.Email, user.Programme))
}

type userEditRequest struct {
	Name      *string `json:"name"`
	Contact   *string `json:"contact"`
	Email     *string `json:"email"`
	Programme *string `json:"programme"`
	Password  *string `json:"password"`
}

// UpdateUser edits a directory record. A non-nil password resets the
// credential.
func (controller *AdminController) UpdateUser(c *gin.Context) {
	var req userEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := controller.app.UpdateUser(c.Param("id"), accounts.ProfileUpdate{
		Name:        req.Name,
		Contact:     req.Contact,
		Email:       req.Email,
		Programme:   req.Programme,
		NewPassword: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, userView(user.ID, user.Username, user.Name, user.Contact, user.Email, user.Programme))
}

func (controller *AdminController) DeleteUser(c *gin.Context) {
	role := entities.Role(c.Query("role"))
	if role != entities.RoleStudent && role != entities.RoleTeacher {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "role query parameter must be student or teacher"})
		return
	}
	if err := controller.app.DeleteUser(c.Param("id"), role); err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": "deleted"})
}

type bookRequest struct {
	ID          string `json:"id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Author      string `json:"author" binding:"required"`
	Copies      int    `json:"copies"`
	Subject     string `json:"subject"`
	Format      string `json:"format"`
	IssueDate   string `json:"issue_date"`
	PDFURL      string `json:"pdf_url"`
	Programme   string `json:"programme"`
	Collection  string `json:"collection"`
	Borrowable  *bool  `json:"borrowable"`
	CatalogType string `json:"catalog_type"`
}

func (controller *AdminController) AddBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	borrowable := true
	if req.Borrowable != nil {
		borrowable = *req.Borrowable
	}
	book := &entities.Book{
		ID:          req.ID,
		Title:       req.Title,
		Author:      req.Author,
		Copies:      req.Copies,
		Available:   req.Copies,
		Borrowable:  borrowable,
		Subject:     req.Subject,
		Format:      req.Format,
		IssueDate:   req.IssueDate,
		PDFURL:      req.PDFURL,
		Programme:   req.Programme,
		Collection:  req.Collection,
		CatalogType: entities.CatalogType(req.CatalogType),
	}
	if err := controller.app.AddBook(book); err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, book)
}

type bookEditRequest struct {
	Title   *string `json:"title"`
	Author  *string `json:"author"`
	Copies  *int    `json:"copies"`
	Subject *string `json:"subject"`
	PDFURL  *string `json:"pdf_url"`
}

func (controller *AdminController) EditBook(c *gin.Context) {
	var req bookEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := controller.app.EditBook(c.Param("id"), func(book *entities.Book) {
		if req.Title != nil {
			book.Title = *req.Title
		}
		if req.Author != nil {
			book.Author = *req.Author
		}
		if req.Copies != nil {
			// Availability follows the copy delta so open loans stay counted
			delta := *req.Copies - book.Copies
			book.Copies = *req.Copies
			book.Available += delta
		}
		if req.Subject != nil {
			book.Subject = *req.Subject
		}
		if req.PDFURL != nil {
			book.PDFURL = *req.PDFURL
		}
	})
	if err != nil {
		respondError(c, err)
		return
	}

	book, _ := controller.app.FindBook(c.Param("id"))
	c.IndentedJSON(http.StatusOK, book)
}

func (controller *AdminController) DeleteBook(c *gin.Context) {
	if err := controller.app.DeleteBook(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (controller *AdminController) GetTransactions(c *gin.Context) {
	transactions := controller.app.AllTransactions()
	active := 0
	fines := 0
	for _, txn := range transactions {
		if txn.Status == entities.StatusBorrowed {
			active++
		}
		fines += txn.Fine
	}
	c.IndentedJSON(http.StatusOK, gin.H{
		"transactions": transactions,
		"count":        len(transactions),
		"active":       active,
		"total_fines":  fines,
	})
}

// RunReservationSweep triggers the availability-notification pass on demand,
// outside its cron schedule.
func (controller *AdminController) RunReservationSweep(c *gin.Context) {
	notified := controller.app.RunReservationSweep()
	c.IndentedJSON(http.StatusOK, gin.H{"notified": notified})
}
