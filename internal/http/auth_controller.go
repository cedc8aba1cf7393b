package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookflow/lms/internal/accounts"
	"github.com/bookflow/lms/internal/app"
	"github.com/bookflow/lms/internal/auth"
	"github.com/bookflow/lms/internal/entities"
)

type AuthController struct {
	app      *app.App
	sessions *auth.SessionManager
}

func NewAuthController(application *app.App, sessions *auth.SessionManager) *AuthController {
	return &AuthController{app: application, sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func (controller *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role := entities.Role(req.Role)
	if !role.Valid() {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	user, err := controller.app.Login(req.Username, req.Password, role)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := controller.sessions.CreateSession(c.Request, user, role); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"user": userView(user.ID, user.Username, user.Name, user.Contact, user.Email, user.Programme),
		"role": role,
	})
}

func (controller *AuthController) Logout(c *gin.Context) {
	if err := controller.sessions.DestroySession(c.Request); err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": "could not destroy session"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"status": "logged out"})
}

type registerRequest struct {
	ID              string `json:"id" binding:"required"`
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Contact         string `json:"contact"`
	Email           string `json:"email"`
	Programme       string `json:"programme"`
	Role            string `json:"role" binding:"required"`
}

func (controller *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role := entities.Role(req.Role)
	// Admin accounts only come from the environment bootstrap
	if role != entities.RoleStudent && role != entities.RoleTeacher {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "role must be student or teacher"})
		return
	}

	user, err := controller.app.Register(accounts.Registration{
		ID:              req.ID,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Name:            req.Name,
		Contact:         req.Contact,
		Email:           req.Email,
		Programme:       req.Programme,
	}, role)
	if err != nil {
		respondError(c, err)
		return
	}

	c.IndentedJSON(http.StatusCreated, gin.H{
		"user": userView(user.ID, user.Username, user.Name, user.Contact, user.Email, user.Programme),
		"role": role,
	})
}

// Session reports who the current session belongs to.
func (controller *AuthController) Session(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.IndentedJSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	user, role, err := controller.app.User(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{
		"user": userView(user.ID, user.Username, user.Name, user.Contact, user.Email, user.Programme),
		"role": role,
	})
}
