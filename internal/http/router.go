package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bookflow/lms/internal/app"
	"github.com/bookflow/lms/internal/auth"
	"github.com/bookflow/lms/internal/entities"
)

// RouterConfig carries the dependencies the router wires into controllers.
type RouterConfig struct {
	App            *app.App
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	DataPath       string
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cfg.SessionManager.SessionLoadSave())
	router.Use(cfg.AuthMiddleware.Handler())

	healthController := NewHealthController(cfg.DataPath, cfg.Version)
	router.GET("/health", healthController.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.String(200, "pong")
	})

	authController := NewAuthController(cfg.App, cfg.SessionManager)
	router.POST("/api/auth/login", authController.Login)
	router.POST("/api/auth/logout", authController.Logout)
	router.POST("/api/auth/register", authController.Register)
	router.GET("/api/auth/session", authController.Session)

	requireAuth := cfg.AuthMiddleware.RequireAuth()
	staffOnly := cfg.AuthMiddleware.RequireRole(entities.RoleTeacher, entities.RoleAdmin)
	adminOnly := cfg.AuthMiddleware.RequireRole(entities.RoleAdmin)

	catalogController := NewCatalogController(cfg.App)
	catalogRoutes := router.Group("/api/catalog", requireAuth)
	{
		catalogRoutes.GET("/programmes", catalogController.GetProgrammes)
		catalogRoutes.GET("/books", catalogController.GetProgrammeBooks)
		catalogRoutes.GET("/books/:id", catalogController.GetBook)
		catalogRoutes.GET("/collections", catalogController.GetCollections)
		catalogRoutes.GET("/collections/:name", catalogController.GetCollectionItems)
		catalogRoutes.GET("/subjects", catalogController.GetSubjects)
		catalogRoutes.GET("/search", catalogController.Search)
	}
	router.GET("/api/catalog/teacher-books", staffOnly, catalogController.GetTeacherBooks)

	lendingController := NewLendingController(cfg.App)
	lendingRoutes := router.Group("/api", requireAuth)
	{
		lendingRoutes.POST("/borrows", lendingController.Borrow)
		lendingRoutes.POST("/borrows/:id/return", lendingController.Return)
		lendingRoutes.GET("/borrows", lendingController.GetActiveBorrows)
		lendingRoutes.GET("/borrows/history", lendingController.GetHistory)
		lendingRoutes.POST("/reservations", lendingController.Reserve)
		lendingRoutes.DELETE("/reservations/:id", lendingController.CancelReservation)
		lendingRoutes.GET("/reservations", lendingController.GetReservations)
		lendingRoutes.PUT("/profile/email", lendingController.UpdateEmail)
	}

	adminController := NewAdminController(cfg.App)
	adminRoutes := router.Group("/api/admin", adminOnly)
	{
		adminRoutes.GET("/users", adminController.GetUsers)
		adminRoutes.POST("/users", adminController.CreateUser)
		adminRoutes.PUT("/users/:id", adminController.UpdateUser)
		adminRoutes.DELETE("/users/:id", adminController.DeleteUser)
		adminRoutes.POST("/books", adminController.AddBook)
		adminRoutes.PUT("/books/:id", adminController.EditBook)
		adminRoutes.DELETE("/books/:id", adminController.DeleteBook)
		adminRoutes.GET("/transactions", adminController.GetTransactions)
		adminRoutes.POST("/reservations/sweep", adminController.RunReservationSweep)
	}

	return router
}
