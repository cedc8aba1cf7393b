package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookflow/lms/internal/app"
	"github.com/bookflow/lms/internal/auth"
	"github.com/bookflow/lms/internal/config"
	http_controllers "github.com/bookflow/lms/internal/http"
	"github.com/bookflow/lms/internal/notify"
	"github.com/bookflow/lms/internal/scheduler"
	"github.com/bookflow/lms/internal/store"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting BookFlow v%s", version)

	documentStore := store.New(cfg.Database.Path, store.Bootstrap{
		AdminID:       cfg.Admin.ID,
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
		AdminName:     cfg.Admin.Name,
		AdminEmail:    cfg.Admin.Email,
		AdminContact:  cfg.Admin.Contact,
	})

	var mailer notify.Mailer
	smtpConfig := notify.SMTPConfig{
		Server:   cfg.SMTP.Server,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		Sender:   cfg.SMTP.Sender,
	}
	if smtpConfig.Complete() {
		log.Printf("SMTP configured, reservation emails go through %s:%d", cfg.SMTP.Server, cfg.SMTP.Port)
		mailer = notify.NewSMTPMailer(smtpConfig)
	} else {
		log.Printf("WARNING: SMTP is not fully configured. Reservation emails will be logged, not sent. Set 'BOOKFLOW_SMTP_SERVER' and related variables to enable.")
		mailer = notify.LogMailer{}
	}

	application, err := app.New(documentStore, mailer)
	if err != nil {
		log.Fatalf("Failed to initialize library: %v", err)
	}
	log.Printf("Library data loaded from %s", documentStore.Path())

	sessionManager := auth.NewSessionManager(cfg.Sessions.Lifetime)
	authMiddleware := auth.NewMiddleware(sessionManager)

	// Periodic reservation sweep: email holders whose book came back
	var sweepScheduler *scheduler.ReservationSweepScheduler
	if cfg.Reservations.SweepEnabled {
		sweepScheduler = scheduler.NewReservationSweepScheduler(application, cfg.Reservations.SweepSchedule)
		if err := sweepScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start reservation sweep: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		App:            application,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleware,
		DataPath:       cfg.Database.Path,
		Version:        version,
	})

	onShutdown := func(ctx context.Context) {
		if sweepScheduler != nil {
			sweepScheduler.Stop()
		}
	}

	Serve(router, cfg, onShutdown)
}
