package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Sessions
		SMTP
		Admin
		Reservations
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string // Path to the JSON data file
	}

	Sessions struct {
		Lifetime time.Duration
	}

	SMTP struct {
		Server   string
		Port     int
		Username string
		Password string
		Sender   string
	}

	Admin struct {
		ID       string
		Username string
		Password string
		Name     string
		Email    string
		Contact  string
	}

	Reservations struct {
		SweepEnabled  bool
		SweepSchedule string // Cron format: "*/10 * * * *" = every 10 minutes
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("bookflow")
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("data_path", DefaultDataPath)
	v.SetDefault("session_lifetime", "12h")

	// SMTP defaults: server/credentials stay empty so mail is off until
	// explicitly configured
	v.SetDefault("smtp_server", "")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_username", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("email_sender", "")

	// Admin bootstrap defaults
	v.SetDefault("admin_id", "")
	v.SetDefault("admin_username", "")
	v.SetDefault("admin_password", "")
	v.SetDefault("admin_name", "Administrator")
	v.SetDefault("admin_email", "")
	v.SetDefault("admin_contact", "")

	// Reservation sweep defaults
	v.SetDefault("reservation_sweep_enabled", true)
	v.SetDefault("reservation_sweep_schedule", "*/10 * * * *")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATA_PATH"),
		},
		Sessions: Sessions{
			Lifetime: v.GetDuration("SESSION_LIFETIME"),
		},
		SMTP: SMTP{
			Server:   v.GetString("SMTP_SERVER"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			Sender:   v.GetString("EMAIL_SENDER"),
		},
		Admin: Admin{
			ID:       v.GetString("ADMIN_ID"),
			Username: v.GetString("ADMIN_USERNAME"),
			Password: v.GetString("ADMIN_PASSWORD"),
			Name:     v.GetString("ADMIN_NAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Contact:  v.GetString("ADMIN_CONTACT"),
		},
		Reservations: Reservations{
			SweepEnabled:  v.GetBool("RESERVATION_SWEEP_ENABLED"),
			SweepSchedule: v.GetString("RESERVATION_SWEEP_SCHEDULE"),
		},
	}
}
