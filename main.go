package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/bookflow/lms/internal/config"
	"github.com/bookflow/lms/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// .env is optional, the environment itself wins
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env")
	}

	cfg := config.NewConfig()
	entrypoint.Run(cfg, Version)
}
