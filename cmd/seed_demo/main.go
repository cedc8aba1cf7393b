// Command seed_demo creates a demo data file with the default catalog, demo
// accounts and a little borrowing history.
// Usage: go run cmd/seed_demo/main.go [-data path/to/data.json]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/bookflow/lms/internal/catalog"
	"github.com/bookflow/lms/internal/entities"
	"github.com/bookflow/lms/internal/store"
)

const defaultDemoDataPath = "./demo/bookflow_data.json"

func main() {
	dataPath := flag.String("data", defaultDemoDataPath, "path to the demo data file")
	flag.Parse()

	log.Printf("Generating demo data file at %s...", *dataPath)

	// Delete any existing file to start fresh
	if err := os.Remove(*dataPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo data file: %v", err)
	}

	s := store.New(*dataPath, store.Bootstrap{
		AdminID:       "ADM001",
		AdminUsername: "admin",
		AdminPassword: "admin123",
		AdminName:     "Demo Administrator",
		AdminEmail:    "admin@bookflow.local",
		AdminContact:  "0000000000",
	})

	// Load creates, migrates, seeds and writes the fresh document
	state, err := s.Load()
	if err != nil {
		log.Fatalf("Failed to create demo data file: %v", err)
	}

	// A little history so the admin views have something to show
	now := time.Now()
	borrowed := now.AddDate(0, 0, -20)
	state.Transactions = append(state.Transactions,
		&entities.Transaction{
			ID:            1,
			UserID:        "E25CSEU1187",
			UserName:      "Sai Ram",
			BookID:        "GEN001",
			BookTitle:     "Pride and Prejudice",
			BookProgramme: "General Library",
			BorrowDate:    borrowed.Format(entities.DateLayout),
			DueDate:       borrowed.AddDate(0, 0, 14).Format(entities.DateLayout),
			ReturnDate:    borrowed.AddDate(0, 0, 17).Format(entities.DateLayout),
			Status:        entities.StatusReturned,
			Fine:          30,
		},
		&entities.Transaction{
			ID:            2,
			UserID:        "B24ECE0045",
			UserName:      "Priya Sharma",
			BookID:        "GEN002",
			BookTitle:     "Crime and Punishment",
			BookProgramme: "General Library",
			BorrowDate:    now.AddDate(0, 0, -3).Format(entities.DateLayout),
			DueDate:       now.AddDate(0, 0, 11).Format(entities.DateLayout),
			Status:        entities.StatusBorrowed,
		},
	)
	if err := catalog.NewEngine(&state.Books).AdjustAvailability("GEN002", -1); err != nil {
		log.Fatalf("Failed to check out the demo copy: %v", err)
	}
	state.Reservations = append(state.Reservations, &entities.Reservation{
		ID:         "RSV" + now.Format("20060102150405") + "001",
		BookID:     "GEN003",
		BookTitle:  "War and Peace",
		Programme:  "General Library",
		UserID:     "E25CSEU1187",
		UserName:   "Sai Ram",
		UserEmail:  "sairam@bookflow.local",
		Status:     entities.ReservationWaiting,
		ReservedAt: now.Format(entities.DateTimeLayout),
	})

	if err := s.Save(state); err != nil {
		log.Fatalf("Failed to write demo data file: %v", err)
	}

	log.Printf("Demo data ready: %d students, %d teachers, %d transactions",
		len(state.Users.Students), len(state.Users.Teachers), len(state.Transactions))
	log.Printf("Demo logins: sairam/student123 (student), prof_bohra/teacher123 (teacher), admin/admin123 (admin)")
}
