// Package store persists the application document as a single JSON file and
// upgrades old data files on load.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/bookflow/lms/internal/catalog"
	"github.com/bookflow/lms/internal/entities"
)

// Bootstrap describes the admin account injected into a fresh data file. The
// values come from the environment so no admin credential ever lives in code.
type Bootstrap struct {
	AdminID       string
	AdminUsername string
	AdminPassword string
	AdminName     string
	AdminEmail    string
	AdminContact  string
}

// Store reads and writes the document at a fixed path.
type Store struct {
	path      string
	bootstrap Bootstrap
}

func New(path string, bootstrap Bootstrap) *Store {
	return &Store{path: path, bootstrap: bootstrap}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the document, creating a freshly seeded one when the file does
// not exist yet, and runs the migration pipeline. The migrated document is
// written back immediately so the upgrade happens once.
func (s *Store) Load() (*entities.State, error) {
	state := &entities.State{}

	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("data file %s not found, creating a fresh library", s.path)
		s.seedUsers(state)
	case err != nil:
		return nil, fmt.Errorf("reading data file: %w", err)
	default:
		if err := json.Unmarshal(raw, state); err != nil {
			return nil, fmt.Errorf("parsing data file %s: %w", s.path, err)
		}
	}

	changed, err := s.migrate(state)
	if err != nil {
		return nil, err
	}

	engine := catalog.NewEngine(&state.Books)
	if engine.SeedDefaults() {
		changed = true
	}
	engine.Normalize()

	if changed {
		if err := s.Save(state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Save writes the whole document atomically: marshal to a sibling temp file,
// then rename over the target.
func (s *Store) Save(state *entities.State) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding data file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing data file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing data file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing data file: %w", err)
	}
	return nil
}

// seedUsers populates a brand new document with the demo accounts and the
// admin from the environment.
func (s *Store) seedUsers(state *entities.State) {
	state.Users.Students = []*entities.User{
		demoUser("E25CSEU1187", "sairam", "student123", "Sai Ram", "B.Tech (Computer Science Engineering)"),
		demoUser("B24ECE0045", "student2", "student123", "Priya Sharma", "B.Tech (Electronics & Communication Engineering)"),
	}
	state.Users.Teachers = []*entities.User{
		demoUser("T25CSED101", "prof_bohra", "teacher123", "Prof. Bohra", ""),
		demoUser("P24MATH205", "prof_jd", "teacher123", "Prof. J.D.", ""),
	}

	b := s.bootstrap
	if b.AdminID == "" || b.AdminUsername == "" || b.AdminPassword == "" {
		log.Printf("admin bootstrap credentials not configured, skipping admin account")
		return
	}
	admin := &entities.User{
		ID:       b.AdminID,
		Username: b.AdminUsername,
		Password: b.AdminPassword,
		Name:     b.AdminName,
		Contact:  b.AdminContact,
		Email:    b.AdminEmail,
	}
	if admin.Name == "" {
		admin.Name = "Administrator"
	}
	state.Users.Admin = []*entities.User{admin}
}

// demoUser builds a plaintext demo account. The credential migration hashes
// it before the document first touches disk.
func demoUser(id, username, password, name, programme string) *entities.User {
	return &entities.User{
		ID:        id,
		Username:  username,
		Password:  password,
		Name:      name,
		Contact:   entities.NotProvided,
		Email:     entities.NotProvided,
		Programme: programme,
	}
}
