package store

import (
	"fmt"
	"log"

	"github.com/bookflow/lms/internal/catalog"
	"github.com/bookflow/lms/internal/credentials"
	"github.com/bookflow/lms/internal/entities"
)

// currentSchemaVersion is the version a fully migrated document carries.
const currentSchemaVersion = 4

// migration is one schema upgrade step. Steps run in order and exactly once:
// the document's schema_version records how far it already got.
type migration struct {
	version int
	name    string
	apply   func(*entities.State) error
}

var migrations = []migration{
	{1, "backfill contact and email fields", backfillContactFields},
	{2, "hash plaintext passwords", hashPlaintextPasswords},
	{3, "fold student_books into the general library", foldStudentBooks},
	{4, "repair missing student programmes", repairStudentProgrammes},
}

// migrate runs every outstanding step against the document. Reports whether
// anything changed so the caller knows to write the file back.
func (s *Store) migrate(state *entities.State) (bool, error) {
	changed := false
	for _, m := range migrations {
		if state.SchemaVersion >= m.version {
			continue
		}
		log.Printf("migrating data file to v%d: %s", m.version, m.name)
		if err := m.apply(state); err != nil {
			return changed, fmt.Errorf("migration v%d (%s): %w", m.version, m.name, err)
		}
		state.SchemaVersion = m.version
		changed = true
	}
	if state.SchemaVersion != currentSchemaVersion {
		state.SchemaVersion = currentSchemaVersion
		changed = true
	}
	return changed, nil
}

// backfillContactFields gives every user the unset sentinel where old files
// stored nothing at all.
func backfillContactFields(state *entities.State) error {
	state.Users.All(func(_ entities.Role, user *entities.User) bool {
		if user.Contact == "" {
			user.Contact = entities.NotProvided
		}
		if user.Email == "" {
			user.Email = entities.NotProvided
		}
		return true
	})
	return nil
}

// hashPlaintextPasswords upgrades legacy plaintext credentials in place.
func hashPlaintextPasswords(state *entities.State) error {
	var failed error
	state.Users.All(func(_ entities.Role, user *entities.User) bool {
		if _, err := credentials.EnsureHashed(user); err != nil {
			failed = fmt.Errorf("hashing credentials for %s: %w", user.ID, err)
			return false
		}
		return true
	})
	return failed
}

// foldStudentBooks moves the pre-programme student_books list into the
// general library shelf and clears the legacy field.
func foldStudentBooks(state *entities.State) error {
	if len(state.Books.StudentBooks) == 0 {
		state.Books.StudentBooks = nil
		return nil
	}
	if state.Books.ProgramBooks == nil {
		state.Books.ProgramBooks = make(map[string][]*entities.Book)
	}
	general := state.Books.ProgramBooks[catalog.GeneralLibrary]
	seen := make(map[string]bool, len(general))
	for _, book := range general {
		seen[book.ID] = true
	}
	for _, book := range state.Books.StudentBooks {
		if seen[book.ID] {
			continue
		}
		book.Programme = catalog.GeneralLibrary
		book.CatalogType = entities.CatalogProgram
		general = append(general, book)
		seen[book.ID] = true
	}
	state.Books.ProgramBooks[catalog.GeneralLibrary] = general
	state.Books.StudentBooks = nil
	return nil
}

// repairStudentProgrammes points students with a missing or unknown programme
// at the general library so their shelf always resolves.
func repairStudentProgrammes(state *entities.State) error {
	for _, student := range state.Users.Students {
		if student.Programme == catalog.GeneralLibrary || catalog.KnownProgramme(student.Programme) {
			continue
		}
		student.Programme = catalog.GeneralLibrary
	}
	return nil
}
