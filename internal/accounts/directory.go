// Package accounts manages the user directory: registration, credential
// checks and profile updates for students, teachers and the admin.
package accounts

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bookflow/lms/internal/catalog"
	"github.com/bookflow/lms/internal/credentials"
	"github.com/bookflow/lms/internal/entities"
)

var (
	ErrMissingFields     = errors.New("all fields are required")
	ErrUsernameTooShort  = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrInvalidStudentID  = errors.New("invalid enrollment number format")
	ErrInvalidTeacherID  = errors.New("invalid faculty id format")
	ErrDuplicateID       = errors.New("this id is already registered")
	ErrDuplicateUsername = errors.New("this username is already taken")
	ErrUnknownProgramme  = errors.New("unknown programme")
	ErrUserNotFound      = errors.New("user not found")
)

// Enrollment numbers look like E25CSEU1187, faculty ids like T25CSED101.
var (
	studentIDPattern = regexp.MustCompile(`^[A-Z]\d{2}[A-Z]{3,4}\d{4}$`)
	teacherIDPattern = regexp.MustCompile(`^[A-Z]\d{2}[A-Z]{4}\d{3}$`)
)

// Directory wraps the user partitions of the shared document.
type Directory struct {
	users *entities.Users
}

func NewDirectory(users *entities.Users) *Directory {
	return &Directory{users: users}
}

// Registration carries a signup request. Programme is required for students
// and ignored for other roles.
type Registration struct {
	ID              string
	Username        string
	Password        string
	ConfirmPassword string
	Name            string
	Contact         string
	Email           string
	Programme       string
}

// Authenticate checks a username and password against one role partition.
// Returns nil on any mismatch: unknown username, wrong partition or wrong
// password all look the same to the caller.
func (d *Directory) Authenticate(username, password string, role entities.Role) *entities.User {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil
	}
	for _, user := range d.users.Partition(role) {
		if !strings.EqualFold(user.Username, username) {
			continue
		}
		if credentials.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
			return user
		}
		return nil
	}
	return nil
}

// Register validates a signup request and appends the new account to the
// partition for the given role.
func (d *Directory) Register(reg Registration, role entities.Role) (*entities.User, error) {
	reg.ID = strings.ToUpper(strings.TrimSpace(reg.ID))
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Contact = strings.TrimSpace(reg.Contact)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Programme = strings.TrimSpace(reg.Programme)

	if reg.ID == "" || reg.Username == "" || reg.Password == "" || reg.Name == "" {
		return nil, ErrMissingFields
	}
	if len(reg.Username) < 3 {
		return nil, ErrUsernameTooShort
	}
	if len(reg.Password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if reg.Password != reg.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	switch role {
	case entities.RoleStudent:
		if !studentIDPattern.MatchString(reg.ID) {
			return nil, ErrInvalidStudentID
		}
		if reg.Programme == "" {
			return nil, ErrMissingFields
		}
		if reg.Programme != catalog.GeneralLibrary && !catalog.KnownProgramme(reg.Programme) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProgramme, reg.Programme)
		}
	case entities.RoleTeacher:
		if !teacherIDPattern.MatchString(reg.ID) {
			return nil, ErrInvalidTeacherID
		}
	}

	for _, user := range d.users.Partition(role) {
		if user.ID == reg.ID {
			return nil, ErrDuplicateID
		}
		if strings.EqualFold(user.Username, reg.Username) {
			return nil, ErrDuplicateUsername
		}
	}

	hash, salt, err := credentials.HashPassword(reg.Password, "")
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &entities.User{
		ID:           reg.ID,
		Username:     reg.Username,
		PasswordHash: hash,
		PasswordSalt: salt,
		Name:         reg.Name,
		Contact:      orNotProvided(reg.Contact),
		Email:        orNotProvided(reg.Email),
	}
	if role == entities.RoleStudent {
		user.Programme = reg.Programme
	}

	d.users.SetPartition(role, append(d.users.Partition(role), user))
	return user, nil
}

// FindByID searches every partition. The role tells the caller which
// partition matched.
func (d *Directory) FindByID(id string) (*entities.User, entities.Role, bool) {
	var (
		found     *entities.User
		foundRole entities.Role
	)
	d.users.All(func(role entities.Role, user *entities.User) bool {
		if user.ID == id {
			found, foundRole = user, role
			return false
		}
		return true
	})
	if found == nil {
		return nil, "", false
	}
	return found, foundRole, true
}

// ProfileUpdate carries an admin edit of a directory record. Nil fields are
// left alone; a non-nil NewPassword resets the credential.
type ProfileUpdate struct {
	Name        *string
	Contact     *string
	Email       *string
	Programme   *string
	NewPassword *string
}

// UpdateUser applies an admin edit to a user found in any partition. The
// whole update is validated before any field changes, so a rejected edit
// leaves the record untouched. Programme edits only apply to students.
func (d *Directory) UpdateUser(id string, upd ProfileUpdate) (*entities.User, error) {
	user, role, ok := d.FindByID(id)
	if !ok {
		return nil, ErrUserNotFound
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, ErrMissingFields
	}
	if upd.Programme != nil && role == entities.RoleStudent {
		programme := strings.TrimSpace(*upd.Programme)
		if programme != catalog.GeneralLibrary && !catalog.KnownProgramme(programme) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProgramme, programme)
		}
	}
	if upd.NewPassword != nil && len(*upd.NewPassword) < 6 {
		return nil, ErrPasswordTooShort
	}

	if upd.Name != nil {
		user.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Contact != nil {
		user.Contact = orNotProvided(strings.TrimSpace(*upd.Contact))
	}
	if upd.Email != nil {
		user.Email = orNotProvided(strings.TrimSpace(*upd.Email))
	}
	if upd.Programme != nil && role == entities.RoleStudent {
		user.Programme = strings.TrimSpace(*upd.Programme)
	}
	if upd.NewPassword != nil {
		hash, salt, err := credentials.HashPassword(*upd.NewPassword, "")
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = hash
		user.PasswordSalt = salt
		user.Password = ""
	}
	return user, nil
}

// UpdateEmail sets a user's email, or resets it to the unset sentinel when
// the new value is blank.
func (d *Directory) UpdateEmail(id, email string) error {
	user, _, ok := d.FindByID(id)
	if !ok {
		return ErrUserNotFound
	}
	user.Email = orNotProvided(strings.TrimSpace(email))
	return nil
}

// Delete removes a user from its partition. The active-borrow guard lives in
// the application layer.
func (d *Directory) Delete(id string, role entities.Role) error {
	partition := d.users.Partition(role)
	for i, user := range partition {
		if user.ID == id {
			d.users.SetPartition(role, append(partition[:i], partition[i+1:]...))
			return nil
		}
	}
	return ErrUserNotFound
}

func orNotProvided(value string) string {
	if value == "" {
		return entities.NotProvided
	}
	return value
}
