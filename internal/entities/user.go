package entities

import "strings"

// Role partitions the user directory. Partitions are disjoint: a student id
// and a teacher id never collide because they live in separate lists.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// NotProvided is the sentinel stored for optional contact fields that the
// user left empty. It predates the Go rewrite and survives in existing data
// files, so it stays.
const NotProvided = "Not provided"

// User is a directory record for a student, teacher or administrator.
// Password is only ever populated by legacy data files and is cleared by the
// credential migration on load.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Password     string `json:"password,omitempty"`
	PasswordHash string `json:"password_hash,omitempty"`
	PasswordSalt string `json:"password_salt,omitempty"`
	Name         string `json:"name"`
	Contact      string `json:"contact,omitempty"`
	Email        string `json:"email,omitempty"`
	Programme    string `json:"programme,omitempty"`
}

// HasEmail reports whether the user has a usable email address on file.
func (u *User) HasEmail() bool {
	return u.Email != "" && !strings.EqualFold(u.Email, NotProvided)
}

// Users holds the three role partitions exactly as they appear in the
// persisted document.
type Users struct {
	Students []*User `json:"students"`
	Teachers []*User `json:"teachers"`
	Admin    []*User `json:"admin"`
}

// Partition returns the slice backing the given role, or nil for an unknown
// role.
func (u *Users) Partition(role Role) []*User {
	switch role {
	case RoleStudent:
		return u.Students
	case RoleTeacher:
		return u.Teachers
	case RoleAdmin:
		return u.Admin
	}
	return nil
}

// SetPartition replaces the slice backing the given role.
func (u *Users) SetPartition(role Role, users []*User) {
	switch role {
	case RoleStudent:
		u.Students = users
	case RoleTeacher:
		u.Teachers = users
	case RoleAdmin:
		u.Admin = users
	}
}

// All iterates every user across partitions, invoking fn with the role the
// user belongs to. Iteration stops when fn returns false.
func (u *Users) All(fn func(Role, *User) bool) {
	for _, user := range u.Students {
		if !fn(RoleStudent, user) {
			return
		}
	}
	for _, user := range u.Teachers {
		if !fn(RoleTeacher, user) {
			return
		}
	}
	for _, user := range u.Admin {
		if !fn(RoleAdmin, user) {
			return
		}
	}
}
