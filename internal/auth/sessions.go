package auth

import (
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/bookflow/lms/internal/entities"
)

// Session data keys
const (
	SessionKeyUserID  = "user_id"
	SessionKeyName    = "name"
	SessionKeyRole    = "role"
	SessionKeyLoginAt = "login_at"
)

func init() {
	// Register types that will be stored in sessions
	gob.Register(entities.Role(""))
	gob.Register(time.Time{})
}

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager. Sessions live in
// memory: the rest of the application state already reloads from the data
// file on restart, so sessions may too.
func NewSessionManager(lifetime time.Duration) *SessionManager {
	if lifetime <= 0 {
		lifetime = 12 * time.Hour
	}

	sm := scs.New()
	sm.Store = memstore.New()
	sm.Lifetime = lifetime
	sm.IdleTimeout = lifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}
}

// CreateSession creates a new session after successful authentication.
func (sm *SessionManager) CreateSession(r *http.Request, user *entities.User, role entities.Role) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	sm.Put(r.Context(), SessionKeyUserID, user.ID)
	sm.Put(r.Context(), SessionKeyName, user.Name)
	sm.Put(r.Context(), SessionKeyRole, role)
	sm.Put(r.Context(), SessionKeyLoginAt, time.Now())

	return nil
}

// DestroySession removes all session data and invalidates the session.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// GetUserID retrieves the user id from the session. Empty if not
// authenticated.
func (sm *SessionManager) GetUserID(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyUserID)
}

// GetUserRole retrieves the role from the session.
func (sm *SessionManager) GetUserRole(r *http.Request) entities.Role {
	role, ok := sm.Get(r.Context(), SessionKeyRole).(entities.Role)
	if !ok {
		return ""
	}
	return role
}

// IsAuthenticated returns true if the request has a valid session.
func (sm *SessionManager) IsAuthenticated(r *http.Request) bool {
	return sm.GetUserID(r) != ""
}

// SessionData holds the session information for a request.
type SessionData struct {
	UserID  string
	Name    string
	Role    entities.Role
	LoginAt time.Time
}

// GetSessionData retrieves all session data at once.
func (sm *SessionManager) GetSessionData(r *http.Request) *SessionData {
	userID := sm.GetUserID(r)
	if userID == "" {
		return nil
	}

	loginAt, _ := sm.Get(r.Context(), SessionKeyLoginAt).(time.Time)

	return &SessionData{
		UserID:  userID,
		Name:    sm.GetString(r.Context(), SessionKeyName),
		Role:    sm.GetUserRole(r),
		LoginAt: loginAt,
	}
}
