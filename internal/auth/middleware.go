package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookflow/lms/internal/entities"
)

// Context keys for user data
const (
	ContextKeyUserID = "auth_user_id"
	ContextKeyName   = "auth_name"
	ContextKeyRole   = "auth_role"
)

// Middleware resolves the session on every request and guards routes that
// need a login or a role.
type Middleware struct {
	sessionManager *SessionManager
}

func NewMiddleware(sessionManager *SessionManager) *Middleware {
	return &Middleware{sessionManager: sessionManager}
}

// Handler copies the session identity into the Gin context so handlers never
// touch the session manager directly. Requests without a session pass
// through: route guards decide what needs a login.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if data := m.sessionManager.GetSessionData(c.Request); data != nil {
			c.Set(ContextKeyUserID, data.UserID)
			c.Set(ContextKeyName, data.Name)
			c.Set(ContextKeyRole, data.Role)
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a valid session.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Next()
	}
}

// RequireRole rejects sessions whose role is not in the allowed set.
func (m *Middleware) RequireRole(roles ...entities.Role) gin.HandlerFunc {
	roleSet := make(map[entities.Role]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		if GetUserID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		if !roleSet[GetUserRole(c)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// Helper functions to extract auth data from Gin context

// GetUserID retrieves the authenticated user's id from the context. Empty if
// not authenticated.
func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(string); ok {
			return userID
		}
	}
	return ""
}

// GetUserName retrieves the authenticated user's display name.
func GetUserName(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyName); exists {
		if value, ok := name.(string); ok {
			return value
		}
	}
	return ""
}

// GetUserRole retrieves the authenticated user's role from the context.
func GetUserRole(c *gin.Context) entities.Role {
	if r, exists := c.Get(ContextKeyRole); exists {
		if role, ok := r.(entities.Role); ok {
			return role
		}
	}
	return ""
}
