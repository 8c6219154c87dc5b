// Package auth ties the cookie session to a request-scoped identity and
// gates protected routes.
package auth

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/m0rozov/versetrack/api/models"
)

const (
	sessionUserID   = "user_id"
	sessionUsername = "user_username"
	sessionIsAdmin  = "user_is_admin"

	// ContextUser is the gin context key holding the request-scoped user.
	ContextUser = "user"
)

// SaveSession stores the authenticated identity in the session.
func SaveSession(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(sessionUserID, user.ID)
	session.Set(sessionUsername, user.Username)
	session.Set(sessionIsAdmin, user.IsAdmin)
	return session.Save()
}

// ClearSession invalidates the session.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// SessionUser reconstructs the identity stored in the session, or nil if
// the request is unauthenticated.
func SessionUser(c *gin.Context) *models.User {
	session := sessions.Default(c)
	id, ok := session.Get(sessionUserID).(uint)
	if !ok {
		return nil
	}
	username, _ := session.Get(sessionUsername).(string)
	isAdmin, _ := session.Get(sessionIsAdmin).(bool)
	return &models.User{
		ID:       id,
		Username: username,
		IsAdmin:  isAdmin,
	}
}

// CurrentUser returns the request-scoped user set by the middleware, or
// nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
