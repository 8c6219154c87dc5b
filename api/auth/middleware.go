package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoadUser populates the request-scoped user from the session without
// gating the request. Used by routes with optional authentication.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := SessionUser(c); user != nil {
			c.Set(ContextUser, user)
		}
		c.Next()
	}
}

// RequireAuth gates page routes: unauthenticated requests are redirected
// to the login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := SessionUser(c)
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(ContextUser, user)
	}
}

// RequireAuthJSON gates AJAX routes: unauthenticated requests receive a
// 401 JSON body instead of a redirect.
func RequireAuthJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := SessionUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication required.",
			})
			c.Abort()
			return
		}
		c.Set(ContextUser, user)
	}
}

// RequireAdmin rejects authenticated non-admin users. Page GETs are
// redirected home with a flash, everything else receives a 403 JSON body.
// Must run after one of the auth middlewares.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user != nil && user.IsAdmin {
			c.Next()
			return
		}
		if c.Request.Method == http.MethodGet {
			AddFlash(c, FlashError, "Access denied. Administrator rights required.")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Access denied. Administrator rights required.",
		})
		c.Abort()
	}
}

// RequireAdminJSON rejects authenticated non-admin users with a 403 JSON
// body regardless of method. Used by the admin API routes.
func RequireAdminJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied. Administrator rights required.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
