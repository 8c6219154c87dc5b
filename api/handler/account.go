package handler

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	authapi "github.com/m0rozov/versetrack/api/auth"
	"github.com/m0rozov/versetrack/api/models"
	"github.com/m0rozov/versetrack/auth"
)

type credentialsRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// RegisterPage renders the registration form. Authenticated users are
// sent to their profile instead.
func (h *Handler) RegisterPage(c *gin.Context) {
	if authapi.SessionUser(c) != nil {
		c.Redirect(http.StatusFound, "/profile")
		return
	}
	c.HTML(http.StatusOK, "register.html", h.pageData(c, nil))
}

// Register creates a new account from a form or JSON body.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		h.registerResult(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if req.Username == "" || req.Password == "" {
		h.registerResult(c, http.StatusBadRequest, "Username and password are required.")
		return
	}
	if len(req.Password) < auth.MinPasswordLength {
		h.registerResult(c, http.StatusBadRequest,
			fmt.Sprintf("Password must be at least %d characters long.", auth.MinPasswordLength))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		h.registerResult(c, http.StatusInternalServerError, "Registration failed, please try again.")
		return
	}

	if _, err := h.db.CreateUser(c.Request.Context(), req.Username, hash); err != nil {
		if statusFor(err) == http.StatusConflict {
			h.registerResult(c, http.StatusConflict, "A user with this name already exists.")
			return
		}
		h.registerResult(c, http.StatusInternalServerError, "Registration failed, please try again.")
		return
	}

	if wantsJSON(c) {
		jsonOK(c, gin.H{"message": "Registration successful."})
		return
	}
	authapi.AddFlash(c, authapi.FlashSuccess, "Registration successful! You can now log in.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) registerResult(c *gin.Context, status int, message string) {
	if wantsJSON(c) {
		jsonError(c, status, message)
		return
	}
	authapi.AddFlash(c, authapi.FlashError, message)
	c.Redirect(http.StatusFound, "/register")
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(c *gin.Context) {
	if authapi.SessionUser(c) != nil {
		c.Redirect(http.StatusFound, "/profile")
		return
	}
	c.HTML(http.StatusOK, "login.html", h.pageData(c, nil))
}

// Login establishes a session for valid credentials.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := bind(c, &req); err != nil {
		h.loginFailure(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user, err := h.db.GetUserByUsername(c.Request.Context(), req.Username)
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		h.loginFailure(c, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	if err := authapi.SaveSession(c, models.UserFromDatabase(user)); err != nil {
		log.Error("failed to save session", "error", err)
		h.loginFailure(c, http.StatusInternalServerError, "Login failed, please try again.")
		return
	}

	log.Info("user logged in", "username", user.Username, "admin", user.IsAdmin)
	if wantsJSON(c) {
		jsonOK(c, gin.H{"message": "Logged in."})
		return
	}
	authapi.AddFlash(c, authapi.FlashSuccess, fmt.Sprintf("Welcome back, %s!", user.Username))
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) loginFailure(c *gin.Context, status int, message string) {
	if wantsJSON(c) {
		jsonError(c, status, message)
		return
	}
	authapi.AddFlash(c, authapi.FlashError, message)
	c.Redirect(http.StatusFound, "/login")
}

// Logout invalidates the session.
func (h *Handler) Logout(c *gin.Context) {
	if err := authapi.ClearSession(c); err != nil {
		log.Error("failed to clear session", "error", err)
	}
	authapi.AddFlash(c, authapi.FlashSuccess, "You have been logged out.")
	c.Redirect(http.StatusFound, "/")
}
