package handler

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	authapi "github.com/m0rozov/versetrack/api/auth"
	"github.com/m0rozov/versetrack/auth"
)

// ProfilePage shows the user's notes and preferences.
func (h *Handler) ProfilePage(c *gin.Context) {
	user, err := h.currentDatabaseUser(c)
	if err != nil {
		log.Error("failed to load account for profile page", "error", err)
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "profile.html", h.pageData(c, gin.H{
		"Notes":      user.Notes,
		"ShowAllTab": user.ShowAllTab,
	}))
}

type profileRequest struct {
	Notes      string `form:"notes" json:"notes"`
	Password   string `form:"password" json:"password"`
	ShowAllTab bool   `form:"show_all_tab" json:"show_all_tab"`
}

// ProfileUpdate saves the user's notes, preference and, when given, a new
// password.
func (h *Handler) ProfileUpdate(c *gin.Context) {
	var req profileRequest
	if err := bind(c, &req); err != nil {
		h.profileResult(c, http.StatusBadRequest, "Invalid request body.")
		return
	}

	user := authapi.CurrentUser(c)
	ctx := c.Request.Context()

	if req.Password != "" {
		if len(req.Password) < auth.MinPasswordLength {
			h.profileResult(c, http.StatusBadRequest,
				fmt.Sprintf("Password must be at least %d characters long.", auth.MinPasswordLength))
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			log.Error("failed to hash password", "error", err)
			h.profileResult(c, http.StatusInternalServerError, "Failed to update profile.")
			return
		}
		if err := h.db.UpdatePassword(ctx, user.ID, hash); err != nil {
			h.profileResult(c, http.StatusInternalServerError, "Failed to update profile.")
			return
		}
	}

	if err := h.db.UpdateNotes(ctx, user.ID, req.Notes); err != nil {
		h.profileResult(c, http.StatusInternalServerError, "Failed to update profile.")
		return
	}
	if err := h.db.UpdateShowAllTab(ctx, user.ID, req.ShowAllTab); err != nil {
		h.profileResult(c, http.StatusInternalServerError, "Failed to update profile.")
		return
	}

	if wantsJSON(c) {
		jsonOK(c, gin.H{"message": "Profile updated."})
		return
	}
	authapi.AddFlash(c, authapi.FlashSuccess, "Profile updated!")
	c.Redirect(http.StatusFound, "/profile")
}

func (h *Handler) profileResult(c *gin.Context, status int, message string) {
	if wantsJSON(c) {
		jsonError(c, status, message)
		return
	}
	authapi.AddFlash(c, authapi.FlashError, message)
	c.Redirect(http.StatusFound, "/profile")
}
