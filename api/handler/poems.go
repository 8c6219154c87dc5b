package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	authapi "github.com/m0rozov/versetrack/api/auth"
	"github.com/m0rozov/versetrack/api/models"
	"github.com/m0rozov/versetrack/database"
)

// Home lists all poems, with read and pin state for authenticated users.
func (h *Handler) Home(c *gin.Context) {
	poems, err := h.db.ListPoems(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "index.html", h.pageData(c, gin.H{
			"Error": "Failed to load the anthology.",
		}))
		return
	}

	var viewer *database.User
	showAllTab := false
	if user := authapi.CurrentUser(c); user != nil {
		viewer, err = h.db.GetUserByID(c.Request.Context(), user.ID)
		if err != nil {
			log.Error("failed to load account for home page", "error", err)
		} else {
			showAllTab = viewer.ShowAllTab
		}
	}

	c.HTML(http.StatusOK, "index.html", h.pageData(c, gin.H{
		"Poems":      models.PoemViews(poems, viewer),
		"ShowAllTab": showAllTab,
	}))
}

type toggleRequest struct {
	Title string `json:"title"`
}

// ToggleRead flips the read state of a poem for the current user.
func (h *Handler) ToggleRead(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		jsonError(c, http.StatusBadRequest, "No poem title given.")
		return
	}

	user := authapi.CurrentUser(c)
	action, err := h.db.ToggleRead(c.Request.Context(), user.ID, req.Title)
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			jsonError(c, http.StatusNotFound, "Poem not found.")
			return
		}
		jsonError(c, http.StatusInternalServerError, "Failed to update read state.")
		return
	}

	jsonOK(c, gin.H{"action": string(action)})
}

// TogglePin pins or unpins a poem for the current user. Pinning a poem
// replaces any previously pinned one.
func (h *Handler) TogglePin(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		jsonError(c, http.StatusBadRequest, "No poem title given.")
		return
	}

	user := authapi.CurrentUser(c)
	action, err := h.db.TogglePin(c.Request.Context(), user.ID, req.Title)
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			jsonError(c, http.StatusNotFound, "Poem not found.")
			return
		}
		jsonError(c, http.StatusInternalServerError, "Failed to update pin.")
		return
	}

	jsonOK(c, gin.H{"action": string(action)})
}
