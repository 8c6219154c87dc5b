package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authapi "github.com/m0rozov/versetrack/api/auth"
	"github.com/m0rozov/versetrack/api/models"
)

type poemRequest struct {
	Title  string `form:"title" json:"title"`
	Author string `form:"author" json:"author"`
	Text   string `form:"text" json:"text"`
}

func (r *poemRequest) trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Text = strings.TrimSpace(r.Text)
}

func (r *poemRequest) complete() bool {
	return r.Title != "" && r.Author != "" && r.Text != ""
}

// AdminPanel renders the admin UI shell.
func (h *Handler) AdminPanel(c *gin.Context) {
	poems, err := h.db.ListPoems(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "admin_panel.html", h.pageData(c, gin.H{
			"Error": "Failed to load the anthology.",
		}))
		return
	}
	c.HTML(http.StatusOK, "admin_panel.html", h.pageData(c, gin.H{
		"Poems": models.AdminPoems(poems),
	}))
}

// AddPoemPage renders the poem creation form.
func (h *Handler) AddPoemPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add_poem.html", h.pageData(c, nil))
}

// AddPoem creates a new poem from a form or JSON body.
func (h *Handler) AddPoem(c *gin.Context) {
	var req poemRequest
	if err := bind(c, &req); err != nil {
		h.poemFormResult(c, "/add_poem", http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.trim()
	if !req.complete() {
		h.poemFormResult(c, "/add_poem", http.StatusBadRequest, "All fields must be filled in.")
		return
	}

	if _, err := h.db.CreatePoem(c.Request.Context(), req.Title, req.Author, req.Text); err != nil {
		if statusFor(err) == http.StatusConflict {
			h.poemFormResult(c, "/add_poem", http.StatusConflict,
				fmt.Sprintf("A poem titled %q already exists.", req.Title))
			return
		}
		h.poemFormResult(c, "/add_poem", http.StatusInternalServerError, "Failed to add the poem.")
		return
	}

	if wantsJSON(c) {
		jsonOK(c, gin.H{"message": fmt.Sprintf("Poem %q added.", req.Title)})
		return
	}
	authapi.AddFlash(c, authapi.FlashSuccess, fmt.Sprintf("Poem %q added!", req.Title))
	c.Redirect(http.StatusFound, "/")
}

// EditPoemPage renders the edit form for an existing poem.
func (h *Handler) EditPoemPage(c *gin.Context) {
	title := c.Param("title")
	poem, err := h.db.GetPoem(c.Request.Context(), title)
	if err != nil {
		authapi.AddFlash(c, authapi.FlashError, "Poem not found.")
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "edit_poem.html", h.pageData(c, gin.H{
		"Poem": poem,
	}))
}

// EditPoem updates or renames a poem. A rename cascades into every
// user's read state and pinned title.
func (h *Handler) EditPoem(c *gin.Context) {
	title := c.Param("title")
	back := "/edit_poem/" + title

	var req poemRequest
	if err := bind(c, &req); err != nil {
		h.poemFormResult(c, back, http.StatusBadRequest, "Invalid request body.")
		return
	}
	req.trim()
	if !req.complete() {
		h.poemFormResult(c, back, http.StatusBadRequest, "All fields must be filled in.")
		return
	}

	if _, err := h.db.UpdatePoem(c.Request.Context(), title, req.Title, req.Author, req.Text); err != nil {
		switch statusFor(err) {
		case http.StatusNotFound:
			h.poemFormResult(c, "/", http.StatusNotFound, "Poem not found.")
		case http.StatusConflict:
			h.poemFormResult(c, back, http.StatusConflict,
				fmt.Sprintf("A poem titled %q already exists.", req.Title))
		default:
			h.poemFormResult(c, back, http.StatusInternalServerError, "Failed to update the poem.")
		}
		return
	}

	if wantsJSON(c) {
		jsonOK(c, gin.H{"message": fmt.Sprintf("Poem %q updated.", req.Title)})
		return
	}
	authapi.AddFlash(c, authapi.FlashSuccess, fmt.Sprintf("Poem %q updated!", req.Title))
	c.Redirect(http.StatusFound, "/")
}

// DeletePoem removes a poem and cascades into all dependent user state.
func (h *Handler) DeletePoem(c *gin.Context) {
	title := c.Param("title")
	if err := h.db.DeletePoem(c.Request.Context(), title); err != nil {
		if statusFor(err) == http.StatusNotFound {
			jsonError(c, http.StatusNotFound, "Poem not found.")
			return
		}
		jsonError(c, http.StatusInternalServerError, "Failed to delete the poem.")
		return
	}
	jsonOK(c, gin.H{"message": fmt.Sprintf("Poem %q deleted.", title)})
}

// APIPoems returns every poem with its line count and rendered HTML.
func (h *Handler) APIPoems(c *gin.Context) {
	poems, err := h.db.ListPoems(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, "Failed to load the anthology.")
		return
	}
	jsonOK(c, gin.H{"poems": models.AdminPoems(poems)})
}

func (h *Handler) poemFormResult(c *gin.Context, back string, status int, message string) {
	if wantsJSON(c) {
		jsonError(c, status, message)
		return
	}
	authapi.AddFlash(c, authapi.FlashError, message)
	c.Redirect(http.StatusFound, back)
}
