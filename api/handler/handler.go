package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/m0rozov/versetrack/api/auth"
	"github.com/m0rozov/versetrack/database"
)

// Handler serves the page and JSON routes.
type Handler struct {
	db *database.Client
}

func New(db *database.Client) *Handler {
	return &Handler{db: db}
}

// wantsJSON reports whether the request carries a JSON body. Page forms
// and JSON clients share the same handlers; the request shape is decided
// here, at the transport binding, not in the core logic.
func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "application/json")
}

// bind decodes the request body into req, as JSON or as form fields
// depending on the content type.
func bind(c *gin.Context, req any) error {
	if wantsJSON(c) {
		return c.ShouldBindJSON(req)
	}
	return c.ShouldBind(req)
}

func jsonOK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func jsonError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// statusFor maps store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// pageData is the payload common to every rendered page.
func (h *Handler) pageData(c *gin.Context, extra gin.H) gin.H {
	data := gin.H{
		"User":    auth.CurrentUser(c),
		"Flashes": auth.TakeFlashes(c),
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}

// currentDatabaseUser loads the full account record behind the
// request-scoped identity.
func (h *Handler) currentDatabaseUser(c *gin.Context) (*database.User, error) {
	user := auth.CurrentUser(c)
	if user == nil {
		return nil, database.ErrNotFound
	}
	return h.db.GetUserByID(c.Request.Context(), user.ID)
}
