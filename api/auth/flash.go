package auth

import (
	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Flash categories, matching the page templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string
	Message  string
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, category)
	if err := session.Save(); err != nil {
		log.Error("failed to save flash", "error", err)
	}
}

// TakeFlashes drains all queued messages.
func TakeFlashes(c *gin.Context) []Flash {
	session := sessions.Default(c)
	var flashes []Flash
	for _, category := range []string{FlashSuccess, FlashError} {
		for _, v := range session.Flashes(category) {
			if msg, ok := v.(string); ok {
				flashes = append(flashes, Flash{Category: category, Message: msg})
			}
		}
	}
	if len(flashes) > 0 {
		if err := session.Save(); err != nil {
			log.Error("failed to clear flashes", "error", err)
		}
	}
	return flashes
}
