package models

import (
	"github.com/charmbracelet/log"
	"github.com/m0rozov/versetrack/database"
	"github.com/m0rozov/versetrack/markdown"
)

// UserFromDatabase converts a stored account into a request-scoped user.
func UserFromDatabase(u *database.User) *User {
	return &User{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

// PoemViews prepares poems for page rendering against the viewing user's
// read and pin state. viewer may be nil for anonymous visitors.
func PoemViews(poems []database.Poem, viewer *database.User) []PoemView {
	views := make([]PoemView, 0, len(poems))
	for _, p := range poems {
		view := PoemView{
			Title:  p.Title,
			Author: p.Author,
		}
		html, err := markdown.Render(p.Text)
		if err != nil {
			log.Error("failed to render poem", "title", p.Title, "error", err)
		} else {
			view.HTML = html
		}
		if viewer != nil {
			view.Read = viewer.HasRead(p.Title)
			view.Pinned = viewer.PinnedTitle != nil && *viewer.PinnedTitle == p.Title
		}
		views = append(views, view)
	}
	return views
}

// AdminPoems prepares poems for the admin API, computing line counts and
// rendered HTML for each.
func AdminPoems(poems []database.Poem) []AdminPoem {
	out := make([]AdminPoem, 0, len(poems))
	for _, p := range poems {
		html, err := markdown.Render(p.Text)
		if err != nil {
			log.Error("failed to render poem", "title", p.Title, "error", err)
		}
		out = append(out, AdminPoem{
			Title:  p.Title,
			Author: p.Author,
			Text:   p.Text,
			Lines:  markdown.LineCount(p.Text),
			HTML:   string(html),
		})
	}
	return out
}
