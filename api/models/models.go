package models

import "html/template"

// User is the request-scoped identity, reconstructed from the session by
// the auth middleware. Admin status lives in the session and is set at
// login time.
type User struct {
	ID       uint
	Username string
	IsAdmin  bool
}

// PoemView is a poem prepared for page rendering, including the viewing
// user's read and pin state.
type PoemView struct {
	Title  string
	Author string
	HTML   template.HTML
	Read   bool
	Pinned bool
}

// AdminPoem is a poem as exposed by the admin API, with the raw source,
// the rendered HTML and a computed line count.
type AdminPoem struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Lines  int    `json:"lines"`
	HTML   string `json:"html"`
}
