// Package markdown converts poem source text to HTML for display.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithRendererOptions(
			// Poem line breaks are significant.
			html.WithHardWraps(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

// Render converts Markdown-flavored poem text to sanitized HTML.
// Pure and deterministic; bold and italic emphasis and line breaks
// follow common Markdown conventions.
func Render(text string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes())), nil //nolint:gosec // sanitized above
}

// LineCount returns the number of lines in the poem source, ignoring
// trailing blank lines.
func LineCount(text string) int {
	trimmed := strings.TrimRight(text, "\n\r \t")
	if trimmed == "" {
		return 0
	}
	return strings.Count(trimmed, "\n") + 1
}
