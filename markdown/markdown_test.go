package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderEmphasis(t *testing.T) {
	html, err := Render("**bold** and *italic*")
	require.NoError(t, err)

	assert.Contains(t, string(html), "<strong>bold</strong>")
	assert.Contains(t, string(html), "<em>italic</em>")
}

func TestRenderLineBreaks(t *testing.T) {
	html, err := Render("первая строка\nвторая строка")
	require.NoError(t, err)

	assert.Contains(t, string(html), "<br")
	assert.Contains(t, string(html), "первая строка")
	assert.Contains(t, string(html), "вторая строка")
}

func TestRenderDeterministic(t *testing.T) {
	first, err := Render("*стих*")
	require.NoError(t, err)
	second, err := Render("*стих*")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderStripsScripts(t *testing.T) {
	html, err := Render("текст <script>alert(1)</script>")
	require.NoError(t, err)

	assert.NotContains(t, string(html), "<script")
}

func TestLineCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "single line", text: "одна строка", want: 1},
		{name: "two lines", text: "раз\nдва", want: 2},
		{name: "trailing newline", text: "раз\nдва\n", want: 2},
		{name: "trailing blank lines", text: "раз\nдва\n\n\n", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineCount(tt.text))
		})
	}
}
