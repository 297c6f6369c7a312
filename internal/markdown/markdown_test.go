package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tp := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text",
			input:    "hello world",
			expected: "<p>hello world</p>",
		},
		{
			name:     "emphasis",
			input:    "this is *important*",
			expected: "<p>this is <em>important</em></p>",
		},
		{
			name:     "strong",
			input:    "this is **very important**",
			expected: "<p>this is <strong>very important</strong></p>",
		},
		{
			name:     "code span",
			input:    "run `go test` locally",
			expected: "<p>run <code>go test</code> locally</p>",
		},
		{
			name:     "strikethrough",
			input:    "~~done~~",
			expected: "<p><del>done</del></p>",
		},
		{
			name:     "headings are not parsed",
			input:    "# not a heading",
			expected: "<p># not a heading</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tp.Render(tt.input))
		})
	}
}

func TestRenderNeutralizesHTML(t *testing.T) {
	tp := New()

	t.Run("script tags", func(t *testing.T) {
		out := tp.Render("<script>alert(1)</script>hi")
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "hi")
	})

	t.Run("event handlers", func(t *testing.T) {
		out := tp.Render(`<img src="x" onerror="alert(1)">text`)
		assert.NotContains(t, out, "<img")
		assert.Contains(t, out, "text")
	})
}

func TestRenderFencedCodeBlock(t *testing.T) {
	tp := New()

	out := tp.Render("```\n<b>not bold</b>\n```")
	assert.Contains(t, out, "<pre>")
	assert.Contains(t, out, "&lt;b&gt;not bold&lt;/b&gt;")
	assert.NotContains(t, out, "<b>")
}
