package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdown_SanitizesScript(t *testing.T) {
	result := RenderMarkdown(`<script>alert("xss")</script>`)
	assert.NotContains(t, result, "<script>")
}

func TestRenderTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "plain", title: "Add feature", want: "Add feature"},
		{name: "inline code", title: "Fix `nil` deref in poller", want: "Fix <code>nil</code> deref in poller"},
		{name: "emphasis", title: "**Breaking**: drop v1 API", want: "<strong>Breaking</strong>: drop v1 API"},
		{name: "strikethrough", title: "~~WIP~~ Ready", want: "<del>WIP</del> Ready"},
		{name: "empty", title: "", want: ""},
		{name: "heading falls back to text", title: "# not a heading", want: "# not a heading"},
		{name: "list falls back to text", title: "- bump deps", want: "- bump deps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTitle(tt.title))
		})
	}
}

func TestRenderTitle_StripsMarkup(t *testing.T) {
	result := RenderTitle(`Add <img src=x onerror="alert(1)"> support`)

	assert.NotContains(t, result, "onerror")
	assert.Contains(t, result, "support")
}
