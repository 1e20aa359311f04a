package markdown

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
)

// Render converts problem markdown to HTML for template insertion.
// On a renderer failure the raw text is escaped and returned instead so
// a bad description never blanks a page.
func Render(src string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
