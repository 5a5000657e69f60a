// Package templates renders the UI's HTML pages and fragments. All
// templates are embedded; fragments carry the element IDs that datastar
// patches over SSE.
package templates

import (
	"embed"
	"html/template"
	"io"
	"strings"
)

//go:embed *.html
var files embed.FS

var tmpl = template.Must(template.ParseFS(files, "*.html"))

// Render executes the named template into w.
func Render(w io.Writer, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// RenderString executes the named template into a string, for SSE
// element patches.
func RenderString(name string, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
