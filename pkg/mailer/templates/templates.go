package templates

import (
	"bytes"
	"embed"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

var tmpl = htmpl.Must(htmpl.ParseFS(FS, "*.tmpl"))

// RenderHTML executes the named template with the given data.
func RenderHTML(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
