// README: Embedded HTML templates for the server-rendered chat page.
package web

import (
	"embed"
	"html/template"

	"roteiro/internal/itinerary"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded page templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"mainTitle": func() string { return itinerary.MainTitle },
	}).ParseFS(files, "templates/*.html"))
}
