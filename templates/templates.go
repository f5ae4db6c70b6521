// Package templates holds the server-rendered pages. Every file under pages/
// is parsed into one set and addressed by its file name.
package templates

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed pages/*.html
var files embed.FS

var funcs = template.FuncMap{
	"fieldClass": func(errs map[string]string, field string) string {
		if errs[field] != "" {
			return "field field-invalid"
		}
		return "field"
	},
	"upper": strings.ToUpper,
}

// Parse returns the page set for gin's SetHTMLTemplate.
func Parse() (*template.Template, error) {
	return template.New("pages").Funcs(funcs).ParseFS(files, "pages/*.html")
}
