// Package templates хранит html-шаблоны страниц внутри бинарника.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

func Must(name string) *template.Template {
	return template.Must(template.ParseFS(files, name))
}
