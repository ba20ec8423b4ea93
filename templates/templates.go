// Package templates embeds the server-rendered HTML pages.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"deref": func(p *uint) uint {
		if p == nil {
			return 0
		}
		return *p
	},
}

// Load parses every embedded page into a single template set. Pages are
// addressed by file name; shared blocks (nav, pager, post list) are defined
// once.
func Load() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "*.html"))
}
