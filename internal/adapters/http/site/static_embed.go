package site

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
)

//go:embed static/*
var staticFS embed.FS

//go:embed templates/*.tmpl
var templateFS embed.FS

// FS returns an http.FileSystem for the embedded stylesheet.
func FS() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return http.FS(staticFS)
	}
	return http.FS(sub)
}

var dashboardTmpl = template.Must(
	template.New("dashboard.html.tmpl").
		Funcs(template.FuncMap{"cell": cell}).
		ParseFS(templateFS, "templates/dashboard.html.tmpl"),
)

// cell renders a table value; a missing season renders blank.
func cell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
