package api

import (
	"embed"
	"html/template"
	"net/url"
	"strconv"

	"taxiservice/pkg/forms"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	// pageQuery builds the query string of a pager link, keeping the search term.
	"pageQuery": func(param, value string, page int) template.URL {
		q := url.Values{}
		if value != "" {
			q.Set(param, value)
		}
		q.Set("page", strconv.Itoa(page))
		return template.URL("?" + q.Encode())
	},
	"errorsFor": func(errs forms.Errors, field string) []string {
		return errs[field]
	},
	"selected": func(id int64, value string) bool {
		return strconv.FormatInt(id, 10) == value
	},
}

func loadTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}
