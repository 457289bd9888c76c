package httphandler

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var pageSizeOptions = []int{5, 10, 20, 50}

func pageTemplates() *template.Template {
	funcs := template.FuncMap{
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
		"pageSizes": func() []int { return pageSizeOptions },
		"dict":      dict,
	}
	return template.Must(
		template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl"),
	)
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of args")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[k] = pairs[i+1]
	}
	return m, nil
}
