package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// страницы; каждая определяет блок "content" для layout.html
var pageNames = []string{
	"login",
	"dashboard",
	"report",
	"members",
	"member_detail",
	"equipment",
	"equipment_detail",
	"trainers",
	"trainer_detail",
	"memberships",
	"finance",
}

var templateFuncs = template.FuncMap{
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"money": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"moneyPtr": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%.2f", *v)
	},
	"initial": func(name string) string {
		name = strings.TrimSpace(name)
		if name == "" {
			return "?"
		}
		return strings.ToUpper(string([]rune(name)[:1]))
	},
}

func parseTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}
