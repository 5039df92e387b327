// Package web holds the server-rendered admin pages.
package web

import (
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/clinic-admin/internal/money"
)

//go:embed templates/*.html
var files embed.FS

type NavItem struct {
	Href  string
	Label string
}

var Nav = []NavItem{
	{Href: "/dashboard", Label: "Dashboard"},
	{Href: "/patients", Label: "Patients"},
	{Href: "/treatments", Label: "Treatments"},
	{Href: "/appointments", Label: "Appointments"},
	{Href: "/stocks", Label: "Stocks"},
	{Href: "/sessions", Label: "Billing Sessions"},
	{Href: "/reporting", Label: "Reporting"},
}

// Templates parses every page into one set. Pages are rendered through the
// "base" template with a Page key selecting the body.
func Templates(currency string, loc *time.Location) (*template.Template, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := template.FuncMap{
		"money": func(d decimal.Decimal) string { return money.Format(currency, d) },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format("2006-01-02")
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format("2006-01-02 15:04")
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"title": statusLabel,
		"add":   func(a, b int) int { return a + b },
		"sub":   func(a, b int) int { return a - b },
	}
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}

// statusLabel turns CONFIRMED into Confirmed.
func statusLabel(s string) string {
	s = strings.ToLower(strings.ReplaceAll(s, "_", " "))
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
