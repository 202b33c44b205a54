package handlers

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates
var templateFiles embed.FS

// Template helper functions
var funcMap = template.FuncMap{
	"FormatDateTime": FormatDateTime,
	"Nl2br":          Nl2br,
	"TitleCase":      TitleCase,
}

var titleCaser = cases.Title(language.English)

// TitleCase converts a status or type value to display form,
// e.g. "not_attending" -> "Not Attending".
func TitleCase(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// FormatDateTime formats a time.Time object into a more readable string.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("January 2, 2006 at 3:04 PM")
}

// Nl2br escapes s and replaces newline characters with <br> tags.
func Nl2br(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// pages are rendered inside layout.html.
var pages = []string{"rsvp.html", "error.html"}

var (
	templates     map[string]*template.Template
	templatesOnce sync.Once
	templatesErr  error
)

func loadTemplates() error {
	templatesOnce.Do(func() {
		templates = make(map[string]*template.Template, len(pages))
		for _, page := range pages {
			tmpl, err := template.New(page).Funcs(funcMap).ParseFS(templateFiles, "templates/layout.html", "templates/"+page)
			if err != nil {
				templatesErr = fmt.Errorf("error parsing page template %s: %w", page, err)
				return
			}
			templates[page] = tmpl
		}
	})
	return templatesErr
}

// renderTemplate executes the named page into a buffer first so a failing
// template never leaves a half-written response.
func (s *Server) renderTemplate(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := templates[name]
	if !ok {
		s.log.Error().Str("template", name).Msg("template not loaded")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.log.Error().Err(err).Str("template", name).Msg("error executing template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderErrorPage renders error.html for guest-facing routes.
func (s *Server) renderErrorPage(w http.ResponseWriter, status int, title, message string) {
	s.renderTemplate(w, status, "error.html", map[string]any{
		"Title":       fmt.Sprintf("Error %d - %s", status, title),
		"StatusCode":  status,
		"ErrorTitle":  title,
		"Message":     message,
		"CurrentYear": time.Now().Year(),
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}
