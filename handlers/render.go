package handlers

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/scm-sandbox/scm-backend/middleware"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// pageData is what the HTML shell receives. InitialData and Options are
// embedded as JSON for the client-side chart scripts.
type pageData struct {
	Page        string
	Title       string
	UserName    string
	Updated     string
	InitialData template.JS
	Options     template.JS
}

// renderPage renders the HTML shell for a report page with the initial
// payload and the dropdown option lists embedded.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, page, title string, payload interface{}) {
	options, err := s.directoryService.FilterOptions(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	initialJSON, err := json.Marshal(payload)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	data := pageData{
		Page:        page,
		Title:       title,
		Updated:     r.URL.Query().Get("updated"),
		InitialData: template.JS(initialJSON),
		Options:     template.JS(optionsJSON),
	}
	if user := middleware.UserFromContext(r.Context()); user != nil {
		data.UserName = user.Name
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		slog.Error("Failed to render page template", "page", page, "error", err)
	}
}
