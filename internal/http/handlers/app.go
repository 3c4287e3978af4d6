package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"futureself/internal/wizard"
)

//go:embed templates/*.html
var templateFS embed.FS

// ArtifactReader serves stored artifact bytes by their sanitized key.
type ArtifactReader interface {
	Read(ctx context.Context, key string) ([]byte, error)
}

// App bundles everything the wizard pages need.
type App struct {
	Logger      zerolog.Logger
	Wizard      *wizard.Controller
	Sessions    *SessionStore
	Artifacts   ArtifactReader
	Careers     []string
	UseWhatsApp bool

	templates *template.Template
}

// NewApp parses the embedded page templates and builds the handler container.
// artifacts may be nil, in which case artifact serving 404s.
func NewApp(logger zerolog.Logger, controller *wizard.Controller, artifacts ArtifactReader, careers []string, useWhatsApp bool) (*App, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &App{
		Logger:      logger,
		Wizard:      controller,
		Sessions:    NewSessionStore(),
		Artifacts:   artifacts,
		Careers:     careers,
		UseWhatsApp: useWhatsApp,
		templates:   tpl,
	}, nil
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		a.Logger.Error().Err(err).Str("template", name).Msg("render failed")
	}
}
