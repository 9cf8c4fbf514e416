package handlers

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gianlucap/transcription-wow/internal/config"
	"github.com/gianlucap/transcription-wow/web"
)

type PagesHandler struct {
	tmpl *template.Template
	app  config.AppConfig
}

func NewPagesHandler(app config.AppConfig) (*PagesHandler, error) {
	tmpl, err := template.ParseFS(web.Templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}
	return &PagesHandler{tmpl: tmpl, app: app}, nil
}

func (h *PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := struct {
		LogoName  string
		LiveDraft bool
	}{
		LogoName:  h.app.LogoName,
		LiveDraft: h.app.LiveDraftEnabled,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, data); err != nil {
		slog.Error("render index", "error", err)
	}
}
