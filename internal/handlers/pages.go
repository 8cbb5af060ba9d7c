package handlers

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"

	"toolshed/internal/logger"
	"toolshed/internal/render"
)

// PageHandler HTML-страница с активным разделом; "/" - панель
func (h *Handler) PageHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "section")
	if name == "" {
		name = "dashboard"
	}
	if _, ok := render.LookupSection(name); !ok {
		http.Error(w, "Unknown section", http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := render.Page(&buf, name, h.Dashboard.Compute(), h.Tables.RenderAll()); err != nil {
		logger.ErrorContext(r.Context(), "failed to render page", "section", name, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
