package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"toolshed/internal/report"
)

// GetReportHandler отдаёт текстовый отчёт как файл для скачивания
func (h *Handler) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	k, err := report.ParseKind(chi.URLParam(r, "report"))
	if err != nil {
		http.Error(w, "Unknown report", http.StatusNotFound)
		return
	}

	rep, err := h.Reports.Generate(k)
	if errors.Is(err, report.ErrUnknownReport) {
		http.Error(w, "Unknown report", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to generate report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rep.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rep.Body))
}
