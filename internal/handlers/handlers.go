package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"toolshed/models"
)

// maxBodySize ограничение размера тела запроса
const maxBodySize = 1048576

// Handler HTTP-обработчики поверх хранилища, форм, таблиц и отчётов
type Handler struct {
	Records   RecordStore
	Editor    RecordEditor
	Schema    SchemaSource
	Tables    TableRenderer
	Dashboard DashboardSource
	Reports   ReportSource
	Sessions  FormSessions
}

// NewHandler создает новый Handler
func NewHandler(records RecordStore, editor RecordEditor, schema SchemaSource, tables TableRenderer,
	dash DashboardSource, reports ReportSource, sessions FormSessions) *Handler {
	return &Handler{
		Records:   records,
		Editor:    editor,
		Schema:    schema,
		Tables:    tables,
		Dashboard: dash,
		Reports:   reports,
		Sessions:  sessions,
	}
}

// PingHandler отвечает "ok" для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// readValues читает JSON-объект значений полей. Числа приводятся к строкам, id отбрасывается.
func readValues(w http.ResponseWriter, r *http.Request) (map[string]string, bool) {
	// Ограничение размера тела, чтобы избежать DoS
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}

	var rec models.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return nil, false
	}
	return rec.Fields, true
}

// schemaFields оставляет только поля, описанные для типа k
func (h *Handler) schemaFields(k models.Kind, values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for _, name := range h.Schema.FieldNames(k) {
		if v, ok := values[name]; ok {
			out[name] = v
		}
	}
	return out
}

// kindParam тип записи из пути, 404 если неизвестен
func kindParam(w http.ResponseWriter, r *http.Request) (models.Kind, bool) {
	k, err := models.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		http.Error(w, "Unknown record type", http.StatusNotFound)
		return 0, false
	}
	return k, true
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid record id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
