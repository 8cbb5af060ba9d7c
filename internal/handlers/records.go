package handlers

import (
	"net/http"

	"toolshed/internal/crud"
	"toolshed/internal/logger"
)

// GetSchemaHandler описание полей формы для типа записи
func (h *Handler) GetSchemaHandler(w http.ResponseWriter, r *http.Request) {
	k, ok := kindParam(w, r)
	if !ok {
		return
	}
	fields, err := h.Schema.FieldsFor(k)
	if err != nil {
		http.Error(w, "Unknown record type", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

// ListRecordsHandler вся коллекция в порядке добавления
func (h *Handler) ListRecordsHandler(w http.ResponseWriter, r *http.Request) {
	k, ok := kindParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Records.List(k))
}

func (h *Handler) GetRecordHandler(w http.ResponseWriter, r *http.Request) {
	k, ok := kindParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	rec, found := h.Records.Find(k, id)
	if !found {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// CreateRecordHandler обрабатывает POST /api/records/{kind}
func (h *Handler) CreateRecordHandler(w http.ResponseWriter, r *http.Request) {
	k, ok := kindParam(w, r)
	if !ok {
		return
	}
	values, ok := readValues(w, r)
	if !ok {
		return
	}

	rec, err := h.Editor.Add(r.Context(), k, h.schemaFields(k, values))
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to add record", "kind", k.String(), "error", err)
		http.Error(w, "Failed to save record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// UpdateRecordHandler обрабатывает PATCH /api/records/{kind}/{id}: переданные поля поверх старых
func (h *Handler) UpdateRecordHandler(w http.ResponseWriter, r *http.Request) {
	k, ok := kindParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	values, ok := readValues(w, r)
	if !ok {
		return
	}

	updated, err := h.Editor.Update(r.Context(), k, id, h.schemaFields(k, values))
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to update record", "kind", k.String(), "id", id, "error", err)
		http.Error(w, "Failed to save record", http.StatusInternalServerError)
		return
	}
	if !updated {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}

	rec, _ := h.Records.Find(k, id)
	writeJSON(w, http.StatusOK, rec)
}

// DeleteRecordHandler обрабатывает DELETE /api/records/{kind}/{id}?confirm=true.
// Без подтверждения ничего не удаляется.
func (h *Handler) DeleteRecordHandler(w http.ResponseWriter, r *http.Request) {
	k, ok := kindParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	confirm := crud.Declined
	if r.URL.Query().Get("confirm") == "true" {
		confirm = crud.Confirmed
		if _, found := h.Records.Find(k, id); !found {
			http.Error(w, "Record not found", http.StatusNotFound)
			return
		}
	}

	deleted, err := h.Editor.Delete(r.Context(), k, id, confirm)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to delete record", "kind", k.String(), "id", id, "error", err)
		http.Error(w, "Failed to save record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

// GetTableHandler отрисованная таблица коллекции
func (h *Handler) GetTableHandler(w http.ResponseWriter, r *http.Request) {
	k, ok := kindParam(w, r)
	if !ok {
		return
	}
	table, err := h.Tables.Render(k)
	if err != nil {
		http.Error(w, "Unknown record type", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// GetDashboardHandler показатели и списки предупреждений на текущий день
func (h *Handler) GetDashboardHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Dashboard.Compute())
}
