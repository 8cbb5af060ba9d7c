package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"toolshed/internal/dashboard"
	"toolshed/internal/form"
	"toolshed/internal/logger"
	"toolshed/internal/render"
	"toolshed/models"
)

// SessionCookie cookie с идентификатором сессии формы
const SessionCookie = "toolshed_session"

// sessionMaxAge срок жизни cookie сессии, секунды
const sessionMaxAge = 24 * 60 * 60

// View состояние интерфейса после изменения: панель и все таблицы
type View struct {
	Result    *form.Result      `json:"result,omitempty"`
	Dashboard dashboard.Summary `json:"dashboard"`
	Tables    []render.Table    `json:"tables"`
}

type openRequest struct {
	Kind string `json:"kind"`
	ID   *int64 `json:"id,omitempty"`
}

// session контроллер формы вызывающего; новая сессия получает cookie
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *form.Controller {
	if c, err := r.Cookie(SessionCookie); err == nil && form.Valid(c.Value) {
		return h.Sessions.Get(c.Value)
	}
	id := form.NewID()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return h.Sessions.Get(id)
}

func (h *Handler) view(res *form.Result) View {
	return View{Result: res, Dashboard: h.Dashboard.Compute(), Tables: h.Tables.RenderAll()}
}

// GetViewHandler показатели и все таблицы одним ответом, для обновления страницы без перезагрузки
func (h *Handler) GetViewHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.view(nil))
}

// GetFormHandler текущая открытая форма, 204 если форма закрыта
func (h *Handler) GetFormHandler(w http.ResponseWriter, r *http.Request) {
	f, open := h.session(w, r).State()
	if !open {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// OpenFormHandler обрабатывает POST /api/form/open с телом {"kind": "tool", "id": 1}
func (h *Handler) OpenFormHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	defer r.Body.Close()

	var req openRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	k, err := models.ParseKind(req.Kind)
	if err != nil {
		http.Error(w, "Unknown record type", http.StatusNotFound)
		return
	}
	h.openForm(w, r, k, req.ID)
}

// OpenFormPathHandler обрабатывает POST /api/forms/{kind}/new и /api/forms/{kind}/{id}
func (h *Handler) OpenFormPathHandler(w http.ResponseWriter, r *http.Request) {
	k, ok := kindParam(w, r)
	if !ok {
		return
	}
	var id *int64
	if raw := chi.URLParam(r, "id"); raw != "" && raw != "new" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid record id", http.StatusBadRequest)
			return
		}
		id = &v
	}
	h.openForm(w, r, k, id)
}

func (h *Handler) openForm(w http.ResponseWriter, r *http.Request, k models.Kind, id *int64) {
	f, err := h.session(w, r).Open(k, id)
	if errors.Is(err, form.ErrRecordNotFound) {
		http.Error(w, "Record not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Unknown record type", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// SubmitFormHandler применяет открытую форму и возвращает обновлённое представление
func (h *Handler) SubmitFormHandler(w http.ResponseWriter, r *http.Request) {
	values, ok := readValues(w, r)
	if !ok {
		return
	}

	res, err := h.session(w, r).Submit(r.Context(), values)
	if errors.Is(err, form.ErrFormClosed) {
		http.Error(w, "No form is open", http.StatusConflict)
		return
	}
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to submit form", "kind", res.Kind.String(), "error", err)
		http.Error(w, "Failed to save record", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, h.view(&res))
}

// CancelFormHandler закрывает форму без изменений
func (h *Handler) CancelFormHandler(w http.ResponseWriter, r *http.Request) {
	h.session(w, r).Cancel()
	w.WriteHeader(http.StatusNoContent)
}
