package testutils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
)

// WithChiURLParams подставляет параметры пути в контекст chi запроса для тестов.
func WithChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for k, v := range params {
		chiCtx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

// NewRecordRequest запрос к /api/records/{kind}[/{id}] с JSON-телом (пустая строка - без тела)
func NewRecordRequest(method, kind, id, body string) *http.Request {
	target := "/api/records/" + kind
	params := map[string]string{"kind": kind}
	if id != "" {
		target += "/" + id
		params["id"] = id
	}

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return WithChiURLParams(req, params)
}
