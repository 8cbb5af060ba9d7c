package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"toolshed/db"
	"toolshed/internal/crud"
	"toolshed/internal/dashboard"
	"toolshed/internal/form"
	"toolshed/internal/handlers"
	"toolshed/internal/handlers/testutils"
	"toolshed/internal/metrics"
	"toolshed/internal/render"
	"toolshed/internal/report"
	"toolshed/internal/schema"
	"toolshed/internal/store"
	"toolshed/models"
)

// MockEditor реализует RecordEditor и всегда возвращает ошибку записи
type MockEditor struct{}

var errWrite = errors.New("write failed")

func (MockEditor) Add(ctx context.Context, k models.Kind, values map[string]string) (models.Record, error) {
	return models.Record{}, errWrite
}
func (MockEditor) Update(ctx context.Context, k models.Kind, id int64, values map[string]string) (bool, error) {
	return false, errWrite
}
func (MockEditor) Delete(ctx context.Context, k models.Kind, id int64, confirm crud.Confirmer) (bool, error) {
	return false, errWrite
}

type testEnv struct {
	sessions *form.Sessions
	store    *store.Store
	engine   *crud.Engine
	handler  *handlers.Handler
	registry *prometheus.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	s := store.New(db.NewMemoryKV(), m)
	engine := crud.New(s, nil, m)
	reg2 := schema.New(s)
	now := func() time.Time { return time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC) }
	agg := dashboard.New(s, now, time.UTC, m)
	sessions, err := form.NewSessions(16, func() *form.Controller {
		return form.NewController(reg2, s, engine)
	})
	require.NoError(t, err)
	h := handlers.NewHandler(s, engine, reg2, render.New(s), agg, report.New(s, agg, m), sessions)
	return &testEnv{sessions: sessions, store: s, engine: engine, handler: h, registry: reg}
}

func (e *testEnv) router() http.Handler {
	return handlers.NewRouter(e.handler, e.registry)
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

func TestPingHandler(t *testing.T) {
	env := newTestEnv(t)
	w := httptest.NewRecorder()
	env.handler.PingHandler(w, httptest.NewRequest("GET", "/api/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}

func TestCreateRecordHandler(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest("POST", "/api/records/tools", strings.NewReader(`{"name":"Drill","category":"Power Tools","stock":3,"minStock":"5","price":"89.99","id":7,"color":"red"}`))
	req = testutils.WithChiURLParams(req, map[string]string{"kind": "tools"})
	w := httptest.NewRecorder()

	env.handler.CreateRecordHandler(w, req)

	res := w.Result()
	body := readBody(t, res)
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var rec models.Record
	require.NoError(t, json.Unmarshal([]byte(body), &rec))
	require.NotEqual(t, int64(7), rec.ID)
	require.Equal(t, "3", rec.Get("stock"))

	stored, ok := env.store.Find(models.KindTool, rec.ID)
	require.True(t, ok)
	require.Equal(t, "Drill", stored.Get("name"))
	_, hasColor := stored.Fields["color"]
	require.False(t, hasColor)
}

func TestCreateRecordHandler_InvalidJSON(t *testing.T) {
	env := newTestEnv(t)

	req := testutils.NewRecordRequest("POST", "tool", "", `{"name":`)
	w := httptest.NewRecorder()

	env.handler.CreateRecordHandler(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, env.store.List(models.KindTool))
}

func TestCreateRecordHandler_UnknownKind(t *testing.T) {
	env := newTestEnv(t)

	req := testutils.NewRecordRequest("POST", "widgets", "", `{}`)
	w := httptest.NewRecorder()

	env.handler.CreateRecordHandler(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRecordHandler_WriteFailure(t *testing.T) {
	env := newTestEnv(t)
	env.handler.Editor = MockEditor{}

	req := testutils.NewRecordRequest("POST", "sales", "", `{"total":"5"}`)
	w := httptest.NewRecorder()

	env.handler.CreateRecordHandler(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdateRecordHandler(t *testing.T) {
	env := newTestEnv(t)
	rec, err := env.engine.Add(context.Background(), models.KindCustomer, map[string]string{"name": "Mike", "phone": "555"})
	require.NoError(t, err)

	req := testutils.NewRecordRequest("PATCH", "customers", jsonID(rec.ID), `{"phone":"777","vip":"yes"}`)
	w := httptest.NewRecorder()

	env.handler.UpdateRecordHandler(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	got, _ := env.store.Find(models.KindCustomer, rec.ID)
	require.Equal(t, "777", got.Get("phone"))
	require.Equal(t, "Mike", got.Get("name"))
	_, hasVIP := got.Fields["vip"]
	require.False(t, hasVIP)
}

func TestUpdateRecordHandler_NotFound(t *testing.T) {
	env := newTestEnv(t)

	req := testutils.NewRecordRequest("PATCH", "customers", "5", `{"phone":"777"}`)
	w := httptest.NewRecorder()

	env.handler.UpdateRecordHandler(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Empty(t, env.store.List(models.KindCustomer))
}

func TestDeleteRecordHandler(t *testing.T) {
	env := newTestEnv(t)
	rec, err := env.engine.Add(context.Background(), models.KindSupplier, map[string]string{"name": "Acme"})
	require.NoError(t, err)
	params := map[string]string{"kind": "suppliers", "id": jsonID(rec.ID)}

	// без подтверждения
	req := testutils.WithChiURLParams(httptest.NewRequest("DELETE", "/api/records/suppliers/x", nil), params)
	w := httptest.NewRecorder()
	env.handler.DeleteRecordHandler(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"deleted":false}`, w.Body.String())
	require.Len(t, env.store.List(models.KindSupplier), 1)

	req = testutils.WithChiURLParams(httptest.NewRequest("DELETE", "/api/records/suppliers/x?confirm=true", nil), params)
	w = httptest.NewRecorder()
	env.handler.DeleteRecordHandler(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"deleted":true}`, w.Body.String())
	require.Empty(t, env.store.List(models.KindSupplier))
}

func TestGetRecordHandler_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	req := testutils.NewRecordRequest("GET", "tools", "abc", "")
	w := httptest.NewRecorder()
	env.handler.GetRecordHandler(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetReportHandler(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.engine.Add(context.Background(), models.KindTool, map[string]string{"name": "Drill", "stock": "3", "minStock": "5"})
	require.NoError(t, err)

	req := testutils.WithChiURLParams(httptest.NewRequest("GET", "/api/reports/inventory", nil), map[string]string{"report": "inventory"})
	w := httptest.NewRecorder()
	env.handler.GetReportHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `attachment; filename="Inventory Report_2024-01-10.txt"`, w.Header().Get("Content-Disposition"))
	require.Contains(t, w.Body.String(), "Drill | Category:  | Stock: 3/5 | Status: LOW STOCK")

	req = testutils.WithChiURLParams(httptest.NewRequest("GET", "/api/reports/payroll", nil), map[string]string{"report": "payroll"})
	w = httptest.NewRecorder()
	env.handler.GetReportHandler(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestFormFlow(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.router())
	defer srv.Close()

	res, err := http.Post(srv.URL+"/api/forms/tool/new", "application/json", nil)
	require.NoError(t, err)
	body := readBody(t, res)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `"title":"Add Tool"`)

	var session *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == handlers.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)

	submit := func() *http.Response {
		req, err := http.NewRequest("POST", srv.URL+"/api/form/submit", strings.NewReader(`{"name":"Saw","category":"Hand Tools","stock":"2","minStock":"4","price":"15"}`))
		require.NoError(t, err)
		req.AddCookie(session)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		return res
	}

	res = submit()
	body = readBody(t, res)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var view handlers.View
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	require.NotNil(t, view.Result)
	require.True(t, view.Result.Created)
	require.Equal(t, 1, view.Dashboard.LowStockCount)
	require.Len(t, view.Tables, len(models.Kinds))
	require.Equal(t, []string{"Saw", "Hand Tools", "2", "4", "$15.00"}, view.Tables[0].Rows[0].Cells)
	require.Equal(t, "tools", view.Tables[0].Section)

	// форма закрыта после отправки
	res = submit()
	readBody(t, res)
	require.Equal(t, http.StatusConflict, res.StatusCode)
	require.Len(t, env.store.List(models.KindTool), 1)
}

func TestFormCancel(t *testing.T) {
	env := newTestEnv(t)
	router := env.router()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/form/open", strings.NewReader(`{"kind":"customer"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	cookie := w.Result().Cookies()[0]

	req := httptest.NewRequest("POST", "/api/form/cancel", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest("GET", "/api/form", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
}

func TestFormSessionsStayBounded(t *testing.T) {
	env := newTestEnv(t)
	router := env.router()

	for i := 0; i < 500; i++ {
		req := httptest.NewRequest("GET", "/api/form", nil)
		if i%2 == 1 {
			req.AddCookie(&http.Cookie{Name: handlers.SessionCookie, Value: form.NewID()})
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code)
	}
	require.Equal(t, 16, env.sessions.Len())
}

func TestSessionCookieExpires(t *testing.T) {
	env := newTestEnv(t)
	w := httptest.NewRecorder()
	env.router().ServeHTTP(w, httptest.NewRequest("GET", "/api/form", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, handlers.SessionCookie, cookies[0].Name)
	require.Positive(t, cookies[0].MaxAge)
}

func TestGetViewHandler(t *testing.T) {
	env := newTestEnv(t)
	rec, err := env.engine.Add(context.Background(), models.KindTool, map[string]string{"name": "Drill", "stock": "1", "minStock": "3", "price": "10"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	env.router().ServeHTTP(w, httptest.NewRequest("GET", "/api/view", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var view handlers.View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	require.Nil(t, view.Result)
	require.Equal(t, 1, view.Dashboard.TotalTools)
	require.Len(t, view.Dashboard.LowStock, 1)
	require.Equal(t, rec.ID, view.Dashboard.LowStock[0].ID)
	require.Len(t, view.Tables, len(models.Kinds))
	require.Equal(t, "tools", view.Tables[0].Section)
	require.NotContains(t, w.Body.String(), `"result"`)
}

func TestOpenForm_UnknownRecord(t *testing.T) {
	env := newTestEnv(t)
	w := httptest.NewRecorder()
	env.router().ServeHTTP(w, httptest.NewRequest("POST", "/api/forms/rental/123", nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterPagesAndMetrics(t *testing.T) {
	env := newTestEnv(t)
	router := env.router()

	cases := []struct {
		path   string
		status int
	}{
		{"/", http.StatusOK},
		{"/sections/rentals", http.StatusOK},
		{"/sections/payroll", http.StatusNotFound},
		{"/api/ping", http.StatusOK},
		{"/api/dashboard", http.StatusOK},
		{"/api/view", http.StatusOK},
		{"/api/schema/sale", http.StatusOK},
		{"/api/schema/widget", http.StatusNotFound},
		{"/api/tables/tools", http.StatusOK},
		{"/api/records/rentals", http.StatusOK},
		{"/metrics", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", tc.path, nil))
		require.Equal(t, tc.status, w.Code, tc.path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/dashboard", nil))
	require.Contains(t, w.Body.String(), `"todaySales":"$0.00"`)
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
