package render_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"toolshed/db"
	"toolshed/internal/crud"
	"toolshed/internal/dashboard"
	"toolshed/internal/render"
	"toolshed/internal/store"
	"toolshed/models"

	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*crud.Engine, *render.Renderer) {
	t.Helper()
	s := store.New(db.NewMemoryKV(), nil)
	return crud.New(s, nil, nil), render.New(s)
}

func TestRenderTools(t *testing.T) {
	ctx := context.Background()
	engine, r := setup(t)

	drill, err := engine.Add(ctx, models.KindTool, map[string]string{"name": "Drill", "category": "Power Tools", "stock": "3", "minStock": "5", "price": "89.9"})
	require.NoError(t, err)
	_, err = engine.Add(ctx, models.KindTool, map[string]string{"name": "Saw", "category": "Hand Tools", "stock": "4", "minStock": "1", "price": "abc"})
	require.NoError(t, err)

	table, err := r.Render(models.KindTool)
	require.NoError(t, err)
	require.Equal(t, []string{"Name", "Category", "Stock", "Min Stock", "Price", "Actions"}, table.Headers)
	require.Len(t, table.Rows, 2)

	require.Equal(t, []string{"Drill", "Power Tools", "3", "5", "$89.90"}, table.Rows[0].Cells)
	require.Equal(t, drill.ID, table.Rows[0].ID)
	require.Equal(t, models.KindTool.EditPath(drill.ID), table.Rows[0].EditPath)
	require.Equal(t, models.KindTool.DeletePath(drill.ID), table.Rows[0].DeletePath)

	require.Equal(t, "$NaN", table.Rows[1].Cells[4])
}

func TestRenderSalesMoney(t *testing.T) {
	ctx := context.Background()
	engine, r := setup(t)

	_, err := engine.Add(ctx, models.KindSale, map[string]string{"date": "2024-01-10", "customer": "Lisa", "items": "Gloves", "total": "9.5"})
	require.NoError(t, err)

	table, err := r.Render(models.KindSale)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-01-10", "Lisa", "Gloves", "$9.50"}, table.Rows[0].Cells)
}

func TestRenderAllOrder(t *testing.T) {
	_, r := setup(t)
	tables := r.RenderAll()
	require.Len(t, tables, len(models.Kinds))
	for i, k := range models.Kinds {
		require.Equal(t, k, tables[i].Kind)
		require.Empty(t, tables[i].Rows)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	_, r := setup(t)
	_, err := r.Render(models.Kind(99))
	require.Error(t, err)
}

func TestPage(t *testing.T) {
	ctx := context.Background()
	engine, r := setup(t)

	_, err := engine.Add(ctx, models.KindTool, map[string]string{"name": "<Drill>", "stock": "1", "minStock": "2", "price": "5"})
	require.NoError(t, err)

	summary := dashboard.Summary{TotalTools: 1, LowStockCount: 1, TodaySalesText: "$0.00"}
	var buf bytes.Buffer
	require.NoError(t, render.Page(&buf, "tools", summary, r.RenderAll()))

	html := buf.String()
	require.Contains(t, html, `<div id="tools" class="section active">`)
	require.Contains(t, html, `<div id="dashboard" class="section">`)
	require.Contains(t, html, "&lt;Drill&gt;")
	require.NotContains(t, html, "<Drill>")
	require.Contains(t, html, "No low stock alerts")
	require.Contains(t, html, `<p id="todaySales">$0.00</p>`)
	require.Contains(t, html, `<tbody id="tools-body">`)
}

func TestPageScriptUpdatesInPlace(t *testing.T) {
	_, r := setup(t)
	var buf bytes.Buffer
	require.NoError(t, render.Page(&buf, "dashboard", dashboard.Summary{}, r.RenderAll()))

	html := buf.String()
	script := html[strings.Index(html, "<script>"):]
	require.NotContains(t, script, "location.reload")
	require.Contains(t, script, "function renderView(view)")
	require.Contains(t, script, "return r.json().then(renderView);")
	require.Contains(t, script, "fetch('/api/view')")
	require.Contains(t, script, "{ method: 'DELETE' }).then(refresh)")
	// открытие формы проверяет статус ответа
	require.Contains(t, script, "fetch(open, { method: 'POST' }).then(function (r) {\n        if (!r.ok) {")
}

func TestTableSection(t *testing.T) {
	_, r := setup(t)
	for _, tbl := range r.RenderAll() {
		require.Equal(t, tbl.Kind.Collection(), tbl.Section)
	}
}

func TestLookupSection(t *testing.T) {
	s, ok := render.LookupSection("rentals")
	require.True(t, ok)
	require.Equal(t, models.KindRental, s.Kind)

	_, ok = render.LookupSection("reports-archive")
	require.False(t, ok)
}
