package render

import (
	"embed"
	"html/template"
	"io"

	"toolshed/internal/dashboard"
	"toolshed/models"
)

//go:embed templates/page.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.New("page.html").ParseFS(templatesFS, "templates/page.html"))

// Section раздел навигации
type Section struct {
	Name  string
	Title string
	Kind  models.Kind // 0 для панели
}

// Sections разделы интерфейса в порядке навигации
var Sections = []Section{
	{Name: "dashboard", Title: "Dashboard"},
	{Name: "tools", Title: "Tools", Kind: models.KindTool},
	{Name: "suppliers", Title: "Suppliers", Kind: models.KindSupplier},
	{Name: "customers", Title: "Customers", Kind: models.KindCustomer},
	{Name: "sales", Title: "Sales", Kind: models.KindSale},
	{Name: "rentals", Title: "Rentals", Kind: models.KindRental},
}

// LookupSection раздел по имени
func LookupSection(name string) (Section, bool) {
	for _, s := range Sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

type pageTable struct {
	Table
	NewPath string
}

// Page рисует HTML-документ целиком: навигацию, панель, таблицы и общую форму
func Page(w io.Writer, active string, summary dashboard.Summary, tables []Table) error {
	view := struct {
		Active   string
		Sections []Section
		Summary  dashboard.Summary
		Items    []pageTable
	}{Active: active, Sections: Sections, Summary: summary}
	for _, t := range tables {
		view.Items = append(view.Items, pageTable{Table: t, NewPath: t.Kind.NewPath()})
	}
	return pageTmpl.Execute(w, view)
}
