package render

import (
	"fmt"

	"toolshed/internal/dashboard"
	"toolshed/models"
)

// Source чтение коллекций
type Source interface {
	List(k models.Kind) []models.Record
}

// Row строка таблицы с действиями
type Row struct {
	ID         int64    `json:"id"`
	Cells      []string `json:"cells"`
	EditPath   string   `json:"editPath"`
	DeletePath string   `json:"deletePath"`
}

// Table таблица одной коллекции
type Table struct {
	Kind    models.Kind `json:"kind"`
	Section string      `json:"section"` // id раздела страницы
	Title   string      `json:"title"`
	Headers []string    `json:"headers"`
	Rows    []Row       `json:"rows"`
}

type column struct {
	header string
	field  string
	money  bool
}

var columns = map[models.Kind][]column{
	models.KindTool: {
		{header: "Name", field: "name"},
		{header: "Category", field: "category"},
		{header: "Stock", field: "stock"},
		{header: "Min Stock", field: "minStock"},
		{header: "Price", field: "price", money: true},
	},
	models.KindSupplier: {
		{header: "Name", field: "name"},
		{header: "Contact", field: "contact"},
		{header: "Email", field: "email"},
		{header: "Phone", field: "phone"},
	},
	models.KindCustomer: {
		{header: "Name", field: "name"},
		{header: "Email", field: "email"},
		{header: "Phone", field: "phone"},
		{header: "Address", field: "address"},
	},
	models.KindSale: {
		{header: "Date", field: "date"},
		{header: "Customer", field: "customer"},
		{header: "Items", field: "items"},
		{header: "Total", field: "total", money: true},
	},
	models.KindRental: {
		{header: "Customer", field: "customer"},
		{header: "Tool", field: "tool"},
		{header: "Start Date", field: "startDate"},
		{header: "Due Date", field: "dueDate"},
		{header: "Status", field: "status"},
	},
}

var titles = map[models.Kind]string{
	models.KindTool:     "Tools Inventory",
	models.KindSupplier: "Suppliers",
	models.KindCustomer: "Customers",
	models.KindSale:     "Sales",
	models.KindRental:   "Rentals",
}

// Renderer строит таблицы из текущего состояния хранилища
type Renderer struct {
	src Source
}

func New(src Source) *Renderer {
	return &Renderer{src: src}
}

// Render таблица коллекции k, по строке на запись в порядке вставки
func (r *Renderer) Render(k models.Kind) (Table, error) {
	cols, ok := columns[k]
	if !ok {
		return Table{}, fmt.Errorf("no table for record type %d", k)
	}

	t := Table{Kind: k, Section: k.Collection(), Title: titles[k], Headers: make([]string, 0, len(cols)+1)}
	for _, c := range cols {
		t.Headers = append(t.Headers, c.header)
	}
	t.Headers = append(t.Headers, "Actions")

	records := r.src.List(k)
	t.Rows = make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{
			ID:         rec.ID,
			Cells:      make([]string, len(cols)),
			EditPath:   k.EditPath(rec.ID),
			DeletePath: k.DeletePath(rec.ID),
		}
		for i, c := range cols {
			v := rec.Get(c.field)
			if c.money {
				v = dashboard.Money(models.ParseDecimal(v))
			}
			row.Cells[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// RenderAll все таблицы в порядке разделов
func (r *Renderer) RenderAll() []Table {
	tables := make([]Table, 0, len(models.Kinds))
	for _, k := range models.Kinds {
		t, err := r.Render(k)
		if err != nil {
			continue
		}
		tables = append(tables, t)
	}
	return tables
}
