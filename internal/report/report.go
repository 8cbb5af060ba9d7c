package report

import (
	"errors"
	"fmt"
	"strings"

	"toolshed/internal/dashboard"
	"toolshed/internal/metrics"
	"toolshed/models"
)

// Kind вид отчёта
type Kind string

const (
	Sales     Kind = "sales"
	Inventory Kind = "inventory"
	Rentals   Kind = "rentals"
)

// Kinds все виды отчётов
var Kinds = []Kind{Sales, Inventory, Rentals}

var ErrUnknownReport = errors.New("unknown report")

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(s, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReport, s)
}

// Title заголовок отчёта, он же начало имени файла
func (k Kind) Title() string {
	switch k {
	case Sales:
		return "Sales Report"
	case Inventory:
		return "Inventory Report"
	case Rentals:
		return "Rental Report"
	}
	return ""
}

// Report готовый текстовый отчёт
type Report struct {
	Kind     Kind
	Title    string
	Filename string
	Body     string
}

// Source чтение коллекций
type Source interface {
	List(k models.Kind) []models.Record
}

// Clock текущая дата YYYY-MM-DD
type Clock interface {
	Today() string
}

// Generator форматирует коллекции в отчёты, ничего не изменяя
type Generator struct {
	src     Source
	clock   Clock
	metrics *metrics.Metrics
}

func New(src Source, clock Clock, m *metrics.Metrics) *Generator {
	return &Generator{src: src, clock: clock, metrics: m}
}

func (g *Generator) Generate(k Kind) (Report, error) {
	today := g.clock.Today()

	var body string
	switch k {
	case Sales:
		body = g.sales()
	case Inventory:
		body = g.inventory()
	case Rentals:
		body = g.rentals(today)
	default:
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownReport, string(k))
	}

	g.metrics.ReportGenerated(string(k))
	return Report{
		Kind:     k,
		Title:    k.Title(),
		Filename: fmt.Sprintf("%s_%s.txt", k.Title(), today),
		Body:     body,
	}, nil
}

func header(b *strings.Builder, title string) {
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", 50))
	b.WriteString("\n\n")
}

func (g *Generator) sales() string {
	var b strings.Builder
	header(&b, "SALES REPORT")

	sales := g.src.List(models.KindSale)
	var total float64
	for _, r := range sales {
		total += models.SaleOf(r).TotalValue()
	}
	fmt.Fprintf(&b, "Total Sales: %s\n", dashboard.Money(total))
	fmt.Fprintf(&b, "Number of Sales: %d\n\n", len(sales))

	for _, r := range sales {
		s := models.SaleOf(r)
		fmt.Fprintf(&b, "Date: %s | Customer: %s | Items: %s | Total: $%s\n", s.Date, s.Customer, s.Items, s.Total)
	}
	return b.String()
}

func (g *Generator) inventory() string {
	var b strings.Builder
	header(&b, "INVENTORY REPORT")

	tools := g.src.List(models.KindTool)
	fmt.Fprintf(&b, "Total Tools: %d\n\n", len(tools))

	for _, r := range tools {
		t := models.ToolOf(r)
		status := "OK"
		if t.LowStock() {
			status = "LOW STOCK"
		}
		fmt.Fprintf(&b, "%s | Category: %s | Stock: %s/%s | Status: %s\n", t.Name, t.Category, t.Stock, t.MinStock, status)
	}
	return b.String()
}

func (g *Generator) rentals(today string) string {
	var b strings.Builder
	header(&b, "RENTAL REPORT")

	rentals := g.src.List(models.KindRental)
	active := 0
	for _, r := range rentals {
		if models.RentalOf(r).Status == models.RentalActive {
			active++
		}
	}
	fmt.Fprintf(&b, "Total Rentals: %d\n", len(rentals))
	fmt.Fprintf(&b, "Active Rentals: %d\n", active)
	fmt.Fprintf(&b, "Overdue Rentals: %d\n\n", len(dashboard.OverdueRentals(rentals, today)))

	for _, r := range rentals {
		rt := models.RentalOf(r)
		fmt.Fprintf(&b, "Tool: %s | Customer: %s | Status: %s | Due: %s\n", rt.Tool, rt.Customer, rt.Status, rt.DueDate)
	}
	return b.String()
}
