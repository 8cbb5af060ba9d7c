package models

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout формат дат в записях (ISO, без времени)
const DateLayout = "2006-01-02"

// Tool представление записи инструмента
type Tool struct {
	ID       int64
	Name     string
	Category string
	Stock    string
	MinStock string
	Price    string
}

func ToolOf(r Record) Tool {
	return Tool{
		ID:       r.ID,
		Name:     r.Get("name"),
		Category: r.Get("category"),
		Stock:    r.Get("stock"),
		MinStock: r.Get("minStock"),
		Price:    r.Get("price"),
	}
}

// LowStock остаток на уровне минимума или ниже; нечисловые значения не считаются
func (t Tool) LowStock() bool {
	stock, ok := ParseInt(t.Stock)
	if !ok {
		return false
	}
	minStock, ok := ParseInt(t.MinStock)
	if !ok {
		return false
	}
	return stock <= minStock
}

// Sale представление записи продажи
type Sale struct {
	ID       int64
	Date     string
	Customer string
	Items    string
	Total    string
}

func SaleOf(r Record) Sale {
	return Sale{
		ID:       r.ID,
		Date:     r.Get("date"),
		Customer: r.Get("customer"),
		Items:    r.Get("items"),
		Total:    r.Get("total"),
	}
}

func (s Sale) TotalValue() float64 {
	return ParseDecimal(s.Total)
}

// Rental представление записи аренды
type Rental struct {
	ID        int64
	Customer  string
	Tool      string
	StartDate string
	DueDate   string
	Status    string
}

func RentalOf(r Record) Rental {
	return Rental{
		ID:        r.ID,
		Customer:  r.Get("customer"),
		Tool:      r.Get("tool"),
		StartDate: r.Get("startDate"),
		DueDate:   r.Get("dueDate"),
		Status:    r.Get("status"),
	}
}

// OverdueOn активная аренда со сроком строго раньше today (YYYY-MM-DD).
// Срок, который не разбирается как дата, просрочкой не считается.
func (r Rental) OverdueOn(today string) bool {
	if r.Status != RentalActive {
		return false
	}
	due, err := time.Parse(DateLayout, r.DueDate)
	if err != nil {
		return false
	}
	now, err := time.Parse(DateLayout, today)
	if err != nil {
		return false
	}
	return due.Before(now)
}

var (
	intPrefix   = regexp.MustCompile(`^\s*[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^\s*[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// ParseInt разбирает ведущее целое ("12", " 7 шт", "3.9" -> 3)
func ParseInt(s string) (int, bool) {
	m := intPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(m))
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseDecimal разбирает ведущее десятичное число, иначе NaN
func ParseDecimal(s string) float64 {
	m := floatPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(m), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
