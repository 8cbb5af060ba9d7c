package dashboard

import (
	"fmt"
	"time"

	"toolshed/internal/metrics"
	"toolshed/models"
)

// Source чтение коллекций
type Source interface {
	List(k models.Kind) []models.Record
}

// Summary показатели и списки предупреждений панели
type Summary struct {
	Today          string          `json:"today"`
	TotalTools     int             `json:"totalTools"`
	LowStockCount  int             `json:"lowStockCount"`
	TodaySales     float64         `json:"-"`
	TodaySalesText string          `json:"todaySales"`
	OverdueCount   int             `json:"overdueRentals"`
	LowStock       []LowStockAlert `json:"lowStockAlerts"`
	Overdue        []OverdueAlert  `json:"overdueRentalsList"`
}

type LowStockAlert struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Detail   string `json:"detail"`
	EditPath string `json:"editPath"`
}

type OverdueAlert struct {
	ID       int64  `json:"id"`
	Tool     string `json:"tool"`
	Detail   string `json:"detail"`
	EditPath string `json:"editPath"`
}

// Aggregator считает показатели заново при каждом вызове, без кэша
type Aggregator struct {
	src     Source
	now     func() time.Time
	loc     *time.Location
	metrics *metrics.Metrics
}

func New(src Source, now func() time.Time, loc *time.Location, m *metrics.Metrics) *Aggregator {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{src: src, now: now, loc: loc, metrics: m}
}

// Today текущая дата в формате YYYY-MM-DD
func (a *Aggregator) Today() string {
	return a.now().In(a.loc).Format(models.DateLayout)
}

func (a *Aggregator) Compute() Summary {
	today := a.Today()
	tools := a.src.List(models.KindTool)

	sum := Summary{
		Today:      today,
		TotalTools: len(tools),
		LowStock:   []LowStockAlert{},
		Overdue:    []OverdueAlert{},
	}

	for _, r := range tools {
		t := models.ToolOf(r)
		if !t.LowStock() {
			continue
		}
		sum.LowStock = append(sum.LowStock, LowStockAlert{
			ID:       t.ID,
			Name:     t.Name,
			Detail:   fmt.Sprintf("Stock: %s (Min: %s)", t.Stock, t.MinStock),
			EditPath: models.KindTool.EditPath(t.ID),
		})
	}
	sum.LowStockCount = len(sum.LowStock)

	sum.TodaySales = TodaySales(a.src.List(models.KindSale), today)
	sum.TodaySalesText = Money(sum.TodaySales)

	for _, r := range OverdueRentals(a.src.List(models.KindRental), today) {
		sum.Overdue = append(sum.Overdue, OverdueAlert{
			ID:       r.ID,
			Tool:     r.Tool,
			Detail:   fmt.Sprintf("Customer: %s - Due: %s", r.Customer, r.DueDate),
			EditPath: models.KindRental.EditPath(r.ID),
		})
	}
	sum.OverdueCount = len(sum.Overdue)

	a.metrics.Dashboard(sum.LowStockCount, sum.OverdueCount)
	return sum
}

// TodaySales сумма продаж с датой, равной today (строковое сравнение).
// Нечисловая сумма даёт NaN во всём итоге.
func TodaySales(sales []models.Record, today string) float64 {
	var total float64
	for _, r := range sales {
		s := models.SaleOf(r)
		if s.Date == today {
			total += s.TotalValue()
		}
	}
	return total
}

// OverdueRentals активные аренды со сроком строго до today
func OverdueRentals(rentals []models.Record, today string) []models.Rental {
	var out []models.Rental
	for _, r := range rentals {
		rt := models.RentalOf(r)
		if rt.OverdueOn(today) {
			out = append(out, rt)
		}
	}
	return out
}

// Money денежная сумма с двумя знаками после запятой
func Money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
