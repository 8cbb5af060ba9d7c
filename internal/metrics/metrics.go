package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics счётчики приложения. Нулевой указатель допустим: методы ничего не делают.
type Metrics struct {
	Mutations     *prometheus.CounterVec
	PersistErrors *prometheus.CounterVec
	Reports       *prometheus.CounterVec
	LowStock      prometheus.Gauge
	Overdue       prometheus.Gauge
}

// New создаёт и регистрирует метрики в reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toolshed",
			Name:      "mutations_total",
			Help:      "Applied record mutations by record type and operation.",
		}, []string{"kind", "op"}),
		PersistErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toolshed",
			Name:      "persist_errors_total",
			Help:      "Failed collection writes to the key-value store.",
		}, []string{"collection"}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toolshed",
			Name:      "reports_generated_total",
			Help:      "Generated plain-text reports.",
		}, []string{"report"}),
		LowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "toolshed",
			Name:      "low_stock_tools",
			Help:      "Tools at or below minimum stock at the last dashboard computation.",
		}),
		Overdue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "toolshed",
			Name:      "overdue_rentals",
			Help:      "Overdue rentals at the last dashboard computation.",
		}),
	}
	reg.MustRegister(m.Mutations, m.PersistErrors, m.Reports, m.LowStock, m.Overdue)
	return m
}

func (m *Metrics) Mutation(kind, op string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(kind, op).Inc()
}

func (m *Metrics) PersistFailed(collection string) {
	if m == nil {
		return
	}
	m.PersistErrors.WithLabelValues(collection).Inc()
}

func (m *Metrics) ReportGenerated(report string) {
	if m == nil {
		return
	}
	m.Reports.WithLabelValues(report).Inc()
}

func (m *Metrics) Dashboard(lowStock, overdue int) {
	if m == nil {
		return
	}
	m.LowStock.Set(float64(lowStock))
	m.Overdue.Set(float64(overdue))
}
