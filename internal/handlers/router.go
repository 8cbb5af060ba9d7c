package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter маршруты API, страницы и /metrics
func NewRouter(h *Handler, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.PageHandler)
	r.Get("/sections/{section}", h.PageHandler)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)
		r.Get("/schema/{kind}", h.GetSchemaHandler)
		r.Get("/dashboard", h.GetDashboardHandler)
		r.Get("/view", h.GetViewHandler)
		r.Get("/tables/{kind}", h.GetTableHandler)
		r.Get("/reports/{report}", h.GetReportHandler)

		r.Route("/records/{kind}", func(r chi.Router) {
			r.Get("/", h.ListRecordsHandler)
			r.Post("/", h.CreateRecordHandler)
			r.Get("/{id}", h.GetRecordHandler)
			r.Patch("/{id}", h.UpdateRecordHandler)
			r.Delete("/{id}", h.DeleteRecordHandler)
		})

		r.Get("/form", h.GetFormHandler)
		r.Post("/form/open", h.OpenFormHandler)
		r.Post("/form/submit", h.SubmitFormHandler)
		r.Post("/form/cancel", h.CancelFormHandler)
		r.Post("/forms/{kind}/{id}", h.OpenFormPathHandler)
	})

	return r
}
