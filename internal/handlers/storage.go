package handlers

import (
	"context"

	"toolshed/internal/crud"
	"toolshed/internal/dashboard"
	"toolshed/internal/form"
	"toolshed/internal/render"
	"toolshed/internal/report"
	"toolshed/models"
)

// RecordStore чтение коллекций
type RecordStore interface {
	List(k models.Kind) []models.Record
	Find(k models.Kind, id int64) (models.Record, bool)
}

// RecordEditor изменения коллекций
type RecordEditor interface {
	Add(ctx context.Context, k models.Kind, values map[string]string) (models.Record, error)
	Update(ctx context.Context, k models.Kind, id int64, values map[string]string) (bool, error)
	Delete(ctx context.Context, k models.Kind, id int64, confirm crud.Confirmer) (bool, error)
}

type SchemaSource interface {
	FieldsFor(k models.Kind) ([]models.FieldSpec, error)
	FieldNames(k models.Kind) []string
}

type TableRenderer interface {
	Render(k models.Kind) (render.Table, error)
	RenderAll() []render.Table
}

type DashboardSource interface {
	Compute() dashboard.Summary
}

type ReportSource interface {
	Generate(k report.Kind) (report.Report, error)
}

// FormSessions контроллер формы по идентификатору сессии
type FormSessions interface {
	Get(id string) *form.Controller
}
