package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"toolshed/internal/archive"
	"toolshed/internal/logger"
	"toolshed/internal/report"
)

// Generator источник отчётов
type Generator interface {
	Generate(k report.Kind) (report.Report, error)
}

// Exporter выгружает все три отчёта в архив. Хранилище только читается.
type Exporter struct {
	reports Generator
	archive archive.Archiver
	prefix  string
}

func NewExporter(reports Generator, a archive.Archiver, prefix string) *Exporter {
	return &Exporter{reports: reports, archive: a, prefix: prefix}
}

// ExportReports пишет каждый отчёт под ключом prefix+filename
func (e *Exporter) ExportReports(ctx context.Context) error {
	var errs []error
	for _, k := range report.Kinds {
		rep, err := e.reports.Generate(k)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		key := e.prefix + rep.Filename
		if err := e.archive.Put(ctx, key, []byte(rep.Body)); err != nil {
			errs = append(errs, fmt.Errorf("export %s: %w", k, err))
			continue
		}
		logger.Info("report exported", "report", string(k), "key", key)
	}
	return errors.Join(errs...)
}

// Scheduler запускает выгрузку по расписанию cron (с секундами)
type Scheduler struct {
	cron     *cron.Cron
	exporter *Exporter
	timeout  time.Duration
}

func NewScheduler(exporter *Exporter, schedule string, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithSeconds(),
	)

	s := &Scheduler{cron: c, exporter: exporter, timeout: time.Minute}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("register export job: %w", err)
	}
	logger.Info("report export job registered", "schedule", schedule, "location", loc.String())
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.exporter.ExportReports(ctx); err != nil {
		logger.Error("report export failed", "error", err)
		return
	}
	logger.Info("report export finished", "duration", time.Since(start))
}

func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop ждёт завершения выполняющейся выгрузки
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Next время следующего запуска
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}
