package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"toolshed/db"
	"toolshed/db/migrations"
	"toolshed/internal/archive"
	"toolshed/internal/config"
	"toolshed/internal/crud"
	"toolshed/internal/dashboard"
	"toolshed/internal/form"
	"toolshed/internal/handlers"
	"toolshed/internal/logger"
	"toolshed/internal/metrics"
	"toolshed/internal/render"
	"toolshed/internal/report"
	"toolshed/internal/scheduler"
	"toolshed/internal/schema"
	"toolshed/internal/store"
)

// kvCloser хранилище коллекций, которое надо закрыть при выходе
type kvCloser interface {
	store.KV
	Close() error
}

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	exportOnce := flag.Bool("export-once", false, "Export all reports to the archive once and exit")
	flag.Parse()

	// .env не обязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Error loading .env file: %v", err)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting toolshed dashboard...", "storage", cfg.Storage.Driver, "timezone", cfg.Dashboard.Timezone)

	ctx := context.Background()

	kv, err := openKV(cfg)
	if err != nil {
		log.Fatalf("Cannot open storage: %v", err)
	}
	defer kv.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	st := store.New(kv, m)
	st.Load(ctx)
	if cfg.Dashboard.SeedSampleData {
		if err := st.Seed(ctx); err != nil {
			logger.Warn("Failed to persist sample data", "error", err)
		}
	}

	engine := crud.New(st, nil, m)
	registry := schema.New(st)
	agg := dashboard.New(st, time.Now, cfg.Location(), m)
	reports := report.New(st, agg, m)
	sessions, err := form.NewSessions(cfg.Dashboard.MaxSessions, func() *form.Controller {
		return form.NewController(registry, st, engine)
	})
	if err != nil {
		log.Fatalf("Cannot create form sessions: %v", err)
	}

	var sched *scheduler.Scheduler
	if cfg.Reports.Export.Enabled || *exportOnce {
		a, err := openArchive(ctx, cfg)
		if err != nil {
			log.Fatalf("Cannot open report archive: %v", err)
		}
		exporter := scheduler.NewExporter(reports, a, cfg.Reports.Export.Prefix)

		if *exportOnce {
			if err := exporter.ExportReports(ctx); err != nil {
				log.Fatalf("Report export failed: %v", err)
			}
			logger.Info("Reports exported")
			return
		}

		sched, err = scheduler.NewScheduler(exporter, cfg.Reports.Export.Schedule, cfg.Location())
		if err != nil {
			log.Fatalf("Cannot schedule report export: %v", err)
		}
		sched.Start()
		logger.Info("Report export scheduled", "next", sched.Next())
	}

	h := handlers.NewHandler(st, engine, registry, render.New(st), agg, reports, sessions)
	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           handlers.NewRouter(h, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if sched != nil {
		sched.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

// loadConfig без файла работает на значениях по умолчанию и переменных окружения
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config.Parse(nil)
	}
	return config.Load(path)
}

func openKV(cfg *config.Config) (kvCloser, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return db.NewMemoryKV(), nil
	case config.DriverSQLite:
		return openSQL(cfg.Storage.Driver, cfg.Storage.Path)
	default:
		return openSQL(cfg.Storage.Driver, cfg.Storage.DSN)
	}
}

func openSQL(driver, dsn string) (kvCloser, error) {
	conn, err := db.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := migrations.Run(conn.DB, driver); err != nil {
		conn.Close()
		return nil, err
	}
	return db.NewStorage(conn), nil
}

func openArchive(ctx context.Context, cfg *config.Config) (archive.Archiver, error) {
	switch cfg.Reports.Export.Sink {
	case config.SinkS3:
		return archive.NewS3(ctx, cfg.Reports.S3)
	default:
		return archive.NewFS(cfg.Reports.Export.Dir), nil
	}
}
