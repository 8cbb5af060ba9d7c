package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"os"

	"toolshed/internal/logger"

	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var embedMigrations embed.FS

// Run применяет все миграции из sql/ для указанного драйвера
func Run(db *sql.DB, driver string) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(gooseLogger{})

	if err := goose.SetDialect(dialectFor(driver)); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	logger.Info("Running migrations", "driver", driver)
	if err := goose.Up(db, "sql"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func dialectFor(driver string) string {
	if driver == "sqlite" {
		return "sqlite3"
	}
	return driver
}

// gooseLogger перенаправляет вывод goose в общий логгер
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	logger.WithComponent("goose").Info(fmt.Sprintf(format, v...))
}

func (gooseLogger) Fatalf(format string, v ...any) {
	logger.WithComponent("goose").Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}
