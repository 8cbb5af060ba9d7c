package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func init() {
	// modernc регистрируется как "sqlite", sqlx знает только "sqlite3"
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Storage хранит коллекции как пары ключ-значение: имя коллекции -> JSON-массив
type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Open подключается к базе выбранного драйвера (sqlite или postgres)
func Open(driver, dsn string) (*sqlx.DB, error) {
	if driver == "sqlite" {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("create dirs: %w", err)
			}
		}
	}
	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// один писатель, иначе SQLITE_BUSY при параллельных запросах
		conn.SetMaxOpenConns(1)
	}
	return conn, nil
}

// Get возвращает сохранённый JSON коллекции; ok=false если ключа нет
func (s *Storage) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var payload string
	query := s.db.Rebind(`SELECT payload FROM collections WHERE name = ?`)
	err := s.db.GetContext(ctx, &payload, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(payload), true, nil
}

// Put перезаписывает коллекцию целиком
func (s *Storage) Put(ctx context.Context, name string, payload []byte) error {
	query := s.db.Rebind(`
        INSERT INTO collections (name, payload, updated_at)
        VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT (name) DO UPDATE
        SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`)
	_, err := s.db.ExecContext(ctx, query, name, string(payload))
	return err
}

func (s *Storage) Close() error {
	return s.db.Close()
}
