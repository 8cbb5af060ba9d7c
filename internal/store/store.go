package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"toolshed/internal/logger"
	"toolshed/internal/metrics"
	"toolshed/models"
)

// KV постоянное хранилище ключ-значение: имя коллекции -> JSON-массив записей
type KV interface {
	Get(ctx context.Context, name string) ([]byte, bool, error)
	Put(ctx context.Context, name string, payload []byte) error
}

// Store владеет пятью коллекциями. Все чтения и изменения идут под одним
// мьютексом, поэтому каждая операция завершается до начала следующей.
type Store struct {
	mu          sync.Mutex
	kv          KV
	collections map[models.Kind][]models.Record
	metrics     *metrics.Metrics
	log         *slog.Logger
}

func New(kv KV, m *metrics.Metrics) *Store {
	s := &Store{
		kv:          kv,
		collections: make(map[models.Kind][]models.Record, len(models.Kinds)),
		metrics:     m,
		log:         logger.WithComponent("store"),
	}
	for _, k := range models.Kinds {
		s.collections[k] = []models.Record{}
	}
	return s
}

// Load читает все коллекции. Отсутствующие или битые данные дают пустую коллекцию.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range models.Kinds {
		s.collections[k] = s.loadOne(ctx, k)
	}
}

func (s *Store) loadOne(ctx context.Context, k models.Kind) []models.Record {
	payload, ok, err := s.kv.Get(ctx, k.Collection())
	if err != nil {
		s.log.Warn("failed to read collection, starting empty", "collection", k.Collection(), "error", err)
		return []models.Record{}
	}
	if !ok {
		return []models.Record{}
	}
	var records []models.Record
	if err := json.Unmarshal(payload, &records); err != nil {
		s.log.Warn("malformed collection, starting empty", "collection", k.Collection(), "error", err)
		return []models.Record{}
	}
	if records == nil {
		records = []models.Record{}
	}
	s.log.Debug("collection loaded", "collection", k.Collection(), "records", len(records))
	return records
}

// Persist сериализует одну коллекцию и синхронно записывает её
func (s *Store) Persist(ctx context.Context, k models.Kind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx, k)
}

func (s *Store) persistLocked(ctx context.Context, k models.Kind) error {
	payload, err := json.Marshal(s.collections[k])
	if err != nil {
		return fmt.Errorf("encode %s: %w", k.Collection(), err)
	}
	if err := s.kv.Put(ctx, k.Collection(), payload); err != nil {
		s.metrics.PersistFailed(k.Collection())
		s.log.Error("failed to persist collection", "collection", k.Collection(), "error", err)
		return fmt.Errorf("persist %s: %w", k.Collection(), err)
	}
	return nil
}

// Mutate применяет fn к коллекции под блокировкой. Если fn сообщила
// об изменении, новая коллекция сохраняется до снятия блокировки.
func (s *Store) Mutate(ctx context.Context, k models.Kind, fn func([]models.Record) ([]models.Record, bool)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, changed := fn(s.collections[k])
	if !changed {
		return false, nil
	}
	if updated == nil {
		updated = []models.Record{}
	}
	s.collections[k] = updated
	return true, s.persistLocked(ctx, k)
}

// List копия коллекции в порядке вставки
func (s *Store) List(k models.Kind) []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	src := s.collections[k]
	out := make([]models.Record, len(src))
	for i, r := range src {
		out[i] = r.Clone()
	}
	return out
}

// Find линейный поиск по id
func (s *Store) Find(k models.Kind, id int64) (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.collections[k] {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return models.Record{}, false
}

// Names значения поля name в порядке коллекции (варианты для select)
func (s *Store) Names(k models.Kind) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.collections[k]))
	for _, r := range s.collections[k] {
		names = append(names, r.Get("name"))
	}
	return names
}

// MaxID наибольший id среди всех коллекций
func (s *Store) MaxID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var max int64
	for _, records := range s.collections {
		for _, r := range records {
			if r.ID > max {
				max = r.ID
			}
		}
	}
	return max
}
