package crud

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"toolshed/internal/logger"
	"toolshed/internal/metrics"
	"toolshed/internal/store"
	"toolshed/models"
)

var ErrUnknownKind = errors.New("unknown record type")

// DeletePrompt вопрос перед удалением записи
const DeletePrompt = "Are you sure you want to delete this item?"

// Confirmer явное подтверждение пользователя перед удалением
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

var (
	Confirmed = ConfirmFunc(func(string) bool { return true })
	Declined  = ConfirmFunc(func(string) bool { return false })
)

// Engine добавление, изменение и удаление записей любого типа.
// Счётчик мутаций учитывает только изменения, успешно записанные в хранилище.
type Engine struct {
	store   *store.Store
	ids     *IDGenerator
	metrics *metrics.Metrics
	log     *slog.Logger
}

func New(s *store.Store, ids *IDGenerator, m *metrics.Metrics) *Engine {
	if ids == nil {
		ids = NewIDGenerator(nil, s.MaxID())
	}
	return &Engine{store: s, ids: ids, metrics: m, log: logger.WithComponent("crud")}
}

// Add создаёт запись с новым id, добавляет в конец коллекции и сохраняет её
func (e *Engine) Add(ctx context.Context, k models.Kind, values map[string]string) (models.Record, error) {
	if !k.Valid() {
		return models.Record{}, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	rec := models.NewRecord(e.ids.Next(), values)

	_, err := e.store.Mutate(ctx, k, func(records []models.Record) ([]models.Record, bool) {
		return append(records, rec.Clone()), true
	})
	if err != nil {
		return rec, err
	}
	e.metrics.Mutation(k.String(), "add")
	e.log.Info("record added", "kind", k.String(), "id", rec.ID)
	return rec, nil
}

// Update переписывает переданные поля записи id, остальные не трогает.
// Неизвестный id - ничего не делает и возвращает false.
func (e *Engine) Update(ctx context.Context, k models.Kind, id int64, values map[string]string) (bool, error) {
	if !k.Valid() {
		return false, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	found, err := e.store.Mutate(ctx, k, func(records []models.Record) ([]models.Record, bool) {
		for i, r := range records {
			if r.ID != id {
				continue
			}
			merged := r.Clone()
			for name, v := range values {
				if name == "id" {
					continue
				}
				merged.Fields[name] = v
			}
			records[i] = merged
			return records, true
		}
		return records, false
	})
	if found && err == nil {
		e.metrics.Mutation(k.String(), "update")
		e.log.Info("record updated", "kind", k.String(), "id", id)
	}
	return found, err
}

// Delete удаляет запись после подтверждения. Отказ или неизвестный id - без изменений.
func (e *Engine) Delete(ctx context.Context, k models.Kind, id int64, confirm Confirmer) (bool, error) {
	if !k.Valid() {
		return false, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return false, nil
	}
	removed, err := e.store.Mutate(ctx, k, func(records []models.Record) ([]models.Record, bool) {
		for i, r := range records {
			if r.ID == id {
				return append(records[:i:i], records[i+1:]...), true
			}
		}
		return records, false
	})
	if removed && err == nil {
		e.metrics.Mutation(k.String(), "delete")
		e.log.Info("record deleted", "kind", k.String(), "id", id)
	}
	return removed, err
}
