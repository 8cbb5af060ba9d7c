package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"toolshed/models"
)

var (
	ErrFormClosed     = errors.New("form is closed")
	ErrRecordNotFound = errors.New("record not found")
)

// Schema поля формы по типу записи
type Schema interface {
	FieldsFor(k models.Kind) ([]models.FieldSpec, error)
}

// Records поиск редактируемой записи
type Records interface {
	Find(k models.Kind, id int64) (models.Record, bool)
}

// Mutator применяет отправленную форму
type Mutator interface {
	Add(ctx context.Context, k models.Kind, values map[string]string) (models.Record, error)
	Update(ctx context.Context, k models.Kind, id int64, values map[string]string) (bool, error)
}

// Field поле формы с текущим значением
type Field struct {
	models.FieldSpec
	Value string `json:"value"`
}

// Form открытая форма добавления или редактирования
type Form struct {
	Title  string      `json:"title"`
	Kind   models.Kind `json:"kind"`
	ID     *int64      `json:"id,omitempty"`
	Fields []Field     `json:"fields"`
}

// Editing форма редактирования существующей записи
func (f Form) Editing() bool { return f.ID != nil }

// Result итог отправки формы
type Result struct {
	Kind    models.Kind   `json:"kind"`
	Created bool          `json:"created"`
	Applied bool          `json:"applied"`
	Record  models.Record `json:"record"`
}

// Controller состояние модального окна: закрыто или редактирование (kind, запись|нет)
type Controller struct {
	mu      sync.Mutex
	schema  Schema
	records Records
	mutator Mutator
	open    *Form
}

func NewController(schema Schema, records Records, mutator Mutator) *Controller {
	return &Controller{schema: schema, records: records, mutator: mutator}
}

// Open открывает форму. id == nil - новая запись, иначе редактирование.
// Если запись не найдена, форма остаётся в прежнем состоянии.
func (c *Controller) Open(k models.Kind, id *int64) (Form, error) {
	specs, err := c.schema.FieldsFor(k)
	if err != nil {
		return Form{}, err
	}

	var rec models.Record
	title := "Add " + k.Title()
	if id != nil {
		var ok bool
		rec, ok = c.records.Find(k, *id)
		if !ok {
			return Form{}, fmt.Errorf("%w: %s %d", ErrRecordNotFound, k, *id)
		}
		title = "Edit " + k.Title()
	}

	f := Form{Title: title, Kind: k, Fields: make([]Field, len(specs))}
	if id != nil {
		v := *id
		f.ID = &v
	}
	for i, spec := range specs {
		f.Fields[i] = Field{FieldSpec: spec, Value: rec.Get(spec.Name)}
	}

	c.mu.Lock()
	c.open = &f
	c.mu.Unlock()
	return f, nil
}

// State текущая форма, если она открыта
func (c *Controller) State() (Form, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open == nil {
		return Form{}, false
	}
	return *c.open, true
}

// Submit применяет значения полей открытой формы и закрывает её.
// Поля, которых нет в форме, отбрасываются.
func (c *Controller) Submit(ctx context.Context, values map[string]string) (Result, error) {
	c.mu.Lock()
	f := c.open
	c.open = nil
	c.mu.Unlock()

	if f == nil {
		return Result{}, ErrFormClosed
	}

	filtered := make(map[string]string, len(f.Fields))
	for _, field := range f.Fields {
		v, ok := values[field.Name]
		if !ok && f.Editing() {
			continue
		}
		filtered[field.Name] = v
	}

	if !f.Editing() {
		rec, err := c.mutator.Add(ctx, f.Kind, filtered)
		return Result{Kind: f.Kind, Created: true, Applied: true, Record: rec}, err
	}

	applied, err := c.mutator.Update(ctx, f.Kind, *f.ID, filtered)
	res := Result{Kind: f.Kind, Applied: applied}
	if applied {
		res.Record, _ = c.records.Find(f.Kind, *f.ID)
	}
	return res, err
}

// Cancel закрывает форму без изменений
func (c *Controller) Cancel() {
	c.mu.Lock()
	c.open = nil
	c.mu.Unlock()
}
