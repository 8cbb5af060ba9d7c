package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind тип записи: tool, supplier, customer, sale, rental
type Kind int

const (
	KindTool Kind = iota + 1
	KindSupplier
	KindCustomer
	KindSale
	KindRental
)

// Kinds перечисляет типы в порядке разделов интерфейса
var Kinds = []Kind{KindTool, KindSupplier, KindCustomer, KindSale, KindRental}

// Статусы аренды
const (
	RentalActive   = "Active"
	RentalReturned = "Returned"
	RentalOverdue  = "Overdue"
)

// ParseKind принимает как имя типа ("tool"), так и ключ коллекции ("tools")
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if s == k.String() || s == k.Collection() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown record type %q", s)
}

func (k Kind) String() string {
	switch k {
	case KindTool:
		return "tool"
	case KindSupplier:
		return "supplier"
	case KindCustomer:
		return "customer"
	case KindSale:
		return "sale"
	case KindRental:
		return "rental"
	}
	return "item"
}

// Collection ключ коллекции в хранилище
func (k Kind) Collection() string {
	switch k {
	case KindTool:
		return "tools"
	case KindSupplier:
		return "suppliers"
	case KindCustomer:
		return "customers"
	case KindSale:
		return "sales"
	case KindRental:
		return "rentals"
	}
	return ""
}

// Title имя типа для заголовков формы
func (k Kind) Title() string {
	switch k {
	case KindTool:
		return "Tool"
	case KindSupplier:
		return "Supplier"
	case KindCustomer:
		return "Customer"
	case KindSale:
		return "Sale"
	case KindRental:
		return "Rental"
	}
	return "Item"
}

func (k Kind) Valid() bool {
	return k >= KindTool && k <= KindRental
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Record плоская запись: id плюс строковые значения полей.
// В JSON хранится как {"id": 1, "name": "...", ...}.
type Record struct {
	ID     int64
	Fields map[string]string
}

func NewRecord(id int64, fields map[string]string) Record {
	r := Record{ID: id, Fields: make(map[string]string, len(fields))}
	for k, v := range fields {
		if k == "id" {
			continue
		}
		r.Fields[k] = v
	}
	return r
}

// Get возвращает значение поля или пустую строку
func (r Record) Get(name string) string {
	return r.Fields[name]
}

func (r Record) Clone() Record {
	return NewRecord(r.ID, r.Fields)
}

func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		out[k] = v
	}
	out["id"] = r.ID
	return json.Marshal(out)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.ID = 0
	r.Fields = make(map[string]string, len(raw))
	for k, v := range raw {
		if k == "id" {
			id, err := decodeID(v)
			if err != nil {
				return err
			}
			r.ID = id
			continue
		}
		r.Fields[k] = scalarString(v)
	}
	return nil
}

func decodeID(v json.RawMessage) (int64, error) {
	s := scalarString(v)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %s", string(v))
	}
	return int64(f), nil
}

// scalarString приводит JSON-значение к строке: числа из примеров
// данных и строки из форм хранятся одинаково
func scalarString(v json.RawMessage) string {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || string(v) == "null" {
		return ""
	}
	if v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return s
		}
	}
	return string(v)
}
