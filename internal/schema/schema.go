package schema

import (
	"fmt"

	"toolshed/models"
)

// Варианты категорий инструмента
var ToolCategories = []string{"Power Tools", "Hand Tools", "Garden Tools", "Safety Equipment"}

// Варианты статуса аренды
var RentalStatuses = []string{models.RentalActive, models.RentalReturned, models.RentalOverdue}

// NameSource отдаёт текущие имена клиентов и инструментов
type NameSource interface {
	Names(k models.Kind) []string
}

// Registry описания полей по типу записи. Варианты выбора клиентов и
// инструментов берутся из хранилища при каждом вызове.
type Registry struct {
	names NameSource
}

func New(names NameSource) *Registry {
	return &Registry{names: names}
}

// FieldsFor упорядоченный список полей формы для типа k
func (r *Registry) FieldsFor(k models.Kind) ([]models.FieldSpec, error) {
	switch k {
	case models.KindTool:
		return []models.FieldSpec{
			{Name: "name", Label: "Tool Name", Kind: models.InputText, Required: true},
			{Name: "category", Label: "Category", Kind: models.InputSelect, Options: clone(ToolCategories), Required: true},
			{Name: "stock", Label: "Current Stock", Kind: models.InputNumber, Required: true},
			{Name: "minStock", Label: "Minimum Stock", Kind: models.InputNumber, Required: true},
			{Name: "price", Label: "Price", Kind: models.InputNumber, Step: "0.01", Required: true},
		}, nil
	case models.KindSupplier:
		return []models.FieldSpec{
			{Name: "name", Label: "Supplier Name", Kind: models.InputText, Required: true},
			{Name: "contact", Label: "Contact Person", Kind: models.InputText, Required: true},
			{Name: "email", Label: "Email", Kind: models.InputEmail, Required: true},
			{Name: "phone", Label: "Phone", Kind: models.InputTel, Required: true},
		}, nil
	case models.KindCustomer:
		return []models.FieldSpec{
			{Name: "name", Label: "Customer Name", Kind: models.InputText, Required: true},
			{Name: "email", Label: "Email", Kind: models.InputEmail, Required: true},
			{Name: "phone", Label: "Phone", Kind: models.InputTel, Required: true},
			{Name: "address", Label: "Address", Kind: models.InputTextarea, Required: true},
		}, nil
	case models.KindSale:
		return []models.FieldSpec{
			{Name: "date", Label: "Sale Date", Kind: models.InputDate, Required: true},
			{Name: "customer", Label: "Customer", Kind: models.InputSelect, Options: r.live(models.KindCustomer), Required: true},
			{Name: "items", Label: "Items (comma separated)", Kind: models.InputText, Required: true},
			{Name: "total", Label: "Total Amount", Kind: models.InputNumber, Step: "0.01", Required: true},
		}, nil
	case models.KindRental:
		return []models.FieldSpec{
			{Name: "customer", Label: "Customer", Kind: models.InputSelect, Options: r.live(models.KindCustomer), Required: true},
			{Name: "tool", Label: "Tool", Kind: models.InputSelect, Options: r.live(models.KindTool), Required: true},
			{Name: "startDate", Label: "Start Date", Kind: models.InputDate, Required: true},
			{Name: "dueDate", Label: "Due Date", Kind: models.InputDate, Required: true},
			{Name: "status", Label: "Status", Kind: models.InputSelect, Options: clone(RentalStatuses), Required: true},
		}, nil
	}
	return nil, fmt.Errorf("no schema for record type %d", k)
}

// FieldNames имена полей типа k в порядке формы
func (r *Registry) FieldNames(k models.Kind) []string {
	fields, err := r.FieldsFor(k)
	if err != nil {
		return nil
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func (r *Registry) live(k models.Kind) []string {
	if r.names == nil {
		return []string{}
	}
	return r.names.Names(k)
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
