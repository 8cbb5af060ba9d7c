package store

import (
	"context"

	"toolshed/models"
)

var sampleData = map[models.Kind][]models.Record{
	models.KindTool: {
		models.NewRecord(1, map[string]string{"name": "Cordless Drill", "category": "Power Tools", "stock": "15", "minStock": "5", "price": "89.99"}),
		models.NewRecord(2, map[string]string{"name": "Hammer Set", "category": "Hand Tools", "stock": "25", "minStock": "10", "price": "29.99"}),
		models.NewRecord(3, map[string]string{"name": "Screwdriver Set", "category": "Hand Tools", "stock": "30", "minStock": "15", "price": "19.99"}),
		models.NewRecord(4, map[string]string{"name": "Lawn Mower", "category": "Garden Tools", "stock": "5", "minStock": "2", "price": "299.99"}),
		models.NewRecord(5, map[string]string{"name": "Garden Shovel", "category": "Garden Tools", "stock": "19", "minStock": "8", "price": "24.99"}),
		models.NewRecord(6, map[string]string{"name": "Safety Glasses", "category": "Safety Equipment", "stock": "50", "minStock": "20", "price": "12.99"}),
	},
	models.KindSupplier: {
		models.NewRecord(1, map[string]string{"name": "ToolCo Industries", "contact": "John Smith", "email": "john@toolco.com", "phone": "555-0101"}),
		models.NewRecord(2, map[string]string{"name": "Hardware Plus", "contact": "Sarah Johnson", "email": "sarah@hardwareplus.com", "phone": "555-0102"}),
	},
	models.KindCustomer: {
		models.NewRecord(1, map[string]string{"name": "Mike Wilson", "email": "mike@email.com", "phone": "555-0201", "address": "123 Main St, City"}),
		models.NewRecord(2, map[string]string{"name": "Lisa Brown", "email": "lisa@email.com", "phone": "555-0202", "address": "456 Oak Ave, Town"}),
	},
}

// Seed заполняет пустые коллекции инструментов, поставщиков и клиентов
// демонстрационными данными и сохраняет их
func (s *Store) Seed(ctx context.Context) error {
	for _, k := range []models.Kind{models.KindTool, models.KindSupplier, models.KindCustomer} {
		seeded, err := s.Mutate(ctx, k, func(records []models.Record) ([]models.Record, bool) {
			if len(records) > 0 {
				return records, false
			}
			out := make([]models.Record, len(sampleData[k]))
			for i, r := range sampleData[k] {
				out[i] = r.Clone()
			}
			return out, true
		})
		if err != nil {
			return err
		}
		if seeded {
			s.log.Info("sample data loaded", "collection", k.Collection(), "records", len(sampleData[k]))
		}
	}
	return nil
}
