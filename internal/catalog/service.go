package catalog

import (
	"strings"

	"github.com/shopledger/inventory-billing-backend/pkg/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Upsert inserts an item or overwrites the rate of an existing one, keyed by
// trimmed name. Idempotent.
func (s *Service) Upsert(name string, rate float64) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return gorm.ErrInvalidData
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate"}),
	}).Create(&database.Item{Name: name, Rate: rate}).Error
}

// UpsertAll applies Upsert to every pair; used by seeding and re-import.
func (s *Service) UpsertAll(items []ItemRate) (int, error) {
	n := 0
	for _, it := range items {
		if err := s.Upsert(it.Item, it.Rate); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// List returns the catalog ordered by item name.
func (s *Service) List() ([]database.Item, error) {
	var items []database.Item
	err := s.db.Order("item").Find(&items).Error
	return items, err
}

// Count returns the number of catalog entries.
func (s *Service) Count() (int64, error) {
	var n int64
	err := s.db.Model(&database.Item{}).Count(&n).Error
	return n, err
}

// Delete removes an item by name. The storage layer rejects the delete while
// invoice lines or movements still reference the item; that error is
// surfaced as-is.
func (s *Service) Delete(name string) error {
	res := s.db.Delete(&database.Item{Name: strings.TrimSpace(name)})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
