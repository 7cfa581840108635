package inventory

import (
	"strings"
	"time"

	"github.com/shopledger/inventory-billing-backend/pkg/database"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type MovementInput struct {
	Item                string  `json:"item"`
	OpeningBalance      float64 `json:"opening_balance"`
	StockIn             float64 `json:"stock_in"`
	StockOut            float64 `json:"stock_out"`
	StockReturningToday float64 `json:"stock_returning_today"`
}

// AddMovements inserts one movement per non-empty item row. Movements are
// append-only facts; no reconciliation applies. Returns the number of rows
// written.
func (s *Service) AddMovements(date string, rows []MovementInput) (int, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return 0, err
	}

	var movements []database.InventoryMovement
	for _, r := range rows {
		item := strings.TrimSpace(r.Item)
		if item == "" {
			continue
		}
		closing := r.OpeningBalance + r.StockIn - r.StockOut + r.StockReturningToday
		movements = append(movements, database.InventoryMovement{
			Date:                date,
			Item:                item,
			OpeningBalance:      r.OpeningBalance,
			StockIn:             r.StockIn,
			StockOut:            r.StockOut,
			StockReturningToday: r.StockReturningToday,
			ClosingBalance:      closing,
			StockRemaining:      closing,
		})
	}
	if len(movements) == 0 {
		return 0, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&movements).Error
	})
	if err != nil {
		return 0, err
	}
	return len(movements), nil
}

// List returns movements in the inclusive date range, ordered by date then item.
func (s *Service) List(from, to string) ([]database.InventoryMovement, error) {
	var movements []database.InventoryMovement
	err := s.db.Where("date BETWEEN ? AND ?", from, to).
		Order("date, item").
		Find(&movements).Error
	return movements, err
}
