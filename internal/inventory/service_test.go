package inventory

import (
	"fmt"
	"testing"

	"github.com/shopledger/inventory-billing-backend/pkg/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&database.Item{Name: "Rice", Rate: 40}).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return db
}

func TestAddMovementsComputesClosingBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	n, err := svc.AddMovements("2025-01-15", []MovementInput{
		{Item: "Rice", OpeningBalance: 50, StockIn: 10, StockOut: 5, StockReturningToday: 2},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	var m database.InventoryMovement
	if err := db.First(&m).Error; err != nil {
		t.Fatalf("read: %v", err)
	}
	if m.ClosingBalance != 57 || m.StockRemaining != 57 {
		t.Fatalf("closing/remaining = %v/%v, want 57/57", m.ClosingBalance, m.StockRemaining)
	}
}

func TestAddMovementsSkipsEmptyItems(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	n, err := svc.AddMovements("2025-01-15", []MovementInput{
		{Item: "  ", OpeningBalance: 5},
		{Item: "Rice", StockIn: 3},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	n, err = svc.AddMovements("2025-01-15", []MovementInput{{Item: ""}})
	if err != nil || n != 0 {
		t.Fatalf("all-empty batch: n=%d err=%v", n, err)
	}
}

func TestListMovementsByRange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	for _, date := range []string{"2025-01-10", "2025-01-20", "2025-02-01"} {
		if _, err := svc.AddMovements(date, []MovementInput{{Item: "Rice", StockIn: 1}}); err != nil {
			t.Fatalf("add %s: %v", date, err)
		}
	}

	rows, err := svc.List("2025-01-01", "2025-01-31")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows in January, got %d", len(rows))
	}
}
