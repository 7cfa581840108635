package database

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return db
}

func TestMigrateCreatesAllTables(t *testing.T) {
	db := openTestDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for _, table := range []string{
		"items", "invoices", "invoice_lines", "inventory_movements",
		"collections", "invoice_collections", "invoice_dues", "activity_logs",
	} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("missing table after migration: %s", table)
		}
	}
}

func TestMigrateIdempotent(t *testing.T) {
	db := openTestDB(t)
	for i := 0; i < 3; i++ {
		if err := Migrate(db); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
	}

	// Existing rows survive re-runs.
	if err := db.Create(&Item{Name: "Widget", Rate: 10}).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate after insert: %v", err)
	}
	var n int64
	db.Model(&Item{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 item after re-migration, got %d", n)
	}
}

func TestMigrateUpgradesOldDatabase(t *testing.T) {
	db := openTestDB(t)

	// First-release shape: no highlight column, no per-method collection or
	// per-shop due tables.
	ddl := []string{
		`CREATE TABLE items(item TEXT PRIMARY KEY, rate REAL NOT NULL)`,
		`CREATE TABLE invoices(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date DATE NOT NULL,
			person_name TEXT NOT NULL,
			total_amount REAL NOT NULL DEFAULT 0,
			collection_amount REAL NOT NULL DEFAULT 0,
			due_amount REAL NOT NULL DEFAULT 0,
			notes TEXT)`,
		`CREATE TABLE invoice_lines(
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			invoice_id INTEGER NOT NULL,
			line_no INTEGER NOT NULL,
			item TEXT NOT NULL,
			unit_price REAL NOT NULL,
			qty REAL NOT NULL,
			units TEXT,
			amount REAL NOT NULL DEFAULT 0)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("seed old schema: %v", err)
		}
	}
	if err := db.Exec(`INSERT INTO invoices(date, person_name) VALUES('2024-01-01', 'Old')`).Error; err != nil {
		t.Fatalf("seed old row: %v", err)
	}
	if err := db.Exec(`INSERT INTO invoice_lines(invoice_id, line_no, item, unit_price, qty) VALUES(1, 1, 'A', 10, 2)`).Error; err != nil {
		t.Fatalf("seed old line: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if !db.Migrator().HasColumn(&InvoiceLine{}, "highlight") {
		t.Fatal("highlight column not added")
	}
	if !db.Migrator().HasTable("invoice_collections") || !db.Migrator().HasTable("invoice_dues") {
		t.Fatal("new tables not created")
	}

	// Existing rows stay valid with the safe default.
	var line InvoiceLine
	if err := db.First(&line).Error; err != nil {
		t.Fatalf("read old line: %v", err)
	}
	if line.Highlight {
		t.Fatal("expected highlight to default to false on migrated rows")
	}
	if line.Item != "A" || line.Qty != 2 {
		t.Fatalf("old row data rewritten: %+v", line)
	}
}
