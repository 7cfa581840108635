package database

import (
	"fmt"

	"gorm.io/gorm"
)

// MigrationError reports which schema step failed. Migration failures are
// fatal at startup; every step is independently idempotent, so a retry from
// scratch is always safe.
type MigrationError struct {
	Step string
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration step %q: %v", e.Step, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

type migrationStep struct {
	name string
	run  func(db *gorm.DB) error
}

// Steps are ordered and strictly additive: tables and columns are only ever
// created if absent, never dropped, renamed, or rewritten. Running the list
// any number of times yields the same schema as running it once.
var migrationSteps = []migrationStep{
	{name: "base-tables", run: func(db *gorm.DB) error {
		for _, model := range []interface{}{
			&Item{},
			&Invoice{},
			&InvoiceLine{},
			&InventoryMovement{},
			&Collection{},
		} {
			if err := ensureTable(db, model); err != nil {
				return err
			}
		}
		return nil
	}},
	// Line highlighting shipped after the first release; databases created by
	// older versions lack the column.
	{name: "invoice-lines-highlight", run: func(db *gorm.DB) error {
		return ensureColumn(db, &InvoiceLine{}, "highlight")
	}},
	{name: "invoice-collections-table", run: func(db *gorm.DB) error {
		return ensureTable(db, &InvoiceCollection{})
	}},
	{name: "invoice-dues-table", run: func(db *gorm.DB) error {
		return ensureTable(db, &InvoiceDue{})
	}},
	{name: "activity-log-table", run: func(db *gorm.DB) error {
		return ensureTable(db, &ActivityLog{})
	}},
}

// Migrate applies all schema steps in order. Safe to call on every startup.
func Migrate(db *gorm.DB) error {
	for _, step := range migrationSteps {
		if err := step.run(db); err != nil {
			return &MigrationError{Step: step.name, Err: err}
		}
	}
	return nil
}

func ensureTable(db *gorm.DB, model interface{}) error {
	if db.Migrator().HasTable(model) {
		return nil
	}
	return db.Migrator().CreateTable(model)
}

// ensureColumn adds a column to a live table. The column's struct tag must
// carry a default so existing rows stay valid.
func ensureColumn(db *gorm.DB, model interface{}, column string) error {
	if db.Migrator().HasColumn(model, column) {
		return nil
	}
	return db.Migrator().AddColumn(model, column)
}
