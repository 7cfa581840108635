package admin

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
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
	return db
}

func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(db)
	r := gin.New()
	r.DELETE("/admin/invoices/:id", h.DeleteInvoice)
	r.DELETE("/admin/items/:name", h.DeleteItem)
	return r
}

func TestDeleteInvoiceEndpoint(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Create(&database.Item{Name: "Tea", Rate: 10}).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	inv := database.Invoice{Date: "2025-01-15", PersonName: "Ravi", TotalAmount: 20, CollectionAmount: 20}
	inv.Lines = []database.InvoiceLine{
		{LineNo: 1, Item: "Tea", UnitPrice: 10, Qty: 2, Amount: 20},
	}
	inv.Collections = []database.InvoiceCollection{{Method: "Cash", Amount: 20}}
	inv.Dues = []database.InvoiceDue{{ShopNo: "S1", Amount: 10}}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}

	r := newTestRouter(db)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", fmt.Sprintf("/admin/invoices/%d", inv.ID), nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	for _, model := range []interface{}{
		&database.InvoiceLine{}, &database.InvoiceCollection{}, &database.InvoiceDue{},
	} {
		var n int64
		db.Model(model).Count(&n)
		if n != 0 {
			t.Fatalf("children of %T not cascaded, %d left", model, n)
		}
	}

	// Deletion lands in the audit trail.
	var entries []database.ActivityLog
	db.Find(&entries)
	if len(entries) != 1 || entries[0].Action != "delete" || entries[0].EntityType != "invoice" {
		t.Fatalf("unexpected activity entries: %+v", entries)
	}

	// Second delete of the same id is a 404.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", fmt.Sprintf("/admin/invoices/%d", inv.ID), nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("repeat delete status = %d", w.Code)
	}
}

func TestDeleteReferencedItemConflict(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Create(&database.Item{Name: "Tea", Rate: 10}).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	inv := database.Invoice{Date: "2025-01-15", PersonName: "Ravi", TotalAmount: 10}
	inv.Lines = []database.InvoiceLine{{LineNo: 1, Item: "Tea", UnitPrice: 10, Qty: 1, Amount: 10}}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("seed invoice: %v", err)
	}

	r := newTestRouter(db)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("DELETE", "/admin/items/Tea", nil))
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", w.Code)
	}

	var n int64
	db.Model(&database.Item{}).Count(&n)
	if n != 1 {
		t.Fatalf("item should remain, count = %d", n)
	}
}
