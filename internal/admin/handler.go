package admin

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopledger/inventory-billing-backend/pkg/activitylog"
	"github.com/shopledger/inventory-billing-backend/pkg/database"
	"gorm.io/gorm"
)

// Handler is the admin deletion interface. Invoice deletion cascades to
// lines, collections, and dues; item deletion is rejected by the storage
// layer while invoice lines or movements still reference the item.
type Handler struct {
	db    *gorm.DB
	audit *activitylog.Logger
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db, audit: activitylog.NewLogger(db)}
}

func (h *Handler) deleteByID(c *gin.Context, entityType string, model interface{}) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	res := h.db.Delete(model, uint(id))
	if res.Error != nil {
		// Referential restriction (e.g. an item still in use) surfaces as-is.
		c.JSON(http.StatusConflict, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%s %d not found", entityType, id)})
		return
	}

	actor := c.GetString("admin_user")
	_ = h.audit.LogDelete(c, actor, entityType, uint(id), nil)

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Deleted %s %d.", entityType, id)})
}

func (h *Handler) DeleteInvoice(c *gin.Context) {
	h.deleteByID(c, "invoice", &database.Invoice{})
}

func (h *Handler) DeleteLine(c *gin.Context) {
	h.deleteByID(c, "invoice_line", &database.InvoiceLine{})
}

func (h *Handler) DeleteCollection(c *gin.Context) {
	h.deleteByID(c, "invoice_collection", &database.InvoiceCollection{})
}

func (h *Handler) DeleteDue(c *gin.Context) {
	h.deleteByID(c, "invoice_due", &database.InvoiceDue{})
}

func (h *Handler) DeleteMovement(c *gin.Context) {
	h.deleteByID(c, "inventory_movement", &database.InventoryMovement{})
}

// DeleteItem removes a catalog item by name.
func (h *Handler) DeleteItem(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item name is required"})
		return
	}

	res := h.db.Delete(&database.Item{Name: name})
	if res.Error != nil {
		c.JSON(http.StatusConflict, gin.H{"error": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("item %q not found", name)})
		return
	}

	actor := c.GetString("admin_user")
	_ = h.audit.Log(c, actor, "delete", "item", 0, map[string]string{"item": name})

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Deleted item %q.", name)})
}

// ListActivity returns recent audit entries, newest first.
func (h *Handler) ListActivity(c *gin.Context) {
	var entries []database.ActivityLog
	if err := h.db.Order("id DESC").Limit(500).Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entries})
}
