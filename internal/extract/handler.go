package extract

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopledger/inventory-billing-backend/pkg/database"
	"gorm.io/gorm"
)

// Handler exposes query results as tabular data for the export surface.
// Formatting beyond delimited text is the caller's concern.
type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func dateRange(c *gin.Context) (string, string) {
	now := time.Now()
	from := c.DefaultQuery("from", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02"))
	to := c.DefaultQuery("to", now.Format("2006-01-02"))
	return from, to
}

// Invoices returns invoice rows in a date range.
func (h *Handler) Invoices(c *gin.Context) {
	from, to := dateRange(c)
	var rows []database.Invoice
	if err := h.db.Where("date BETWEEN ? AND ?", from, to).Order("date, id").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}
	if wantsCSV(c) {
		writeCSV(c, "invoices.csv",
			[]string{"id", "date", "person_name", "total_amount", "collection_amount", "due_amount", "notes"},
			len(rows), func(i int) []string {
				r := rows[i]
				return []string{itoa(r.ID), r.Date, r.PersonName, ftoa(r.TotalAmount), ftoa(r.CollectionAmount), ftoa(r.DueAmount), r.Notes}
			})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

type lineRow struct {
	InvoiceID  uint    `json:"invoice_id"`
	Date       string  `json:"date"`
	PersonName string  `json:"person_name"`
	LineNo     int     `json:"line_no"`
	Item       string  `json:"item"`
	UnitPrice  float64 `json:"unit_price"`
	Qty        float64 `json:"qty"`
	Amount     float64 `json:"amount"`
	Highlight  bool    `json:"highlight"`
}

// Lines returns invoice lines joined with their invoice header fields.
func (h *Handler) Lines(c *gin.Context) {
	from, to := dateRange(c)
	var rows []lineRow
	err := h.db.Model(&database.InvoiceLine{}).
		Select("invoice_lines.invoice_id, invoices.date, invoices.person_name, invoice_lines.line_no, invoice_lines.item, invoice_lines.unit_price, invoice_lines.qty, invoice_lines.amount, invoice_lines.highlight").
		Joins("JOIN invoices ON invoices.id = invoice_lines.invoice_id").
		Where("invoices.date BETWEEN ? AND ?", from, to).
		Order("invoice_lines.invoice_id, invoice_lines.line_no").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lines"})
		return
	}
	if wantsCSV(c) {
		writeCSV(c, "invoice_lines.csv",
			[]string{"invoice_id", "date", "person_name", "line_no", "item", "unit_price", "qty", "amount", "highlight"},
			len(rows), func(i int) []string {
				r := rows[i]
				return []string{itoa(r.InvoiceID), r.Date, r.PersonName, strconv.Itoa(r.LineNo), r.Item, ftoa(r.UnitPrice), ftoa(r.Qty), ftoa(r.Amount), strconv.FormatBool(r.Highlight)}
			})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// Movements returns inventory movements in a date range.
func (h *Handler) Movements(c *gin.Context) {
	from, to := dateRange(c)
	var rows []database.InventoryMovement
	if err := h.db.Where("date BETWEEN ? AND ?", from, to).Order("date, item").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movements"})
		return
	}
	if wantsCSV(c) {
		writeCSV(c, "inventory.csv",
			[]string{"date", "item", "opening_balance", "stock_in", "stock_out", "stock_returning_today", "closing_balance", "stock_remaining"},
			len(rows), func(i int) []string {
				r := rows[i]
				return []string{r.Date, r.Item, ftoa(r.OpeningBalance), ftoa(r.StockIn), ftoa(r.StockOut), ftoa(r.StockReturningToday), ftoa(r.ClosingBalance), ftoa(r.StockRemaining)}
			})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

type collectionRow struct {
	InvoiceID  uint    `json:"invoice_id"`
	Date       string  `json:"date"`
	PersonName string  `json:"person_name"`
	Method     string  `json:"method"`
	Amount     float64 `json:"amount"`
}

// Collections returns per-invoice collection entries (Cash/UPI).
func (h *Handler) Collections(c *gin.Context) {
	from, to := dateRange(c)
	var rows []collectionRow
	err := h.db.Model(&database.InvoiceCollection{}).
		Select("invoice_collections.invoice_id, invoices.date, invoices.person_name, invoice_collections.method, invoice_collections.amount").
		Joins("JOIN invoices ON invoices.id = invoice_collections.invoice_id").
		Where("invoices.date BETWEEN ? AND ?", from, to).
		Order("invoice_collections.invoice_id").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
		return
	}
	if wantsCSV(c) {
		writeCSV(c, "invoice_collections.csv",
			[]string{"invoice_id", "date", "person_name", "method", "amount"},
			len(rows), func(i int) []string {
				r := rows[i]
				return []string{itoa(r.InvoiceID), r.Date, r.PersonName, r.Method, ftoa(r.Amount)}
			})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

type dueRow struct {
	InvoiceID  uint    `json:"invoice_id"`
	Date       string  `json:"date"`
	PersonName string  `json:"person_name"`
	ShopNo     string  `json:"shop_no"`
	Amount     float64 `json:"amount"`
}

// Dues returns per-invoice due entries by shop.
func (h *Handler) Dues(c *gin.Context) {
	from, to := dateRange(c)
	var rows []dueRow
	err := h.db.Model(&database.InvoiceDue{}).
		Select("invoice_dues.invoice_id, invoices.date, invoices.person_name, invoice_dues.shop_no, invoice_dues.amount").
		Joins("JOIN invoices ON invoices.id = invoice_dues.invoice_id").
		Where("invoices.date BETWEEN ? AND ?", from, to).
		Order("invoice_dues.invoice_id").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dues"})
		return
	}
	if wantsCSV(c) {
		writeCSV(c, "invoice_dues.csv",
			[]string{"invoice_id", "date", "person_name", "shop_no", "amount"},
			len(rows), func(i int) []string {
				r := rows[i]
				return []string{itoa(r.InvoiceID), r.Date, r.PersonName, r.ShopNo, ftoa(r.Amount)}
			})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

func wantsCSV(c *gin.Context) bool {
	return c.Query("format") == "csv"
}

func writeCSV(c *gin.Context, filename string, headers []string, n int, row func(i int) []string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	w := csv.NewWriter(c.Writer)
	_ = w.Write(headers)
	for i := 0; i < n; i++ {
		_ = w.Write(row(i))
	}
	w.Flush()
}

func itoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
