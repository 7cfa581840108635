package reports

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopledger/inventory-billing-backend/pkg/database"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

type MethodTotal struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

type ShopTotal struct {
	ShopNo string  `json:"shop_no"`
	Amount float64 `json:"amount"`
}

type HighlightedLine struct {
	InvoiceID uint    `json:"invoice_id"`
	LineNo    int     `json:"line_no"`
	Item      string  `json:"item"`
	Qty       float64 `json:"qty"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
}

type DailyReport struct {
	Date             string             `json:"date"`
	TotalBilled      float64            `json:"total_billed"`
	TotalCollected   float64            `json:"total_collected"`
	TotalDue         float64            `json:"total_due"`
	Invoices         []database.Invoice `json:"invoices"`
	CollectionTotals []MethodTotal      `json:"collection_totals"`
	DueTotals        []ShopTotal        `json:"due_totals"`
	Highlighted      []HighlightedLine  `json:"highlighted"`
}

func (h *Handler) buildDaily(date string) (*DailyReport, error) {
	report := DailyReport{Date: date}

	if err := h.db.Where("date = ?", date).Order("id").Find(&report.Invoices).Error; err != nil {
		return nil, err
	}
	for _, inv := range report.Invoices {
		report.TotalBilled += inv.TotalAmount
		report.TotalCollected += inv.CollectionAmount
		report.TotalDue += inv.DueAmount
	}

	err := h.db.Model(&database.InvoiceCollection{}).
		Select("invoice_collections.method, COALESCE(SUM(invoice_collections.amount), 0) as amount").
		Joins("JOIN invoices ON invoices.id = invoice_collections.invoice_id").
		Where("invoices.date = ?", date).
		Group("invoice_collections.method").
		Scan(&report.CollectionTotals).Error
	if err != nil {
		return nil, err
	}

	err = h.db.Model(&database.InvoiceDue{}).
		Select("invoice_dues.shop_no, COALESCE(SUM(invoice_dues.amount), 0) as amount").
		Joins("JOIN invoices ON invoices.id = invoice_dues.invoice_id").
		Where("invoices.date = ?", date).
		Group("invoice_dues.shop_no").
		Scan(&report.DueTotals).Error
	if err != nil {
		return nil, err
	}

	err = h.db.Model(&database.InvoiceLine{}).
		Select("invoice_lines.invoice_id, invoice_lines.line_no, invoice_lines.item, invoice_lines.qty, invoice_lines.unit_price, invoice_lines.amount").
		Joins("JOIN invoices ON invoices.id = invoice_lines.invoice_id").
		Where("invoices.date = ? AND invoice_lines.highlight = ?", date, true).
		Order("invoice_lines.invoice_id, invoice_lines.line_no").
		Scan(&report.Highlighted).Error
	if err != nil {
		return nil, err
	}

	return &report, nil
}

// GetDaily returns the daily report for one date (default today).
func (h *Handler) GetDaily(c *gin.Context) {
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	report, err := h.buildDaily(date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": report})
}
