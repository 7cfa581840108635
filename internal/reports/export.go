package reports

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopledger/inventory-billing-backend/pkg/database"
	"github.com/xuri/excelize/v2"
)

// DownloadDaily streams the daily report as an xlsx workbook with Bills,
// Collections, Dues, and Lines sheets.
func (h *Handler) DownloadDaily(c *gin.Context) {
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

	var lines []database.InvoiceLine
	err = h.db.Model(&database.InvoiceLine{}).
		Joins("JOIN invoices ON invoices.id = invoice_lines.invoice_id").
		Where("invoices.date = ?", date).
		Order("invoice_lines.invoice_id, invoice_lines.line_no").
		Find(&lines).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lines"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	writeSheet(f, "Bills", []string{"id", "person_name", "total_amount", "collection_amount", "due_amount"}, len(report.Invoices), func(i int) []interface{} {
		inv := report.Invoices[i]
		return []interface{}{inv.ID, inv.PersonName, inv.TotalAmount, inv.CollectionAmount, inv.DueAmount}
	})
	writeSheet(f, "Collections", []string{"method", "amount"}, len(report.CollectionTotals), func(i int) []interface{} {
		t := report.CollectionTotals[i]
		return []interface{}{t.Method, t.Amount}
	})
	writeSheet(f, "Dues", []string{"shop_no", "amount"}, len(report.DueTotals), func(i int) []interface{} {
		t := report.DueTotals[i]
		return []interface{}{t.ShopNo, t.Amount}
	})
	writeSheet(f, "Lines", []string{"invoice_id", "line_no", "item", "qty", "unit_price", "amount", "highlight"}, len(lines), func(i int) []interface{} {
		l := lines[i]
		return []interface{}{l.InvoiceID, l.LineNo, l.Item, l.Qty, l.UnitPrice, l.Amount, l.Highlight}
	})

	// The default sheet is replaced by the first data sheet.
	f.DeleteSheet("Sheet1")
	f.SetDocProps(&excelize.DocProperties{Title: fmt.Sprintf("Report %s", date)})

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.xlsx", date))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
	}
}

func writeSheet(f *excelize.File, name string, headers []string, n int, row func(i int) []interface{}) {
	f.NewSheet(name)
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(name, cell, header)
	}
	for i := 0; i < n; i++ {
		for col, value := range row(i) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(name, cell, value)
		}
	}
}
