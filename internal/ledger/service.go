package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopledger/inventory-billing-backend/pkg/database"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Amounts within this distance of each other reconcile; covers float rounding
// on currency values.
var tolerance = decimal.RequireFromString("0.005")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type LineInput struct {
	Item      string  `json:"item"`
	UnitPrice float64 `json:"unit_price"`
	Qty       float64 `json:"qty"`
	Units     string  `json:"units"`
	Highlight bool    `json:"highlight"`
}

type CollectionInput struct {
	Method string  `json:"method"`
	Amount float64 `json:"amount"`
}

type DueInput struct {
	ShopNo string  `json:"shop_no"`
	Amount float64 `json:"amount"`
}

// CreateInvoice validates the reconciliation invariant and persists the
// invoice with its lines, collections, and dues as one atomic unit. The total
// is summed over all submitted lines; rows are filtered for storage only
// afterwards, so an empty-item or zero-qty line with a price still counts
// toward the total the caller must reconcile.
func (s *Service) CreateInvoice(date, personName string, lines []LineInput, collections []CollectionInput, dues []DueInput, notes string) (*database.Invoice, error) {
	personName = strings.TrimSpace(personName)
	if personName == "" {
		return nil, &ValidationError{Field: "person_name", Reason: "is required"}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromFloat(l.Qty)))
	}

	collTotal := decimal.Zero
	for _, c := range collections {
		if c.Amount <= 0 {
			continue
		}
		if c.Method != database.MethodCash && c.Method != database.MethodUPI {
			return nil, &ValidationError{
				Field:  "method",
				Reason: fmt.Sprintf("%q is not one of Cash, UPI", c.Method),
			}
		}
		collTotal = collTotal.Add(decimal.NewFromFloat(c.Amount))
	}

	dueTotal := decimal.Zero
	for _, d := range dues {
		if d.Amount <= 0 {
			continue
		}
		dueTotal = dueTotal.Add(decimal.NewFromFloat(d.Amount))
	}

	if total.Sub(collTotal.Add(dueTotal)).Abs().GreaterThanOrEqual(tolerance) {
		return nil, &ReconciliationError{
			Total:           total.InexactFloat64(),
			CollectionTotal: collTotal.InexactFloat64(),
			DueTotal:        dueTotal.InexactFloat64(),
		}
	}

	invoice := database.Invoice{
		Date:             date,
		PersonName:       personName,
		TotalAmount:      total.InexactFloat64(),
		CollectionAmount: collTotal.InexactFloat64(),
		DueAmount:        dueTotal.InexactFloat64(),
		Notes:            notes,
	}

	// Line numbers follow submission order, so a dropped row leaves a gap
	// rather than renumbering the rest.
	for i, l := range lines {
		item := strings.TrimSpace(l.Item)
		if item == "" || l.Qty == 0 {
			continue
		}
		invoice.Lines = append(invoice.Lines, database.InvoiceLine{
			LineNo:    i + 1,
			Item:      item,
			UnitPrice: l.UnitPrice,
			Qty:       l.Qty,
			Units:     l.Units,
			Highlight: l.Highlight,
			Amount:    decimal.NewFromFloat(l.UnitPrice).Mul(decimal.NewFromFloat(l.Qty)).InexactFloat64(),
		})
	}
	for _, c := range collections {
		if c.Amount <= 0 {
			continue
		}
		invoice.Collections = append(invoice.Collections, database.InvoiceCollection{
			Method: c.Method,
			Amount: c.Amount,
		})
	}
	for _, d := range dues {
		shop := strings.TrimSpace(d.ShopNo)
		if d.Amount <= 0 || shop == "" {
			continue
		}
		invoice.Dues = append(invoice.Dues, database.InvoiceDue{
			ShopNo: shop,
			Amount: d.Amount,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}
		if !collTotal.IsZero() {
			daily := database.Collection{
				Date:   date,
				Amount: collTotal.InexactFloat64(),
				Note:   fmt.Sprintf("Invoice #%d - %s", invoice.ID, personName),
			}
			if err := tx.Create(&daily).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// Get returns one invoice with its lines, collections, and dues.
func (s *Service) Get(id uint) (*database.Invoice, error) {
	var invoice database.Invoice
	err := s.db.Preload("Lines").Preload("Collections").Preload("Dues").
		First(&invoice, id).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List returns invoices in the inclusive date range, oldest first.
func (s *Service) List(from, to string) ([]database.Invoice, error) {
	var invoices []database.Invoice
	err := s.db.Where("date BETWEEN ? AND ?", from, to).
		Order("date, id").
		Find(&invoices).Error
	return invoices, err
}

// Delete removes an invoice; lines, collections, and dues cascade.
func (s *Service) Delete(id uint) error {
	res := s.db.Delete(&database.Invoice{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
