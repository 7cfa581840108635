package database

import (
	"time"
)

// Item is a catalog entry: the item name is the natural key and the rate is
// the default unit price offered when billing.
type Item struct {
	Name string  `gorm:"column:item;primaryKey" json:"item"`
	Rate float64 `gorm:"not null" json:"rate"`
}

func (Item) TableName() string { return "items" }

// Invoice is one billing transaction for a person/shop on a given date.
// Invariant at creation time: TotalAmount == CollectionAmount + DueAmount
// (within rounding tolerance) and TotalAmount == sum of line amounts.
type Invoice struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	Date             string              `gorm:"type:date;not null;index" json:"date"`
	PersonName       string              `gorm:"not null" json:"person_name"`
	TotalAmount      float64             `gorm:"not null;default:0" json:"total_amount"`
	CollectionAmount float64             `gorm:"not null;default:0" json:"collection_amount"`
	DueAmount        float64             `gorm:"not null;default:0" json:"due_amount"`
	Notes            string              `json:"notes"`
	Lines            []InvoiceLine       `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
	Collections      []InvoiceCollection `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"collections,omitempty"`
	Dues             []InvoiceDue        `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"dues,omitempty"`
}

// InvoiceLine is one billed row, owned by its invoice. Amount is computed by
// the ledger as UnitPrice * Qty and stored.
type InvoiceLine struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	InvoiceID uint     `gorm:"not null;index" json:"invoice_id"`
	Invoice   *Invoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"-"`
	LineNo    int      `gorm:"not null" json:"line_no"`
	Item      string   `gorm:"column:item;not null" json:"item"`
	ItemRef   *Item    `gorm:"foreignKey:Item;references:Name;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	UnitPrice float64  `gorm:"not null" json:"unit_price"`
	Qty       float64  `gorm:"not null" json:"qty"`
	Units     string   `json:"units"`
	Highlight bool     `gorm:"not null;default:false" json:"highlight"`
	Amount    float64  `gorm:"not null;default:0" json:"amount"`
}

// Payment methods accepted on invoice collections.
const (
	MethodCash = "Cash"
	MethodUPI  = "UPI"
)

// InvoiceCollection is money received against an invoice, by method.
type InvoiceCollection struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	InvoiceID uint     `gorm:"not null;index" json:"invoice_id"`
	Invoice   *Invoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"-"`
	Method    string   `gorm:"not null" json:"method"`
	Amount    float64  `gorm:"not null" json:"amount"`
}

// InvoiceDue is money still owed against an invoice, tracked per shop.
type InvoiceDue struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	InvoiceID uint     `gorm:"not null;index" json:"invoice_id"`
	Invoice   *Invoice `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"-"`
	ShopNo    string   `gorm:"not null" json:"shop_no"`
	Amount    float64  `gorm:"not null" json:"amount"`
}

// InventoryMovement is a dated stock record for one item. ClosingBalance and
// StockRemaining are computed by the service at write time as
// opening + in - out + returning.
type InventoryMovement struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	Date                string  `gorm:"type:date;not null;index" json:"date"`
	Item                string  `gorm:"column:item;not null" json:"item"`
	ItemRef             *Item   `gorm:"foreignKey:Item;references:Name;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	OpeningBalance      float64 `gorm:"default:0" json:"opening_balance"`
	StockIn             float64 `gorm:"default:0" json:"stock_in"`
	StockOut            float64 `gorm:"default:0" json:"stock_out"`
	StockReturningToday float64 `gorm:"default:0" json:"stock_returning_today"`
	ClosingBalance      float64 `gorm:"default:0" json:"closing_balance"`
	StockRemaining      float64 `gorm:"default:0" json:"stock_remaining"`
}

// Collection is the legacy daily aggregate row, auto-inserted whenever an
// invoice's collection total is non-zero. Kept for coarse daily reporting.
type Collection struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Date   string  `gorm:"type:date;not null;index" json:"date"`
	Amount float64 `gorm:"not null" json:"amount"`
	Note   string  `json:"note"`
}

// ActivityLog records admin actions (login, deletions) for the audit trail.
type ActivityLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Actor      string    `gorm:"not null" json:"actor"`
	Action     string    `gorm:"not null" json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   uint      `json:"entity_id"`
	Details    string    `gorm:"type:text" json:"details"`
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}
