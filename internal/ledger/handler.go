package ledger

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{svc: NewService(db)}
}

type CreateInvoiceRequest struct {
	Date        string            `json:"date" binding:"required"`
	PersonName  string            `json:"person_name" binding:"required"`
	Lines       []LineInput       `json:"lines" binding:"required,min=1"`
	Collections []CollectionInput `json:"collections"`
	Dues        []DueInput        `json:"dues"`
	Notes       string            `json:"notes"`
}

// Create validates and saves one invoice.
func (h *Handler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invoice, err := h.svc.CreateInvoice(req.Date, req.PersonName, req.Lines, req.Collections, req.Dues, req.Notes)
	if err != nil {
		var vErr *ValidationError
		var rErr *ReconciliationError
		switch {
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
		case errors.As(err, &rErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":            rErr.Error(),
				"total":            rErr.Total,
				"collection_total": rErr.CollectionTotal,
				"due_total":        rErr.DueTotal,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save invoice"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":    invoice,
		"message": fmt.Sprintf("Invoice #%d saved.", invoice.ID),
	})
}

// List returns invoices in a date range; defaults to the current month.
func (h *Handler) List(c *gin.Context) {
	now := time.Now()
	from := c.DefaultQuery("from", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02"))
	to := c.DefaultQuery("to", now.Format("2006-01-02"))

	invoices, err := h.svc.List(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch invoices"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoices})
}

// Get returns a single invoice with its children.
func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid invoice id"})
		return
	}

	invoice, err := h.svc.Get(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoice})
}
