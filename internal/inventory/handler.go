package inventory

import (
	"fmt"
	"net/http"
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

type SaveMovementsRequest struct {
	Date string          `json:"date" binding:"required"`
	Rows []MovementInput `json:"rows" binding:"required,min=1"`
}

// Save records a batch of stock movements for one date.
func (h *Handler) Save(c *gin.Context) {
	var req SaveMovementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	count, err := h.svc.AddMovements(req.Date, req.Rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save movements"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Add at least one item row"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Saved %d movement rows for %s.", count, req.Date),
		"count":   count,
	})
}

// List returns movements in a date range; defaults to the current month.
func (h *Handler) List(c *gin.Context) {
	now := time.Now()
	from := c.DefaultQuery("from", time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02"))
	to := c.DefaultQuery("to", now.Format("2006-01-02"))

	movements, err := h.svc.List(from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch movements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movements})
}
