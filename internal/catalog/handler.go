package catalog

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{svc: NewService(db)}
}

// List returns all items with their rates.
func (h *Handler) List(c *gin.Context) {
	items, err := h.svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

type UpsertItemRequest struct {
	Item string  `json:"item" binding:"required"`
	Rate float64 `json:"rate" binding:"min=0"`
}

// Upsert adds or updates one item rate.
func (h *Handler) Upsert(c *gin.Context) {
	var req UpsertItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.svc.Upsert(req.Item, req.Rate); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Saved rate %.2f for item '%s'.", req.Rate, req.Item)})
}

// Import re-imports the catalog from an uploaded workbook. Parse failures
// degrade to zero items imported, never a server error.
func (h *Handler) Import(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	items, err := ParseWorkbook(file)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"imported": 0,
			"warning":  fmt.Sprintf("Couldn't import items from workbook: %v", err),
		})
		return
	}

	n, err := h.svc.UpsertAll(items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save imported items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"imported": n,
		"message":  fmt.Sprintf("Imported/updated %d items.", n),
	})
}
