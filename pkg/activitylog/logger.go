package activitylog

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/shopledger/inventory-billing-backend/pkg/database"
	"gorm.io/gorm"
)

// Logger records admin actions for the audit trail.
type Logger struct {
	db *gorm.DB
}

func NewLogger(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

// Log writes one activity entry. Details are marshalled to JSON when present.
func (l *Logger) Log(c *gin.Context, actor, action, entityType string, entityID uint, details interface{}) error {
	detailsJSON := ""
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			detailsJSON = string(b)
		}
	}

	entry := database.ActivityLog{
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    detailsJSON,
		IPAddress:  c.ClientIP(),
	}
	return l.db.Create(&entry).Error
}

// LogDelete records a deletion with a snapshot of the removed row.
func (l *Logger) LogDelete(c *gin.Context, actor, entityType string, entityID uint, oldData interface{}) error {
	return l.Log(c, actor, "delete", entityType, entityID, map[string]interface{}{
		"deleted": oldData,
	})
}
