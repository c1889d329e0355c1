package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lokrain/harmonia-api/internal/templates"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	storageStatus := "disabled"
	if h.db != nil {
		storageStatus = "connected"
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
			storageStatus = "unreachable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"template_storage": gin.H{
			"status":   storageStatus,
			"builtins": len(templates.BuiltinIDs()),
		},
	})
}
