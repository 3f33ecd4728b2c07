package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliopi/bibliopi/internal/models"
)

// SetTheme replaces the UI theme
func (h *Handler) SetTheme(c *gin.Context) {
	var req struct {
		Theme string `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	c.JSON(http.StatusOK, h.store.SetTheme(req.Theme))
}

// SetAISettings replaces the enrichment configuration
func (h *Handler) SetAISettings(c *gin.Context) {
	var ai models.AISettings
	if err := c.ShouldBindJSON(&ai); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if ai.Provider != "gemini" && ai.Provider != "ollama" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provider must be gemini or ollama"})
		return
	}
	c.JSON(http.StatusOK, h.store.SetAISettings(ai))
}

// SetDBSettings replaces the slot descriptor. Switching stores takes
// effect on the next start; the running process keeps its current slot.
func (h *Handler) SetDBSettings(c *gin.Context) {
	var db models.DBSettings
	if err := c.ShouldBindJSON(&db); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if db.Type != "sqlite" && db.Type != "postgres" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Type must be sqlite or postgres"})
		return
	}
	c.JSON(http.StatusOK, h.store.SetDBSettings(db))
}

// SetBackupSettings replaces the backup schedule
func (h *Handler) SetBackupSettings(c *gin.Context) {
	var b models.BackupSettings
	if err := c.ShouldBindJSON(&b); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	switch b.Frequency {
	case "daily", "weekly", "monthly", "manual":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Frequency must be daily, weekly, monthly, or manual"})
		return
	}
	c.JSON(http.StatusOK, h.store.SetBackupSettings(b))
}

// SetQOLSettings replaces the display preferences
func (h *Handler) SetQOLSettings(c *gin.Context) {
	var q models.QOLSettings
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	c.JSON(http.StatusOK, h.store.SetQOLSettings(q))
}
