package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes wired
func NewRouter(h *Handler) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/health", h.HealthCheck)

	api := r.Group("/api")
	{
		api.GET("/state", h.GetState)
		api.POST("/setup", h.CompleteSetup)
		api.POST("/reset", h.ResetState)
		api.GET("/stats", h.GetStats)

		api.GET("/books", h.ListBooks)
		api.POST("/books", h.CreateBook)
		api.GET("/books/:id", h.GetBook)
		api.PUT("/books/:id", h.UpdateBook)
		api.DELETE("/books/:id", h.DeleteBook)
		api.POST("/books/:id/finish", h.FinishBook)
		api.POST("/books/:id/reopen", h.ReopenBook)
		api.POST("/books/:id/toggle-read", h.ToggleRead)
		api.POST("/books/:id/undo-read", h.UndoLastRead)
		api.DELETE("/books/:id/history", h.ResetHistory)

		api.GET("/loans", h.ListLoans)
		api.GET("/loans/overdue", h.ListOverdueLoans)
		api.POST("/loans", h.CreateLoan)
		api.POST("/loans/:id/return", h.ReturnLoan)

		api.GET("/users", h.ListUsers)
		api.GET("/users/active", h.GetActiveUser)
		api.POST("/users", h.UpsertUser)
		api.DELETE("/users/:id", h.DeleteUser)
		api.POST("/users/select", h.SelectUser)

		api.GET("/locations", h.ListLocations)
		api.POST("/locations", h.UpsertLocation)
		api.DELETE("/locations/:id", h.DeleteLocation)
		api.GET("/locations/:id/label", h.ResolveLocation)

		api.PUT("/settings/theme", h.SetTheme)
		api.PUT("/settings/ai", h.SetAISettings)
		api.PUT("/settings/db", h.SetDBSettings)
		api.PUT("/settings/backup", h.SetBackupSettings)
		api.PUT("/settings/qol", h.SetQOLSettings)

		api.POST("/import", h.BulkImport)
		api.GET("/backup", h.ExportBackup)
		api.POST("/restore", h.RestoreBackup)

		api.GET("/lookup/:isbn", h.LookupISBN)
		api.POST("/analyze", h.Analyze)
	}

	return r
}

// corsMiddleware allows the single-page front end to call from any origin
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
