package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibliopi/bibliopi/internal/backup"
	"github.com/bibliopi/bibliopi/internal/importer"
	"github.com/bibliopi/bibliopi/internal/models"
	"github.com/bibliopi/bibliopi/internal/state"
	"github.com/bibliopi/bibliopi/internal/tagging"
)

// BulkImport accepts a CSV or JSON upload and adds every record that
// passes validation. Rejected rows are dropped silently; the response
// reports how many made it in.
func (h *Handler) BulkImport(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	candidates, err := importer.Parse(header.Filename, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st := h.store.State()
	var owner string
	if u, ok := state.ActiveUser(st); ok {
		owner = u.ID
	}

	imported := 0
	now := time.Now()
	for _, b := range candidates {
		if !importer.Validate(b) {
			continue
		}
		b.ID = models.NewID()
		b.AddedDate = now
		b.AddedByUserID = owner
		if b.Status == "" {
			b.Status = models.StatusUnread
		}
		if b.Condition == "" {
			b.Condition = models.ConditionGood
		}
		b.Tags = mergeTags(b.Tags, tagging.AutoTags(b.Title, b.Summary))
		h.store.UpsertBook(b)
		imported++
	}

	c.JSON(http.StatusOK, gin.H{
		"imported": imported,
		"skipped":  len(candidates) - imported,
	})
}

// ExportBackup streams the full state as a downloadable JSON document
// and stamps the last-backup date
func (h *Handler) ExportBackup(c *gin.Context) {
	st := h.store.State()
	data, err := backup.Export(st)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize state"})
		return
	}

	now := time.Now()
	settings := st.BackupSettings
	settings.LastBackupDate = now.Format("2006-01-02")
	h.store.SetBackupSettings(settings)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.Filename(now)))
	c.Data(http.StatusOK, "application/json", data)
}

// RestoreBackup replaces the whole state from an uploaded snapshot.
// A document that fails to parse changes nothing: the previous state
// stays persisted exactly as it was.
func (h *Handler) RestoreBackup(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No backup provided"})
		return
	}

	restored, err := backup.Import(data, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.store.Replace(restored))
}
