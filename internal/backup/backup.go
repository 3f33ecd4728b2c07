// Package backup exports and restores full-state snapshots as standalone
// JSON documents, and decides when a scheduled backup is due.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bibliopi/bibliopi/internal/models"
	"github.com/bibliopi/bibliopi/internal/storage"
)

const isoDate = "2006-01-02"

// Filename returns the deterministic backup name for a given day,
// e.g. bibliopi_backup_2026-09-01.json
func Filename(now time.Time) string {
	return fmt.Sprintf("bibliopi_backup_%s.json", now.Format(isoDate))
}

// Export renders the state as an indented JSON document, unknown
// carried-along keys included
func Export(state models.AppState) ([]byte, error) {
	data, err := storage.EncodeState(state)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Import parses a backup document into a normalized state. It touches
// nothing persistent: on a parse failure the caller's existing state is
// exactly as it was, so a restore is replace-or-reject.
func Import(data []byte, now time.Time) (models.AppState, error) {
	state, err := storage.DecodeState(data)
	if err != nil {
		return models.AppState{}, fmt.Errorf("invalid backup file: %w", err)
	}
	return storage.Normalize(state, now), nil
}

// DueForBackup reports whether the schedule calls for a backup now.
// Manual frequency never triggers; a missing or unparseable last-backup
// date always does.
func DueForBackup(settings models.BackupSettings, now time.Time) bool {
	var interval time.Duration
	switch settings.Frequency {
	case "daily":
		interval = 24 * time.Hour
	case "weekly":
		interval = 7 * 24 * time.Hour
	case "monthly":
		interval = 30 * 24 * time.Hour
	default:
		return false
	}

	if settings.LastBackupDate == "" {
		return true
	}
	last, err := time.Parse(isoDate, settings.LastBackupDate)
	if err != nil {
		return true
	}
	return now.Sub(last) >= interval
}
