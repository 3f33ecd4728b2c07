package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliopi/bibliopi/internal/models"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestFilename(t *testing.T) {
	assert.Equal(t, "bibliopi_backup_2026-09-01.json", Filename(testNow))
}

func TestExportImportRoundTrip(t *testing.T) {
	st := models.InitialState()
	st.IsSetupComplete = true
	st.Users = []models.User{
		{ID: "u1", Name: "Dad", Role: models.RoleAdmin, DOB: "1985-04-12", History: []models.ReadEntry{}},
	}
	st.CurrentUser = "u1"

	data, err := Export(st)
	require.NoError(t, err)

	restored, err := Import(data, testNow)
	require.NoError(t, err)

	assert.Equal(t, st.CurrentUser, restored.CurrentUser)
	assert.Len(t, restored.Books, len(st.Books))
	assert.Len(t, restored.Users, 1)
	// Derived fields come back recomputed
	assert.Equal(t, 41, restored.Users[0].Age)
	assert.False(t, restored.IsDemoMode)
}

func TestRoundTripKeepsUnknownFields(t *testing.T) {
	doc := `{"is_setup_complete": true, "books": [], "users": [],
		"future_field": {"x": 1}}`

	restored, err := Import([]byte(doc), testNow)
	require.NoError(t, err)

	data, err := Export(restored)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"future_field"`)
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	_, err := Import([]byte("{definitely not json"), testNow)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backup file")
}

func TestImportFillsMissingSettings(t *testing.T) {
	restored, err := Import([]byte(`{"is_setup_complete": true, "books": []}`), testNow)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAISettings(), restored.AISettings)
	assert.Equal(t, models.DefaultQOLSettings(), restored.QOLSettings)
}

func TestDueForBackup(t *testing.T) {
	tests := []struct {
		name     string
		settings models.BackupSettings
		expected bool
	}{
		{"manual never fires", models.BackupSettings{Frequency: "manual", LastBackupDate: "2020-01-01"}, false},
		{"unknown frequency never fires", models.BackupSettings{Frequency: "hourly"}, false},
		{"daily with no history", models.BackupSettings{Frequency: "daily"}, true},
		{"daily, backed up today", models.BackupSettings{Frequency: "daily", LastBackupDate: "2026-09-01"}, false},
		{"daily, backed up yesterday", models.BackupSettings{Frequency: "daily", LastBackupDate: "2026-08-31"}, true},
		{"weekly, three days old", models.BackupSettings{Frequency: "weekly", LastBackupDate: "2026-08-29"}, false},
		{"weekly, eight days old", models.BackupSettings{Frequency: "weekly", LastBackupDate: "2026-08-24"}, true},
		{"monthly, two weeks old", models.BackupSettings{Frequency: "monthly", LastBackupDate: "2026-08-18"}, false},
		{"monthly, five weeks old", models.BackupSettings{Frequency: "monthly", LastBackupDate: "2026-07-27"}, true},
		{"garbled last-backup date fires", models.BackupSettings{Frequency: "daily", LastBackupDate: "whenever"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DueForBackup(tt.settings, testNow))
		})
	}
}
