package models

import "encoding/json"

// AISettings selects and configures the enrichment provider
type AISettings struct {
	Provider     string `json:"provider"` // "gemini" or "ollama"
	OllamaURL    string `json:"ollama_url,omitempty"`
	OllamaModel  string `json:"ollama_model,omitempty"`
	GoogleAPIKey string `json:"google_api_key,omitempty"`
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
}

// DBSettings describes where the state slot lives
type DBSettings struct {
	Type string `json:"type"` // "sqlite" or "postgres"
	Host string `json:"host,omitempty"`
	Name string `json:"name,omitempty"`
}

// BackupSettings controls snapshot export scheduling and destinations
type BackupSettings struct {
	Frequency      string `json:"frequency"` // daily, weekly, monthly, manual
	EnabledLocal   bool   `json:"enabled_local"`
	EnabledNAS     bool   `json:"enabled_nas"`
	EnabledDrive   bool   `json:"enabled_drive"`
	NASPath        string `json:"nas_path,omitempty"`
	LastBackupDate string `json:"last_backup_date,omitempty"` // ISO date
}

// QOLSettings are small display preferences
type QOLSettings struct {
	ShowValue   bool `json:"show_value"`
	VibrantUI   bool `json:"vibrant_ui"`
	AutoAnalyze bool `json:"auto_analyze"`
}

// AppState is the root aggregate. It is persisted wholesale to a single
// versioned slot and replaced as a whole on every mutation.
type AppState struct {
	IsSetupComplete bool `json:"is_setup_complete"`

	// IsDemoMode mirrors !IsSetupComplete and flags the seeded starter
	// catalogue; it is normalized on every load
	IsDemoMode bool `json:"is_demo_mode"`

	Books     []Book     `json:"books"`
	Users     []User     `json:"users"`
	Locations []Location `json:"locations"`
	Loans     []Loan     `json:"loans"`

	// CurrentUser is a weak reference to the active profile; consumers
	// fall back to Users[0] when it is empty or dangling
	CurrentUser string `json:"current_user,omitempty"`

	Theme          string         `json:"theme"`
	AISettings     AISettings     `json:"ai_settings"`
	DBSettings     DBSettings     `json:"db_settings"`
	BackupSettings BackupSettings `json:"backup_settings"`
	QOLSettings    QOLSettings    `json:"qol_settings"`

	// Extra carries top-level snapshot keys this version does not know
	// about, so data written by a newer version survives a load-save
	// cycle here. Populated on decode, re-merged on encode, untouched
	// by every transition.
	Extra map[string]json.RawMessage `json:"-"`
}

// DefaultAISettings returns the out-of-the-box enrichment configuration
func DefaultAISettings() AISettings {
	return AISettings{
		Provider:    "gemini",
		OllamaURL:   "http://localhost:11434",
		OllamaModel: "llama3.2",
	}
}

// DefaultDBSettings returns the local single-file slot descriptor
func DefaultDBSettings() DBSettings {
	return DBSettings{Type: "sqlite", Host: "localhost", Name: "homelibrary"}
}

// DefaultBackupSettings returns the default snapshot schedule
func DefaultBackupSettings() BackupSettings {
	return BackupSettings{Frequency: "weekly", EnabledLocal: true}
}

// DefaultQOLSettings returns the default display preferences
func DefaultQOLSettings() QOLSettings {
	return QOLSettings{ShowValue: true, VibrantUI: true}
}
