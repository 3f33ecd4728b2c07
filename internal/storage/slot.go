// Package storage persists the whole application state to a single
// versioned slot. A Slot moves raw snapshot bytes in and out of a backing
// store (SQLite by default, Postgres optionally); the Adapter on top owns
// the JSON codec, forward-migration defaults, and the fall-back-to-initial
// behavior on missing or corrupt data.
package storage

import (
	"encoding/json"
	"errors"
	"log"
	"reflect"
	"strings"
	"time"

	"github.com/bibliopi/bibliopi/internal/models"
)

// SlotKey names the one snapshot row. Bump the suffix when the snapshot
// shape changes incompatibly.
const SlotKey = "bibliopi_state_v1"

// ErrNoSnapshot is returned by a Slot when nothing has been saved yet
var ErrNoSnapshot = errors.New("no snapshot stored")

// Slot reads and writes the raw snapshot document
type Slot interface {
	ReadSnapshot() ([]byte, error)
	WriteSnapshot(data []byte) error
	Close() error
}

// Adapter is the persistence layer handed to the state store
type Adapter struct {
	slot Slot
	now  func() time.Time
}

// NewAdapter wraps a slot
func NewAdapter(slot Slot) *Adapter {
	return &Adapter{slot: slot, now: time.Now}
}

// Load returns the persisted state, normalized, or the hard-coded initial
// state when the slot is empty or unreadable. It never fails: a corrupt
// snapshot degrades to a fresh start rather than an error.
func (a *Adapter) Load() models.AppState {
	data, err := a.slot.ReadSnapshot()
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			log.Printf("Warning: failed to load state, starting fresh: %v", err)
		}
		return models.InitialState()
	}

	state, err := DecodeState(data)
	if err != nil {
		log.Printf("Warning: stored state is corrupt, starting fresh: %v", err)
		return models.InitialState()
	}

	return Normalize(state, a.now())
}

// knownStateKeys are the top-level snapshot keys this version owns,
// taken from the AppState json tags
var knownStateKeys = func() map[string]bool {
	keys := make(map[string]bool)
	t := reflect.TypeOf(models.AppState{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			keys[name] = true
		}
	}
	return keys
}()

// DecodeState parses a snapshot document. Settings sub-objects absent
// from the payload (older snapshots) are filled with defaults; an
// explicitly stored all-false QOL configuration is left alone. Top-level
// keys this version does not recognize are kept on the state so
// EncodeState can write them back out.
func DecodeState(data []byte) (models.AppState, error) {
	var state models.AppState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.AppState{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.AppState{}, err
	}

	for key, value := range raw {
		if !knownStateKeys[key] {
			if state.Extra == nil {
				state.Extra = make(map[string]json.RawMessage)
			}
			state.Extra[key] = value
		}
	}

	if _, ok := raw["qol_settings"]; !ok {
		state.QOLSettings = models.DefaultQOLSettings()
	}
	return state, nil
}

// EncodeState serializes a state, re-merging the unknown keys carried
// from the loaded document. Known keys always come from the struct; a
// stale copy in Extra never overrides live data.
func EncodeState(state models.AppState) ([]byte, error) {
	if len(state.Extra) == 0 {
		return json.Marshal(state)
	}

	data, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for key, value := range state.Extra {
		if !knownStateKeys[key] {
			doc[key] = value
		}
	}
	return json.Marshal(doc)
}

// Save serializes and overwrites the slot
func (a *Adapter) Save(state models.AppState) error {
	data, err := EncodeState(state)
	if err != nil {
		return err
	}
	return a.slot.WriteSnapshot(data)
}

// Close releases the underlying slot
func (a *Adapter) Close() error {
	return a.slot.Close()
}

// Normalize applies forward-migration defaults and recomputes derived
// fields on a loaded or restored snapshot. Older payloads that predate a
// settings sub-object get its defaults filled in; present values are
// never dropped.
func Normalize(state models.AppState, now time.Time) models.AppState {
	if state.AISettings.Provider == "" {
		state.AISettings = models.DefaultAISettings()
	}
	if state.DBSettings.Type == "" {
		state.DBSettings = models.DefaultDBSettings()
	}
	if state.BackupSettings.Frequency == "" {
		state.BackupSettings = models.DefaultBackupSettings()
	}
	if state.Theme == "" {
		state.Theme = "dark"
	}
	if state.Books == nil {
		state.Books = []models.Book{}
	}
	if state.Users == nil {
		state.Users = []models.User{}
	}
	if state.Locations == nil {
		state.Locations = []models.Location{}
	}
	if state.Loans == nil {
		state.Loans = []models.Loan{}
	}

	// Ages and grades follow the calendar, not the snapshot
	for i := range state.Users {
		u := &state.Users[i]
		u.Age = models.AgeAt(u.DOB, now)
		if u.Role == models.RoleUser {
			u.Grade = models.GradeAt(u.DOB, now)
		} else {
			u.Grade = u.EducationLevel
		}
		if u.History == nil {
			u.History = []models.ReadEntry{}
		}
	}

	state.IsDemoMode = !state.IsSetupComplete
	return state
}
