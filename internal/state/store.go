package state

import (
	"log"
	"sync"
	"time"

	"github.com/bibliopi/bibliopi/internal/models"
)

// Saver is where the store hands each new aggregate after a mutation.
// Save failures are logged and swallowed: a full disk must never make the
// application non-interactive, the in-memory state stays authoritative.
type Saver interface {
	Save(models.AppState) error
}

// Store owns the single AppState instance. Mutations run one at a time:
// each command applies a pure transition, swaps in the resulting
// aggregate, and persists it. Readers get value snapshots and never
// observe a mutation in progress.
type Store struct {
	mu    sync.Mutex
	state models.AppState
	saver Saver
	now   func() time.Time
}

// NewStore wraps an initial state and a persistence sink
func NewStore(initial models.AppState, saver Saver) *Store {
	return &Store{
		state: initial,
		saver: saver,
		now:   time.Now,
	}
}

// State returns a snapshot of the current aggregate
func (s *Store) State() models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// apply runs one transition and persists the result
func (s *Store) apply(fn func(models.AppState) models.AppState) models.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	if s.saver != nil {
		if err := s.saver.Save(s.state); err != nil {
			log.Printf("Warning: failed to persist state: %v", err)
		}
	}
	return s.state
}

// resolveUser falls back to the active profile when no explicit target
// profile was named
func (s *Store) resolveUser(st models.AppState, userID string) string {
	if userID != "" {
		return userID
	}
	if u, ok := ActiveUser(st); ok {
		return u.ID
	}
	return ""
}

// Onboard completes first-run setup
func (s *Store) Onboard(in OnboardingInput) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return Onboard(st, in, s.now())
	})
}

// UpsertBook creates or replaces a book by id
func (s *Store) UpsertBook(book models.Book) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return UpsertBook(st, book)
	})
}

// DeleteBook removes a book; absent ids are a no-op
func (s *Store) DeleteBook(bookID string) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return DeleteBook(st, bookID)
	})
}

// FinishBook marks a book completed for the given (or active) profile
func (s *Store) FinishBook(bookID, userID string) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return FinishBook(st, bookID, s.resolveUser(st, userID), s.now())
	})
}

// ReopenBook flips a completed entry back to Reading without touching counters
func (s *Store) ReopenBook(bookID, userID string) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return ReopenBook(st, bookID, s.resolveUser(st, userID))
	})
}

// UndoLastRead reverts the most recent finish for the given (or active) profile
func (s *Store) UndoLastRead(bookID, userID string) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return UndoLastRead(st, bookID, s.resolveUser(st, userID))
	})
}

// ResetHistory removes the profile's read entry for the book
func (s *Store) ResetHistory(bookID, userID string) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return ResetHistory(st, bookID, s.resolveUser(st, userID))
	})
}

// CreateLoan appends a lending record
func (s *Store) CreateLoan(loan models.Loan) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return CreateLoan(st, loan)
	})
}

// ReturnLoan closes an open loan
func (s *Store) ReturnLoan(loanID string) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return ReturnLoan(st, loanID, s.now())
	})
}

// UpsertUser creates or replaces a profile by id
func (s *Store) UpsertUser(user models.User) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return UpsertUser(st, user, s.now())
	})
}

// DeleteUser removes a profile
func (s *Store) DeleteUser(userID string) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return DeleteUser(st, userID)
	})
}

// SelectUser switches the active profile
func (s *Store) SelectUser(userID string) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return SelectUser(st, userID)
	})
}

// UpsertLocation creates or replaces a placement node
func (s *Store) UpsertLocation(loc models.Location) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return UpsertLocation(st, loc)
	})
}

// DeleteLocationCascade removes a node and all its descendants
func (s *Store) DeleteLocationCascade(locationID string) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		return DeleteLocationCascade(st, locationID)
	})
}

// SetTheme replaces the UI theme
func (s *Store) SetTheme(theme string) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		st.Theme = theme
		return st
	})
}

// SetAISettings replaces the enrichment configuration
func (s *Store) SetAISettings(ai models.AISettings) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		st.AISettings = ai
		return st
	})
}

// SetDBSettings replaces the slot descriptor
func (s *Store) SetDBSettings(db models.DBSettings) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		st.DBSettings = db
		return st
	})
}

// SetBackupSettings replaces the backup schedule
func (s *Store) SetBackupSettings(b models.BackupSettings) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		st.BackupSettings = b
		return st
	})
}

// SetQOLSettings replaces the display preferences
func (s *Store) SetQOLSettings(q models.QOLSettings) models.AppState {
	return s.apply(func(st models.AppState) models.AppState {
		st.QOLSettings = q
		return st
	})
}

// Replace swaps in a fully formed state, e.g. after a backup restore
func (s *Store) Replace(st models.AppState) models.AppState {
	return s.apply(func(models.AppState) models.AppState {
		return st
	})
}

// Reset discards everything and returns to the initial demo state
func (s *Store) Reset() models.AppState {
	return s.apply(func(models.AppState) models.AppState {
		return models.InitialState()
	})
}
