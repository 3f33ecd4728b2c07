package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReadStatus tracks how far a book (or a user's history entry) has progressed
type ReadStatus string

const (
	StatusUnread    ReadStatus = "Unread"
	StatusReading   ReadStatus = "Reading"
	StatusCompleted ReadStatus = "Completed"
)

// BookCondition describes the physical state of a copy
type BookCondition string

const (
	ConditionNew     BookCondition = "New"
	ConditionGood    BookCondition = "Good"
	ConditionFair    BookCondition = "Fair"
	ConditionPoor    BookCondition = "Poor"
	ConditionDamaged BookCondition = "Damaged"
)

// Role distinguishes admin (parent) profiles from regular (child) profiles
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// LocationType is the level of a node in the placement tree
type LocationType string

const (
	LocationRoom  LocationType = "Room"
	LocationShelf LocationType = "Shelf"
	LocationSpot  LocationType = "Spot"
)

// MediaAdaptation records a film/TV/stage adaptation of a book
type MediaAdaptation struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Year        string `json:"year,omitempty"`
	Description string `json:"description,omitempty"`
}

// Book represents one physical book in the household catalogue
type Book struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Author    string        `json:"author"`
	ISBN      string        `json:"isbn,omitempty"`
	Genres    []string      `json:"genres,omitempty"`
	Tags      []string      `json:"tags,omitempty"`
	Status    ReadStatus    `json:"status"`
	Condition BookCondition `json:"condition,omitempty"`

	// LocationID is a weak reference into AppState.Locations. Empty means
	// unassigned; a dangling id resolves to "Unknown" for display.
	LocationID string `json:"location_id,omitempty"`

	AddedByUserID string    `json:"added_by_user_id,omitempty"`
	AddedDate     time.Time `json:"added_date"`

	PurchasePrice  float64 `json:"purchase_price,omitempty"`
	EstimatedValue float64 `json:"estimated_value,omitempty"`

	// MinAge gates which profiles the book is surfaced to
	MinAge int `json:"min_age,omitempty"`

	// Enrichment fields, filled by metadata lookup or AI analysis
	Summary          string            `json:"summary,omitempty"`
	CoverURL         string            `json:"cover_url,omitempty"`
	TotalPages       int               `json:"total_pages,omitempty"`
	MediaAdaptations []MediaAdaptation `json:"media_adaptations,omitempty"`
	IsFirstEdition   bool              `json:"is_first_edition,omitempty"`
	IsSigned         bool              `json:"is_signed,omitempty"`
}

// ReadEntry is one user's read/reread history for one book.
// ReadCount and len(ReadDates) move together: finishing appends a date and
// increments the count, undo pops a date and decrements the count.
type ReadEntry struct {
	BookID       string      `json:"book_id"`
	Status       ReadStatus  `json:"status"`
	DateFinished *time.Time  `json:"date_finished,omitempty"`
	ReadCount    int         `json:"read_count,omitempty"`
	ReadDates    []time.Time `json:"read_dates,omitempty"`
}

// User is a family member profile
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	DOB            string `json:"dob,omitempty"` // ISO date, YYYY-MM-DD
	Gender         string `json:"gender,omitempty"`
	Role           Role   `json:"role"`
	ParentRole     string `json:"parent_role,omitempty"`
	EducationLevel string `json:"education_level,omitempty"`

	// Age and Grade are recomputed from DOB on every load and never
	// trusted as persisted truth
	Age   int    `json:"age,omitempty"`
	Grade string `json:"grade,omitempty"`

	Favorites []string    `json:"favorites,omitempty"`
	History   []ReadEntry `json:"history"`
}

// HistoryFor returns the user's read entry for a book, or nil
func (u *User) HistoryFor(bookID string) *ReadEntry {
	for i := range u.History {
		if u.History[i].BookID == bookID {
			return &u.History[i]
		}
	}
	return nil
}

// Location is a node in the two-level Room > Shelf/Spot placement tree
type Location struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Type     LocationType `json:"type"`
	ParentID string       `json:"parent_id,omitempty"`
}

// Loan records a book lent out of the house
type Loan struct {
	ID           string     `json:"id"`
	BookID       string     `json:"book_id"`
	UserID       string     `json:"user_id,omitempty"`
	BorrowerName string     `json:"borrower_name,omitempty"`
	LoanDate     time.Time  `json:"loan_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
}

// OverdueAfter is how long an unreturned loan may sit before it counts as overdue
const OverdueAfter = 30 * 24 * time.Hour

// IsOverdue reports whether the loan is unreturned and older than 30 days
func (l *Loan) IsOverdue(now time.Time) bool {
	return l.ReturnDate == nil && now.Sub(l.LoanDate) > OverdueAfter
}

// NewID generates a short unique id for catalogue entities
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
}
