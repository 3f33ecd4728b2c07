// Package state holds the application aggregate and the total set of
// legal transitions on it. Every transition is a pure function that takes
// the current AppState by value and returns the next one; callers never
// observe a half-applied mutation. Transitions are total: referencing a
// missing book, user, or location degrades to a no-op or a documented
// fallback instead of an error.
package state

import (
	"strings"
	"time"

	"github.com/bibliopi/bibliopi/internal/models"
)

// OnboardingInput is everything the first-run wizard collects
type OnboardingInput struct {
	AdminName    string
	AdminDOB     string
	AI           models.AISettings
	DB           models.DBSettings
	RoomNames    []string
	StarterBooks []models.Book
}

// Onboard produces a fresh post-setup state: the admin profile, one Room
// location per requested room, and the chosen starter catalogue. Whatever
// existed before setup is overwritten.
func Onboard(s models.AppState, in OnboardingInput, now time.Time) models.AppState {
	name := strings.TrimSpace(in.AdminName)
	if name == "" {
		name = "Admin"
	}
	admin := models.User{
		ID:             models.NewID(),
		Name:           name,
		DOB:            in.AdminDOB,
		Role:           models.RoleAdmin,
		EducationLevel: "Postgraduate",
		History:        []models.ReadEntry{},
	}
	admin.Age = models.AgeAt(admin.DOB, now)
	admin.Grade = admin.EducationLevel

	rooms := in.RoomNames
	if len(rooms) == 0 {
		rooms = []string{"Living Room", "Study"}
	}
	locations := make([]models.Location, 0, len(rooms))
	for _, r := range rooms {
		locations = append(locations, models.Location{
			ID:   models.NewID(),
			Name: r,
			Type: models.LocationRoom,
		})
	}

	books := make([]models.Book, 0, len(in.StarterBooks))
	for _, b := range in.StarterBooks {
		if b.ID == "" {
			b.ID = models.NewID()
		}
		if b.AddedDate.IsZero() {
			b.AddedDate = now
		}
		b.AddedByUserID = admin.ID
		books = append(books, b)
	}

	s.IsSetupComplete = true
	s.IsDemoMode = false
	s.Users = []models.User{admin}
	s.Locations = locations
	s.Books = books
	s.Loans = []models.Loan{}
	s.CurrentUser = admin.ID
	if in.AI.Provider != "" {
		s.AISettings = in.AI
	}
	if in.DB.Type != "" {
		s.DBSettings = in.DB
	}
	return s
}

// UpsertBook replaces the book with a matching id, or appends the book
// when no entry has that id. Applying the same book twice is idempotent.
func UpsertBook(s models.AppState, book models.Book) models.AppState {
	books := make([]models.Book, len(s.Books))
	copy(books, s.Books)
	for i := range books {
		if books[i].ID == book.ID {
			books[i] = book
			s.Books = books
			return s
		}
	}
	s.Books = append(books, book)
	return s
}

// DeleteBook removes the book with the given id. Absent ids are a no-op;
// the confirmation gate for destructive actions lives at the edge.
func DeleteBook(s models.AppState, bookID string) models.AppState {
	books := make([]models.Book, 0, len(s.Books))
	for _, b := range s.Books {
		if b.ID != bookID {
			books = append(books, b)
		}
	}
	s.Books = books
	return s
}

// FinishBook records that the user completed the book now. A missing
// history entry is created; an existing one flips to Completed with the
// read counter incremented and the date appended in the same step. The
// book's own Status also flips to Completed: that field is a library-wide
// convenience shared across every profile, not per-user truth.
func FinishBook(s models.AppState, bookID, userID string, now time.Time) models.AppState {
	users := make([]models.User, len(s.Users))
	copy(users, s.Users)
	for i := range users {
		if users[i].ID != userID {
			continue
		}
		u := users[i]
		history := make([]models.ReadEntry, len(u.History))
		copy(history, u.History)

		found := false
		for j := range history {
			if history[j].BookID != bookID {
				continue
			}
			found = true
			e := history[j]
			if e.Status != models.StatusCompleted {
				// Repair a desynced counter before touching it
				if e.ReadCount != len(e.ReadDates) {
					e.ReadCount = len(e.ReadDates)
				}
				dates := make([]time.Time, len(e.ReadDates), len(e.ReadDates)+1)
				copy(dates, e.ReadDates)
				e.ReadDates = append(dates, now)
				e.ReadCount++
				e.Status = models.StatusCompleted
				finished := now
				e.DateFinished = &finished
				history[j] = e
			}
		}
		if !found {
			finished := now
			history = append(history, models.ReadEntry{
				BookID:       bookID,
				Status:       models.StatusCompleted,
				DateFinished: &finished,
				ReadCount:    1,
				ReadDates:    []time.Time{now},
			})
		}
		u.History = history
		users[i] = u
	}
	s.Users = users

	books := make([]models.Book, len(s.Books))
	copy(books, s.Books)
	for i := range books {
		if books[i].ID == bookID {
			books[i].Status = models.StatusCompleted
		}
	}
	s.Books = books
	return s
}

// ReopenBook flips a completed history entry back to Reading. It never
// touches ReadCount or ReadDates: re-reading a book is not the same as
// undoing a finish, which is what UndoLastRead is for.
func ReopenBook(s models.AppState, bookID, userID string) models.AppState {
	users := make([]models.User, len(s.Users))
	copy(users, s.Users)
	for i := range users {
		if users[i].ID != userID {
			continue
		}
		u := users[i]
		history := make([]models.ReadEntry, len(u.History))
		copy(history, u.History)
		for j := range history {
			if history[j].BookID == bookID && history[j].Status == models.StatusCompleted {
				history[j].Status = models.StatusReading
			}
		}
		u.History = history
		users[i] = u
	}
	s.Users = users
	return s
}

// UndoLastRead pops the most recent read date and decrements the counter
// together, recomputing DateFinished from the new last date. With no
// dates left the entry reverts to Unread.
func UndoLastRead(s models.AppState, bookID, userID string) models.AppState {
	users := make([]models.User, len(s.Users))
	copy(users, s.Users)
	for i := range users {
		if users[i].ID != userID {
			continue
		}
		u := users[i]
		history := make([]models.ReadEntry, len(u.History))
		copy(history, u.History)
		for j := range history {
			if history[j].BookID != bookID {
				continue
			}
			e := history[j]
			if len(e.ReadDates) > 0 {
				dates := make([]time.Time, len(e.ReadDates)-1)
				copy(dates, e.ReadDates[:len(e.ReadDates)-1])
				e.ReadDates = dates
			}
			e.ReadCount--
			if e.ReadCount < 0 {
				e.ReadCount = 0
			}
			if e.ReadCount != len(e.ReadDates) {
				e.ReadCount = len(e.ReadDates)
			}
			if len(e.ReadDates) > 0 {
				last := e.ReadDates[len(e.ReadDates)-1]
				e.DateFinished = &last
				e.Status = models.StatusCompleted
			} else {
				e.DateFinished = nil
				e.Status = models.StatusUnread
			}
			history[j] = e
		}
		u.History = history
		users[i] = u
	}
	s.Users = users
	return s
}

// ResetHistory drops the user's read entry for the book entirely
func ResetHistory(s models.AppState, bookID, userID string) models.AppState {
	users := make([]models.User, len(s.Users))
	copy(users, s.Users)
	for i := range users {
		if users[i].ID != userID {
			continue
		}
		u := users[i]
		history := make([]models.ReadEntry, 0, len(u.History))
		for _, e := range u.History {
			if e.BookID != bookID {
				history = append(history, e)
			}
		}
		u.History = history
		users[i] = u
	}
	s.Users = users
	return s
}

// CreateLoan appends a lending record. Multiple open loans for the same
// book are allowed: the catalogue may hold several copies of one title.
func CreateLoan(s models.AppState, loan models.Loan) models.AppState {
	loans := make([]models.Loan, len(s.Loans), len(s.Loans)+1)
	copy(loans, s.Loans)
	s.Loans = append(loans, loan)
	return s
}

// ReturnLoan stamps the loan's return date. Already-returned or unknown
// loans are left alone.
func ReturnLoan(s models.AppState, loanID string, now time.Time) models.AppState {
	loans := make([]models.Loan, len(s.Loans))
	copy(loans, s.Loans)
	for i := range loans {
		if loans[i].ID == loanID && loans[i].ReturnDate == nil {
			returned := now
			loans[i].ReturnDate = &returned
		}
	}
	s.Loans = loans
	return s
}

// UpsertUser replaces the user with a matching id, or appends a new one.
// Derived Age/Grade are refreshed from DOB on the way in.
func UpsertUser(s models.AppState, user models.User, now time.Time) models.AppState {
	user.Age = models.AgeAt(user.DOB, now)
	if user.Role == models.RoleUser {
		user.Grade = models.GradeAt(user.DOB, now)
	} else {
		user.Grade = user.EducationLevel
	}
	if user.History == nil {
		user.History = []models.ReadEntry{}
	}

	users := make([]models.User, len(s.Users))
	copy(users, s.Users)
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			s.Users = users
			return s
		}
	}
	s.Users = append(users, user)
	return s
}

// DeleteUser removes a profile. A dangling CurrentUser is left as is;
// ActiveUser resolves it to the first remaining profile.
func DeleteUser(s models.AppState, userID string) models.AppState {
	users := make([]models.User, 0, len(s.Users))
	for _, u := range s.Users {
		if u.ID != userID {
			users = append(users, u)
		}
	}
	s.Users = users
	return s
}

// SelectUser sets the active profile
func SelectUser(s models.AppState, userID string) models.AppState {
	s.CurrentUser = userID
	return s
}

// ActiveUser resolves the current profile, falling back to the first
// user when CurrentUser is empty or dangling. With no users at all it
// returns false rather than panicking.
func ActiveUser(s models.AppState) (models.User, bool) {
	for _, u := range s.Users {
		if u.ID == s.CurrentUser {
			return u, true
		}
	}
	if len(s.Users) > 0 {
		return s.Users[0], true
	}
	return models.User{}, false
}

// UpsertLocation replaces or appends a placement node by id
func UpsertLocation(s models.AppState, loc models.Location) models.AppState {
	locs := make([]models.Location, len(s.Locations))
	copy(locs, s.Locations)
	for i := range locs {
		if locs[i].ID == loc.ID {
			locs[i] = loc
			s.Locations = locs
			return s
		}
	}
	s.Locations = append(locs, loc)
	return s
}

// DeleteLocationCascade removes a node and every transitive descendant in
// one step, so no child is ever left pointing at a removed parent.
func DeleteLocationCascade(s models.AppState, locationID string) models.AppState {
	doomed := map[string]bool{locationID: true}
	queue := []string{locationID}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, l := range s.Locations {
			if l.ParentID == parent && !doomed[l.ID] {
				doomed[l.ID] = true
				queue = append(queue, l.ID)
			}
		}
	}

	locs := make([]models.Location, 0, len(s.Locations))
	for _, l := range s.Locations {
		if !doomed[l.ID] {
			locs = append(locs, l)
		}
	}
	s.Locations = locs
	return s
}

// ResolveLocationLabel renders a human placement path like "Living Room >
// Shelf A". An empty id is "Unassigned"; an id that matches nothing is
// "Unknown".
func ResolveLocationLabel(s models.AppState, locationID string) string {
	if locationID == "" {
		return "Unassigned"
	}
	var loc *models.Location
	for i := range s.Locations {
		if s.Locations[i].ID == locationID {
			loc = &s.Locations[i]
			break
		}
	}
	if loc == nil {
		return "Unknown"
	}
	if loc.ParentID != "" {
		for i := range s.Locations {
			if s.Locations[i].ID == loc.ParentID {
				return s.Locations[i].Name + " > " + loc.Name
			}
		}
	}
	return loc.Name
}

// OverdueLoans returns the unreturned loans older than 30 days
func OverdueLoans(s models.AppState, now time.Time) []models.Loan {
	var overdue []models.Loan
	for _, l := range s.Loans {
		if l.IsOverdue(now) {
			overdue = append(overdue, l)
		}
	}
	return overdue
}
