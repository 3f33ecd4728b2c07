package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibliopi/bibliopi/internal/models"
	"github.com/bibliopi/bibliopi/internal/state"
	"github.com/bibliopi/bibliopi/internal/tagging"
)

// ListBooks returns the catalogue
func (h *Handler) ListBooks(c *gin.Context) {
	st := h.store.State()
	c.JSON(http.StatusOK, st.Books)
}

// GetBook returns one book with its resolved location label
func (h *Handler) GetBook(c *gin.Context) {
	st := h.store.State()
	for _, b := range st.Books {
		if b.ID == c.Param("id") {
			c.JSON(http.StatusOK, gin.H{
				"book":     b,
				"location": state.ResolveLocationLabel(st, b.LocationID),
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
}

// CreateBook adds a new book to the catalogue. The edge assigns the id,
// timestamps, owner, and auto-tags before dispatching the upsert.
func (h *Handler) CreateBook(c *gin.Context) {
	var book models.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if book.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	st := h.store.State()
	book.ID = models.NewID()
	book.AddedDate = time.Now()
	if book.AddedByUserID == "" {
		if u, ok := state.ActiveUser(st); ok {
			book.AddedByUserID = u.ID
		}
	}
	if book.Status == "" {
		book.Status = models.StatusUnread
	}
	if book.Condition == "" {
		book.Condition = models.ConditionGood
	}
	book.Tags = mergeTags(book.Tags, tagging.AutoTags(book.Title, book.Summary))

	h.store.UpsertBook(book)
	c.JSON(http.StatusCreated, book)
}

// UpdateBook replaces a book by id. The id in the path wins over any id
// in the payload; AddedDate and AddedByUserID are preserved unless the
// payload sets them explicitly.
func (h *Handler) UpdateBook(c *gin.Context) {
	var book models.Book
	if err := c.ShouldBindJSON(&book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	book.ID = c.Param("id")

	st := h.store.State()
	for _, existing := range st.Books {
		if existing.ID != book.ID {
			continue
		}
		if book.AddedDate.IsZero() {
			book.AddedDate = existing.AddedDate
		}
		if book.AddedByUserID == "" {
			book.AddedByUserID = existing.AddedByUserID
		}
		h.store.UpsertBook(book)
		c.JSON(http.StatusOK, book)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
}

// DeleteBook removes a book. The destructive-action confirmation is the
// front end's job; once this endpoint is hit the delete is unconditional.
func (h *Handler) DeleteBook(c *gin.Context) {
	h.store.DeleteBook(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

type historyRequest struct {
	UserID string `json:"user_id"`
}

// FinishBook marks the book completed for the named (or active) profile
func (h *Handler) FinishBook(c *gin.Context) {
	var req historyRequest
	c.ShouldBindJSON(&req) // empty body targets the active profile
	c.JSON(http.StatusOK, h.store.FinishBook(c.Param("id"), req.UserID))
}

// ReopenBook flips a completed entry back to Reading
func (h *Handler) ReopenBook(c *gin.Context) {
	var req historyRequest
	c.ShouldBindJSON(&req)
	c.JSON(http.StatusOK, h.store.ReopenBook(c.Param("id"), req.UserID))
}

// ToggleRead keeps the one-button UI contract: it finishes an unfinished
// book and reopens a finished one, dispatching to the two named
// operations based on the profile's current entry.
func (h *Handler) ToggleRead(c *gin.Context) {
	var req historyRequest
	c.ShouldBindJSON(&req)
	bookID := c.Param("id")

	st := h.store.State()
	userID := req.UserID
	if userID == "" {
		if u, ok := state.ActiveUser(st); ok {
			userID = u.ID
		}
	}

	completed := false
	for _, u := range st.Users {
		if u.ID != userID {
			continue
		}
		if e := u.HistoryFor(bookID); e != nil && e.Status == models.StatusCompleted {
			completed = true
		}
	}

	if completed {
		c.JSON(http.StatusOK, h.store.ReopenBook(bookID, userID))
	} else {
		c.JSON(http.StatusOK, h.store.FinishBook(bookID, userID))
	}
}

// UndoLastRead reverts the most recent finish for the profile
func (h *Handler) UndoLastRead(c *gin.Context) {
	var req historyRequest
	c.ShouldBindJSON(&req)
	c.JSON(http.StatusOK, h.store.UndoLastRead(c.Param("id"), req.UserID))
}

// ResetHistory drops the profile's whole read entry for the book
func (h *Handler) ResetHistory(c *gin.Context) {
	var req historyRequest
	c.ShouldBindJSON(&req)
	c.JSON(http.StatusOK, h.store.ResetHistory(c.Param("id"), req.UserID))
}

// mergeTags appends generated tags that aren't already present
func mergeTags(existing, generated []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[t] = true
	}
	out := existing
	for _, t := range generated {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
