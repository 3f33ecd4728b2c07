package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibliopi/bibliopi/internal/models"
	"github.com/bibliopi/bibliopi/internal/state"
)

// readerStats summarizes one profile's reading
type readerStats struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	Rereads   int    `json:"rereads"`
}

// GetStats returns the dashboard numbers: catalogue size and value,
// read progress per profile, and loan health
func (h *Handler) GetStats(c *gin.Context) {
	st := h.store.State()
	now := time.Now()

	totalValue := 0.0
	unread := 0
	for _, b := range st.Books {
		totalValue += b.EstimatedValue
		if b.Status == models.StatusUnread {
			unread++
		}
	}

	readers := make([]readerStats, 0, len(st.Users))
	for _, u := range st.Users {
		rs := readerStats{UserID: u.ID, Name: u.Name}
		for _, e := range u.History {
			if e.Status == models.StatusCompleted {
				rs.Completed++
			}
			if e.ReadCount > 1 {
				rs.Rereads += e.ReadCount - 1
			}
		}
		readers = append(readers, rs)
	}

	open := 0
	returned := 0
	for _, l := range st.Loans {
		if l.ReturnDate != nil {
			returned++
		} else {
			open++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_books":           len(st.Books),
		"unread_books":          unread,
		"total_value":           totalValue,
		"total_value_formatted": models.FormatCurrency(totalValue),
		"readers":               readers,
		"loans_open":            open,
		"loans_returned":        returned,
		"loans_overdue":         len(state.OverdueLoans(st, now)),
	})
}
