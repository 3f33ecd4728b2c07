package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibliopi/bibliopi/internal/models"
	"github.com/bibliopi/bibliopi/internal/state"
)

// ListLoans returns all lending records
func (h *Handler) ListLoans(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State().Loans)
}

// ListOverdueLoans returns unreturned loans older than 30 days
func (h *Handler) ListOverdueLoans(c *gin.Context) {
	overdue := state.OverdueLoans(h.store.State(), time.Now())
	if overdue == nil {
		overdue = []models.Loan{}
	}
	c.JSON(http.StatusOK, overdue)
}

// CreateLoan records a book lent out. Several open loans on one title
// are allowed: households may own multiple copies.
func (h *Handler) CreateLoan(c *gin.Context) {
	var loan models.Loan
	if err := c.ShouldBindJSON(&loan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if loan.BookID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Book id is required"})
		return
	}
	if loan.UserID == "" && loan.BorrowerName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Borrower is required"})
		return
	}

	loan.ID = models.NewID()
	if loan.LoanDate.IsZero() {
		loan.LoanDate = time.Now()
	}
	loan.ReturnDate = nil

	h.store.CreateLoan(loan)
	c.JSON(http.StatusCreated, loan)
}

// ReturnLoan closes an open loan
func (h *Handler) ReturnLoan(c *gin.Context) {
	st := h.store.ReturnLoan(c.Param("id"))
	for _, l := range st.Loans {
		if l.ID == c.Param("id") {
			c.JSON(http.StatusOK, l)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
}
