package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibliopi/bibliopi/internal/models"
	"github.com/bibliopi/bibliopi/internal/state"
)

// ListUsers returns all family profiles
func (h *Handler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State().Users)
}

// GetActiveUser returns the resolved current profile
func (h *Handler) GetActiveUser(c *gin.Context) {
	u, ok := state.ActiveUser(h.store.State())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No users configured"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// UpsertUser creates or updates a profile. Admin profiles must belong
// to an adult; that rule lives here at the edge, the store accepts
// whatever was validated.
func (h *Handler) UpsertUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if user.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Role == models.RoleAdmin && models.AgeAt(user.DOB, time.Now()) < 18 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin profiles must be 18 or older"})
		return
	}
	if user.ID == "" {
		user.ID = models.NewID()
	}

	h.store.UpsertUser(user)
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a profile
func (h *Handler) DeleteUser(c *gin.Context) {
	h.store.DeleteUser(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// SelectUser switches the active profile
func (h *Handler) SelectUser(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	st := h.store.SelectUser(req.UserID)
	if u, ok := state.ActiveUser(st); ok {
		c.JSON(http.StatusOK, u)
		return
	}
	c.JSON(http.StatusOK, gin.H{"current_user": req.UserID})
}
