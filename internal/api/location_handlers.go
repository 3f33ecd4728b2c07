package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliopi/bibliopi/internal/models"
	"github.com/bibliopi/bibliopi/internal/state"
)

// ListLocations returns the placement tree as a flat list
func (h *Handler) ListLocations(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State().Locations)
}

// UpsertLocation creates or updates a placement node. The edge keeps the
// tree at most two levels deep: a child's parent must exist and must
// itself be a root.
func (h *Handler) UpsertLocation(c *gin.Context) {
	var loc models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	if loc.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if loc.Type == "" {
		loc.Type = models.LocationRoom
	}

	if loc.ParentID != "" {
		st := h.store.State()
		var parent *models.Location
		for i := range st.Locations {
			if st.Locations[i].ID == loc.ParentID {
				parent = &st.Locations[i]
				break
			}
		}
		if parent == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parent location does not exist"})
			return
		}
		if parent.ParentID != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Locations nest at most two levels deep"})
			return
		}
	}

	if loc.ID == "" {
		loc.ID = models.NewID()
	}
	h.store.UpsertLocation(loc)
	c.JSON(http.StatusOK, loc)
}

// DeleteLocation removes a node and all its descendants in one step
func (h *Handler) DeleteLocation(c *gin.Context) {
	h.store.DeleteLocationCascade(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// ResolveLocation returns the display label for a location id
func (h *Handler) ResolveLocation(c *gin.Context) {
	label := state.ResolveLocationLabel(h.store.State(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"label": label})
}
