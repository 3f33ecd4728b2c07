package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibliopi/bibliopi/internal/enrich"
	"github.com/bibliopi/bibliopi/internal/metadata"
)

// LookupISBN asks the metadata provider for book details. Any provider
// failure surfaces as "book not found"; there is no retry.
func (h *Handler) LookupISBN(c *gin.Context) {
	result, err := h.metadata.LookupByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		if errors.Is(err, metadata.ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Lookup rate limited, try again shortly"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Analyze runs free text through the configured AI provider and returns
// its structured suggestion. Nothing is written until the user accepts
// the suggestion through the normal book endpoints.
func (h *Handler) Analyze(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text is required"})
		return
	}

	provider, err := h.enrichFor(h.store.State().AISettings)
	if err != nil {
		if errors.Is(err, enrich.ErrNotConfigured) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "AI provider not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	suggestion, err := provider.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Analysis failed"})
		return
	}
	c.JSON(http.StatusOK, suggestion)
}
