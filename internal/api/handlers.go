package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bibliopi/bibliopi/internal/enrich"
	"github.com/bibliopi/bibliopi/internal/metadata"
	"github.com/bibliopi/bibliopi/internal/models"
	"github.com/bibliopi/bibliopi/internal/state"
)

// Handler contains all HTTP handlers. It is a thin edge over the state
// store: it validates input, dispatches named store operations, and
// renders snapshots. It holds no state of its own.
type Handler struct {
	store    *state.Store
	metadata metadata.Provider

	// enrichFor builds the AI provider for the current settings;
	// swappable in tests
	enrichFor func(models.AISettings) (enrich.Provider, error)
}

// NewHandler creates a new handler instance
func NewHandler(store *state.Store) *Handler {
	return &Handler{
		store:     store,
		metadata:  metadata.NewOpenLibraryProvider(),
		enrichFor: enrich.FromSettings,
	}
}

// HealthCheck reports server liveness
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now()})
}

// GetState returns the full application state snapshot
func (h *Handler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.State())
}

// setupRequest is what the onboarding wizard submits
type setupRequest struct {
	AdminName       string            `json:"admin_name"`
	AdminDOB        string            `json:"admin_dob"`
	AISettings      models.AISettings `json:"ai_settings"`
	DBSettings      models.DBSettings `json:"db_settings"`
	Rooms           []string          `json:"rooms"`
	IncludeStarters bool              `json:"include_starters"`
	Books           []models.Book     `json:"books"`
}

// CompleteSetup finishes first-run onboarding and overwrites the
// pre-setup demo state
func (h *Handler) CompleteSetup(c *gin.Context) {
	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	books := req.Books
	if req.IncludeStarters {
		books = append(books, models.StarterBooks()...)
	}

	st := h.store.Onboard(state.OnboardingInput{
		AdminName:    req.AdminName,
		AdminDOB:     req.AdminDOB,
		AI:           req.AISettings,
		DB:           req.DBSettings,
		RoomNames:    req.Rooms,
		StarterBooks: books,
	})
	c.JSON(http.StatusOK, st)
}

// ResetState discards everything and returns to the initial demo state
func (h *Handler) ResetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Reset())
}
