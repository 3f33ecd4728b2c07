// Package metadata looks up book details from external catalogue
// services by ISBN. Lookups are fire-once: failures surface to the
// caller as "not found" with no retry policy.
package metadata

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrNoMatch     = errors.New("no matching metadata found")
	ErrRateLimited = errors.New("rate limited by provider")
)

// CoverSize represents cover image size options
type CoverSize string

const (
	CoverSmall  CoverSize = "S"
	CoverMedium CoverSize = "M"
	CoverLarge  CoverSize = "L"
)

// Result is the enriched book information a provider returns
type Result struct {
	Title       string   `json:"title"`
	Author      string   `json:"author,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
	ISBN        string   `json:"isbn,omitempty"`
	PageCount   int      `json:"page_count,omitempty"`
	Publisher   string   `json:"publisher,omitempty"`
	PublishDate string   `json:"publish_date,omitempty"`
	Source      string   `json:"source"`
}

// Provider defines the interface for metadata lookup services
type Provider interface {
	// Name returns the provider identifier (e.g., "openlibrary")
	Name() string

	// LookupByISBN searches for a book by ISBN (10 or 13)
	LookupByISBN(ctx context.Context, isbn string) (*Result, error)

	// GetCoverURL returns URL for book cover image
	GetCoverURL(isbn string, size CoverSize) string
}
