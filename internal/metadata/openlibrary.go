package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// OpenLibraryProvider implements the Provider interface for Open Library API
type OpenLibraryProvider struct {
	client  *http.Client
	baseURL string
	limiter *RateLimiter
}

// NewOpenLibraryProvider creates a new Open Library provider
func NewOpenLibraryProvider() *OpenLibraryProvider {
	return &OpenLibraryProvider{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://openlibrary.org",
		limiter: NewRateLimiter(500 * time.Millisecond),
	}
}

// Name returns the provider identifier
func (p *OpenLibraryProvider) Name() string {
	return "openlibrary"
}

// olEdition represents an Open Library edition response
type olEdition struct {
	Title       string   `json:"title"`
	Authors     []olRef  `json:"authors"`
	Publishers  []string `json:"publishers"`
	PublishDate string   `json:"publish_date"`
	Covers      []int    `json:"covers"`
	NumberPages int      `json:"number_of_pages"`
	Subjects    []string `json:"subjects"`
	Description any      `json:"description"` // Can be string or {type, value}
}

// olRef represents a reference to another Open Library entity
type olRef struct {
	Key string `json:"key"`
}

// olAuthor represents an Open Library author record
type olAuthor struct {
	Name string `json:"name"`
}

// LookupByISBN fetches the edition for an ISBN and resolves its first
// author's name with a follow-up request (skipped gracefully on error).
func (p *OpenLibraryProvider) LookupByISBN(ctx context.Context, isbn string) (*Result, error) {
	isbn = normalizeISBN(isbn)
	if isbn == "" {
		return nil, ErrNoMatch
	}

	p.limiter.Wait()

	var edition olEdition
	if err := p.getJSON(ctx, fmt.Sprintf("%s/isbn/%s.json", p.baseURL, isbn), &edition); err != nil {
		return nil, err
	}

	result := &Result{
		Title:       edition.Title,
		Publisher:   firstOrEmpty(edition.Publishers),
		PublishDate: edition.PublishDate,
		PageCount:   edition.NumberPages,
		ISBN:        isbn,
		Source:      p.Name(),
	}

	// Description can be a plain string or {type, value}
	switch desc := edition.Description.(type) {
	case string:
		result.Summary = desc
	case map[string]any:
		if val, ok := desc["value"].(string); ok {
			result.Summary = val
		}
	}

	// Cap subjects to a usable genre list
	if len(edition.Subjects) > 5 {
		result.Genres = edition.Subjects[:5]
	} else {
		result.Genres = edition.Subjects
	}

	if len(edition.Covers) > 0 {
		result.CoverURL = fmt.Sprintf("https://covers.openlibrary.org/b/id/%d-L.jpg", edition.Covers[0])
	} else {
		result.CoverURL = p.GetCoverURL(isbn, CoverLarge)
	}

	if len(edition.Authors) > 0 {
		if name, err := p.resolveAuthor(ctx, edition.Authors[0].Key); err == nil {
			result.Author = name
		}
	}

	return result, nil
}

// resolveAuthor fetches an author record and returns its display name
func (p *OpenLibraryProvider) resolveAuthor(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrNoMatch
	}
	p.limiter.Wait()

	var author olAuthor
	if err := p.getJSON(ctx, fmt.Sprintf("%s%s.json", p.baseURL, key), &author); err != nil {
		return "", err
	}
	if author.Name == "" {
		return "", ErrNoMatch
	}
	return author.Name, nil
}

// GetCoverURL returns URL for book cover image
func (p *OpenLibraryProvider) GetCoverURL(isbn string, size CoverSize) string {
	isbn = normalizeISBN(isbn)
	if isbn == "" {
		return ""
	}
	return fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-%s.jpg", isbn, size)
}

func (p *OpenLibraryProvider) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case 200:
		return json.NewDecoder(resp.Body).Decode(out)
	case 404:
		return ErrNoMatch
	case 429:
		return ErrRateLimited
	default:
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
}

// normalizeISBN removes hyphens and spaces from ISBN
func normalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	// Handle URN format
	isbn = strings.TrimPrefix(strings.ToLower(isbn), "urn:isbn:")
	return strings.TrimSpace(isbn)
}

// firstOrEmpty returns the first element or empty string
func firstOrEmpty(s []string) string {
	if len(s) > 0 {
		return s[0]
	}
	return ""
}

// RateLimiter enforces a minimum interval between outgoing requests
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	lastCall time.Time
}

// NewRateLimiter creates a rate limiter with the given minimum interval
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval}
}

// Wait blocks until it's safe to make another request
func (r *RateLimiter) Wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}
