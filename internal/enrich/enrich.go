// Package enrich asks a configured AI provider (Gemini or a local
// Ollama) for best-effort structured book metadata from free text.
// Calls are fire-once; a failure is a single error with no partial
// result merged in.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bibliopi/bibliopi/internal/models"
)

// ErrAnalysisFailed is the generic failure surfaced to the user
var ErrAnalysisFailed = errors.New("analysis failed")

// ErrNotConfigured means the selected provider is missing its key or URL
var ErrNotConfigured = errors.New("AI provider not configured")

// Suggestion is the structured metadata a provider extracts
type Suggestion struct {
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Summary string   `json:"summary,omitempty"`
	Genres  []string `json:"genres,omitempty"`
	MinAge  int      `json:"min_age,omitempty"`
}

// Provider analyzes free text describing a book (a typed description,
// OCR output from a cover photo, a speech transcript)
type Provider interface {
	Name() string
	Analyze(ctx context.Context, text string) (*Suggestion, error)
}

// FromSettings builds the provider the settings select
func FromSettings(ai models.AISettings) (Provider, error) {
	switch ai.Provider {
	case "ollama":
		if ai.OllamaURL == "" || ai.OllamaModel == "" {
			return nil, ErrNotConfigured
		}
		return NewOllamaProvider(ai.OllamaURL, ai.OllamaModel), nil
	case "gemini":
		key := ai.GeminiAPIKey
		if key == "" {
			key = ai.GoogleAPIKey
		}
		if key == "" {
			return nil, ErrNotConfigured
		}
		return NewGeminiProvider(key), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, ai.Provider)
	}
}

const analysisPrompt = `You are a librarian's assistant. From the text below, extract book metadata.
Respond with only a JSON object with keys: title, author, summary, genres (array of strings), min_age (number).

Text:
`

// parseSuggestion decodes the model's reply, tolerating markdown code fences
func parseSuggestion(reply string) (*Suggestion, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	reply = strings.TrimSpace(reply)

	var s Suggestion
	if err := json.Unmarshal([]byte(reply), &s); err != nil {
		return nil, fmt.Errorf("%w: unparseable model reply", ErrAnalysisFailed)
	}
	if s.Title == "" && s.Author == "" && s.Summary == "" {
		return nil, ErrAnalysisFailed
	}
	return &s, nil
}
