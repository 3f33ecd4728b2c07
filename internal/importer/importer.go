// Package importer converts uploaded CSV or JSON catalogues into
// candidate book records for bulk import.
package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bibliopi/bibliopi/internal/models"
)

// Parse turns an uploaded file into candidate books based on its
// extension. Unrecognized extensions and malformed JSON are descriptive
// errors; CSV parsing itself never fails, it yields partially filled
// records that validation then drops.
func Parse(filename string, data []byte) ([]models.Book, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return parseJSON(data)
	case ".csv":
		return parseCSV(data), nil
	default:
		return nil, fmt.Errorf("unsupported file format %q: use CSV or JSON", filepath.Ext(filename))
	}
}

// Validate reports whether a candidate has the minimum fields for
// import: a non-empty title and author.
func Validate(b models.Book) bool {
	return strings.TrimSpace(b.Title) != "" && strings.TrimSpace(b.Author) != ""
}

func parseJSON(data []byte) ([]models.Book, error) {
	trimmed := strings.TrimSpace(string(data))
	// A single top-level object becomes a one-element list
	if strings.HasPrefix(trimmed, "{") {
		var one models.Book
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("invalid JSON format: %w", err)
		}
		return []models.Book{one}, nil
	}

	var many []models.Book
	if err := json.Unmarshal(data, &many); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}
	return many, nil
}

func parseCSV(data []byte) []models.Book {
	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil || len(records) == 0 {
		return nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var books []models.Book
	for _, row := range records[1:] {
		if len(row) == 0 {
			continue
		}
		var b models.Book
		for i, header := range headers {
			if i >= len(row) {
				break
			}
			setField(&b, header, strings.TrimSpace(row[i]))
		}
		books = append(books, b)
	}
	return books
}

// setField maps one recognized (case-insensitive) header to a book
// field. List fields split on "|", numeric fields default to 0 on parse
// failure, everything else passes through as a string.
func setField(b *models.Book, header, value string) {
	switch header {
	case "title":
		b.Title = value
	case "author":
		b.Author = value
	case "isbn":
		b.ISBN = value
	case "summary":
		b.Summary = value
	case "coverurl", "cover_url":
		b.CoverURL = value
	case "genres":
		b.Genres = splitList(value)
	case "tags":
		b.Tags = splitList(value)
	case "estimatedvalue", "estimated_value":
		b.EstimatedValue = parseFloat(value)
	case "purchaseprice", "purchase_price":
		b.PurchasePrice = parseFloat(value)
	case "totalpages", "total_pages":
		b.TotalPages = int(parseFloat(value))
	case "minage", "min_age":
		b.MinAge = int(parseFloat(value))
	case "condition":
		b.Condition = models.BookCondition(value)
	case "status":
		b.Status = models.ReadStatus(value)
	case "location", "location_id":
		b.LocationID = value
	}
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, "|")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
