package ledger

import (
	"errors"
	"strings"

	"github.com/kaiwenlim/fintrack-be/internal/models"
)

// ErrEmptyQuery signals a missing or whitespace-only search query.
var ErrEmptyQuery = errors.New("empty search query")

// Search keeps records where category, description, or type contains the
// query as a case-insensitive substring. Matching is plural-insensitive on
// word boundaries so "grocery" finds "Groceries". No ranking: output order
// equals input order.
func Search(query string, records []models.Record) ([]models.Record, error) {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return nil, ErrEmptyQuery
	}
	normalized := normalizeWords(needle)
	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if matches(rec.Category, needle, normalized) ||
			matches(rec.Description, needle, normalized) ||
			matches(rec.Type, needle, normalized) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// matches checks the raw lowercase haystack first, then the
// singular-normalized form of both sides.
func matches(haystack, needle, normalizedNeedle string) bool {
	lowered := strings.ToLower(haystack)
	if strings.Contains(lowered, needle) {
		return true
	}
	return strings.Contains(normalizeWords(lowered), normalizedNeedle)
}

// normalizeWords reduces each word to a crude singular form. This is not a
// stemmer; it only folds the common English plural endings.
func normalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = singular(w)
	}
	return strings.Join(words, " ")
}

func singular(w string) string {
	switch {
	case len(w) > 3 && strings.HasSuffix(w, "ies"):
		return w[:len(w)-3] + "y"
	case len(w) > 2 && strings.HasSuffix(w, "es"):
		return w[:len(w)-2]
	case len(w) > 1 && strings.HasSuffix(w, "s"):
		return w[:len(w)-1]
	}
	return w
}
