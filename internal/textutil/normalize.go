// Package textutil holds the text normalization and keyword helpers
// shared by the matcher, the deduplicator and query building.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes to NFD, drops combining marks and recomposes.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritics, replaces punctuation and quote
// variants with spaces and collapses whitespace. Total: any input,
// including the empty string, yields a valid (possibly empty) result.
// Idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	folded, _, err := transform.String(stripAccents, text)
	if err != nil {
		// Malformed UTF-8; keep the original bytes and continue.
		folded = text
	}

	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeTitle prepares a title for duplicate detection: lowercase,
// quote/apostrophe variants removed, whitespace collapsed. Punctuation is
// otherwise kept so that distinct headlines don't collapse too eagerly.
func NormalizeTitle(title string) string {
	t := strings.ToLower(title)
	t = strings.Map(func(r rune) rune {
		switch r {
		case '«', '»', '"', '“', '”', '\'', '’', '`':
			return -1
		}
		return r
	}, t)
	return strings.Join(strings.Fields(t), " ")
}

// Host extracts a lowercase hostname from a URL, dropping scheme, path
// and a leading www. Returns "" when nothing host-like is present.
func Host(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return ""
	}
	if i := strings.Index(u, "://"); i >= 0 {
		u = u[i+3:]
	}
	if i := strings.IndexAny(u, "/?#"); i >= 0 {
		u = u[:i]
	}
	// Strip userinfo and port.
	if i := strings.LastIndex(u, "@"); i >= 0 {
		u = u[i+1:]
	}
	if i := strings.Index(u, ":"); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimPrefix(strings.ToLower(u), "www.")
	return strings.TrimSpace(u)
}
