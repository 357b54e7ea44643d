// Package evidence scores, filters and ranks external search results
// offered as corroboration for an article.
package evidence

import (
	"strings"
	"time"

	"github.com/easynewsgr/easynews/internal/textutil"
)

// Record is one external search hit considered as corroboration.
// MatchCount, DiffDays and Score are derived during filtering/ranking.
type Record struct {
	Title       string
	URL         string
	Snippet     string
	PublishedAt string // raw, best-effort parseable; "" when unknown

	Host       string
	MatchCount int
	DiffDays   float64 // -1 when either date is unknown
	Score      float64
}

// DedupeURL and DedupeTitle let records flow through the shared
// deduplicator when hits from multiple searches are merged.
func (r Record) DedupeURL() string   { return r.URL }
func (r Record) DedupeTitle() string { return r.Title }

// Rejection records why one candidate was discarded.
type Rejection struct {
	URL    string
	Reason string
}

// Rejection reasons.
const (
	ReasonBlocklist  = "blocklist"
	ReasonNoEntity   = "no_entity"
	ReasonLowMatch   = "low_match"
	ReasonDateWindow = "date_window"
)

// publishedFormats are tried in order when parsing a hit's publish date.
var publishedFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

func parsePublished(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range publishedFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// diffDays returns the absolute day distance between the event date and
// a hit's publish date. ok is false when either side is missing or
// unparseable, meaning the hit must not be filtered by date.
func diffDays(eventDate time.Time, published string) (float64, bool) {
	if eventDate.IsZero() {
		return -1, false
	}
	pub, parsed := parsePublished(published)
	if !parsed {
		return -1, false
	}
	d := eventDate.Sub(pub).Hours() / 24
	if d < 0 {
		d = -d
	}
	return d, true
}

// normalizeEntities prepares matching entities: normalized, with terms
// too short to be discriminating dropped.
func normalizeEntities(entities []string) []string {
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		n := textutil.Normalize(e)
		if len([]rune(n)) > 2 {
			out = append(out, n)
		}
	}
	return out
}
