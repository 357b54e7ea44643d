package textutil

import (
	"strings"
	"time"
	"unicode"
)

// Greek and English function words that carry no search value.
var stopwords = map[string]struct{}{
	"και": {}, "στις": {}, "στο": {}, "στη": {}, "στην": {}, "στον": {},
	"των": {}, "με": {}, "για": {}, "σε": {}, "του": {}, "της": {},
	"το": {}, "τα": {}, "οι": {}, "ενα": {}, "μια": {}, "ενος": {},
	"απο": {}, "που": {}, "πως": {}, "οπως": {}, "μετα": {}, "πριν": {},
	"κατα": {}, "ειναι": {}, "εχει": {},
	"the": {}, "and": {}, "for": {}, "with": {}, "that": {}, "from": {},
	"this": {}, "has": {}, "are": {}, "was": {}, "after": {}, "over": {},
}

func isQueryRune(r rune) bool {
	if r >= '0' && r <= '9' {
		return true
	}
	if unicode.In(r, unicode.Latin, unicode.Greek) {
		return true
	}
	return false
}

// Keywords derives up to limit salient terms from text: normalized,
// tokenized on non Latin/Greek/digit boundaries, short tokens and
// stopwords dropped, first-seen order preserved, no duplicates.
func Keywords(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	norm := Normalize(text)
	words := strings.FieldsFunc(norm, func(r rune) bool { return !isQueryRune(r) })

	seen := make(map[string]struct{}, limit)
	out := make([]string, 0, limit)
	for _, w := range words {
		if len([]rune(w)) < 3 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// SearchQuery is the derived lookup input for one article: the query
// string sent to external search, the entity terms used for match
// scoring and the event date (zero when unknown).
type SearchQuery struct {
	Query     string
	Entities  []string
	EventDate time.Time
}

// BuildSearchQuery combines the headline with its salient keywords and,
// when known, the event date formatted as YYYY-MM-DD.
func BuildSearchQuery(title, body string, eventDate time.Time, keywordLimit int) SearchQuery {
	headline := strings.TrimSpace(title)
	if headline == "" {
		headline = "Είδηση"
	}

	entities := Keywords(headline+"\n"+body, keywordLimit)

	q := headline
	if len(entities) > 0 {
		q += " " + strings.Join(entities, " ")
	}
	if !eventDate.IsZero() {
		q += " " + eventDate.Format("2006-01-02")
	}

	return SearchQuery{Query: strings.TrimSpace(q), Entities: entities, EventDate: eventDate}
}
