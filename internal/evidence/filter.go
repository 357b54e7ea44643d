package evidence

import (
	"strings"
	"time"

	"github.com/easynewsgr/easynews/internal/textutil"
)

// FilterOptions tune the corroboration filter. Zero values fall back to
// the defaults below.
type FilterOptions struct {
	Blocklist          []string
	WindowDays         float64
	WindowDaysFallback float64
}

const (
	defaultWindowDays         = 7
	defaultWindowDaysFallback = 14

	// The fallback window only kicks in when the primary pass accepted
	// fewer results than this.
	minAcceptedBeforeRelax = 2
)

// defaultBlocklist drops non-reporting formats regardless of entities.
var defaultBlocklist = []string{"inside track", "opinion", "column", "gallery"}

// FilterResult splits candidates into accepted records (annotated with
// MatchCount, DiffDays and Host) and rejections with reasons.
type FilterResult struct {
	Accepted []Record
	Rejected []Rejection
}

// Filter evaluates each candidate against the blocklist, requires at
// least two entity matches in its title+snippet text, and, when both an
// event date and a parseable publish date exist, a day distance within
// the primary window. If fewer than two results survive and an event
// date is known, the candidates rejected only for the date window get a
// second pass against the wider fallback window; blocklist and entity
// rejections are final.
func Filter(results []Record, entities []string, eventDate time.Time, opts FilterOptions) FilterResult {
	blocklist := opts.Blocklist
	if blocklist == nil {
		blocklist = defaultBlocklist
	}
	normBlocklist := make([]string, 0, len(blocklist))
	for _, b := range blocklist {
		if n := textutil.Normalize(b); n != "" {
			normBlocklist = append(normBlocklist, n)
		}
	}

	windowPrimary := opts.WindowDays
	if windowPrimary <= 0 {
		windowPrimary = defaultWindowDays
	}
	windowFallback := opts.WindowDaysFallback
	if windowFallback <= 0 {
		windowFallback = defaultWindowDaysFallback
	}

	normEntities := normalizeEntities(entities)

	var res FilterResult
	evaluate := func(candidates []Record, windowDays float64) {
		for _, cand := range candidates {
			text := textutil.Normalize(cand.Title + " " + cand.Snippet)

			if containsAny(text, normBlocklist) {
				res.Rejected = append(res.Rejected, Rejection{URL: cand.URL, Reason: ReasonBlocklist})
				continue
			}

			matches := 0
			for _, ent := range normEntities {
				if containsSubstring(text, ent) {
					matches++
				}
			}
			if matches == 0 {
				res.Rejected = append(res.Rejected, Rejection{URL: cand.URL, Reason: ReasonNoEntity})
				continue
			}
			if matches < 2 {
				res.Rejected = append(res.Rejected, Rejection{URL: cand.URL, Reason: ReasonLowMatch})
				continue
			}

			dd, known := diffDays(eventDate, cand.PublishedAt)
			if known && dd > windowDays {
				res.Rejected = append(res.Rejected, Rejection{URL: cand.URL, Reason: ReasonDateWindow})
				continue
			}

			accepted := cand
			accepted.MatchCount = matches
			if known {
				accepted.DiffDays = dd
			} else {
				accepted.DiffDays = -1
			}
			accepted.Host = textutil.Host(cand.URL)
			res.Accepted = append(res.Accepted, accepted)
		}
	}

	evaluate(results, windowPrimary)

	if len(res.Accepted) < minAcceptedBeforeRelax && !eventDate.IsZero() {
		dateRejected := make(map[string]struct{})
		for _, rej := range res.Rejected {
			if rej.Reason == ReasonDateWindow {
				dateRejected[rej.URL] = struct{}{}
			}
		}
		if len(dateRejected) > 0 {
			relaxed := make([]Record, 0, len(dateRejected))
			for _, cand := range results {
				if _, ok := dateRejected[cand.URL]; ok {
					relaxed = append(relaxed, cand)
				}
			}
			evaluate(relaxed, windowFallback)
		}
	}

	return res
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if containsSubstring(text, n) {
			return true
		}
	}
	return false
}

func containsSubstring(text, sub string) bool {
	return sub != "" && strings.Contains(text, sub)
}
