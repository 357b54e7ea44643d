// Package dedupe collapses items that tell the same story under a
// different link or headline styling.
package dedupe

import (
	"strings"

	"github.com/easynewsgr/easynews/internal/textutil"
)

// Keyed is anything that can offer a URL and a title for duplicate
// detection. Either may be empty.
type Keyed interface {
	DedupeURL() string
	DedupeTitle() string
}

// ByURLOrTitle keeps the first occurrence of every item, dropping later
// ones that share a case-insensitive URL or a normalized title with an
// item already kept. Items with neither a usable URL nor a non-empty
// normalized title can never collide and are always kept. Order is
// preserved; running the result through again changes nothing.
func ByURLOrTitle[T Keyed](items []T) []T {
	seenURLs := make(map[string]struct{}, len(items))
	seenTitles := make(map[string]struct{}, len(items))

	out := make([]T, 0, len(items))
	for _, it := range items {
		urlKey := strings.ToLower(strings.TrimSpace(it.DedupeURL()))
		titleKey := textutil.NormalizeTitle(it.DedupeTitle())

		_, dupURL := seenURLs[urlKey]
		_, dupTitle := seenTitles[titleKey]
		if (urlKey != "" && dupURL) || (titleKey != "" && dupTitle) {
			continue
		}

		if urlKey != "" {
			seenURLs[urlKey] = struct{}{}
		}
		if titleKey != "" {
			seenTitles[titleKey] = struct{}{}
		}
		out = append(out, it)
	}
	return out
}
