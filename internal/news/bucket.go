package news

import (
	"sort"
	"time"

	"github.com/easynewsgr/easynews/internal/category"
)

const defaultPerCategoryLimit = 6

// Bucketize splits articles into per-category buckets, newest first,
// each capped at perCategoryLimit. Articles published within
// recencyWindow before now fill a bucket first; when a bucket has spare
// room it is backfilled with older items so a slow news day still
// yields content. Articles dated in the future and articles older than
// the window compete only for backfill slots. Unknown categories fold
// into Other.
func Bucketize(articles []Article, perCategoryLimit int, recencyWindow time.Duration, now time.Time) map[category.Category][]Article {
	if perCategoryLimit <= 0 {
		perCategoryLimit = defaultPerCategoryLimit
	}

	grouped := make(map[category.Category][]Article)
	for _, a := range articles {
		cat := a.Category
		if !cat.Valid() {
			cat = category.Other
		}
		grouped[cat] = append(grouped[cat], a)
	}

	cutoff := now.Add(-recencyWindow)
	out := make(map[category.Category][]Article, len(grouped))
	for cat, group := range grouped {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].PublishedAt.After(group[j].PublishedAt)
		})

		recent := make([]Article, 0, len(group))
		older := make([]Article, 0, len(group))
		for _, a := range group {
			if !a.PublishedAt.Before(cutoff) && !a.PublishedAt.After(now) {
				recent = append(recent, a)
			} else {
				older = append(older, a)
			}
		}

		bucket := recent
		if len(bucket) > perCategoryLimit {
			bucket = bucket[:perCategoryLimit]
		}
		for _, a := range older {
			if len(bucket) >= perCategoryLimit {
				break
			}
			bucket = append(bucket, a)
		}
		if len(bucket) > 0 {
			out[cat] = bucket
		}
	}
	return out
}
