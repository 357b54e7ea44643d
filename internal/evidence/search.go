package evidence

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/easynewsgr/easynews/internal/cache"
	"github.com/easynewsgr/easynews/internal/htmltext"
	"github.com/easynewsgr/easynews/internal/logger"
	"github.com/easynewsgr/easynews/internal/ratelimit"
	"github.com/easynewsgr/easynews/internal/textutil"
)

const (
	newsSearchEndpoint = "https://news.google.com/rss/search"
	maxSearchResults   = 25
)

// FeedSearcher looks up corroborating coverage through a news search
// feed. Results arrive as a plain RSS document, so no API key is
// needed. Calls draw from the shared search budget and identical
// queries within cacheTTL are served from the cache.
type FeedSearcher struct {
	endpoint string
	timeout  time.Duration
	budget   *ratelimit.Budget
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewFeedSearcher(timeout time.Duration, budget *ratelimit.Budget, queryCache *cache.Cache, cacheTTL time.Duration) *FeedSearcher {
	return &FeedSearcher{
		endpoint: newsSearchEndpoint,
		timeout:  timeout,
		budget:   budget,
		cache:    queryCache,
		cacheTTL: cacheTTL,
	}
}

// Search fetches candidate records for query. A used-up budget is not
// an error: the caller gets an empty set and the article simply goes
// out without corroboration.
func (s *FeedSearcher) Search(ctx context.Context, query string) ([]Record, error) {
	key := "news:" + textutil.Normalize(query)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			if records, ok := cached.([]Record); ok {
				if s.budget != nil {
					s.budget.RecordCacheHit()
				}
				return records, nil
			}
		}
	}

	if s.budget != nil && !s.budget.UseSearch() {
		logger.Debug("search budget exhausted", "query", query)
		return nil, nil
	}

	feedURL := s.endpoint + "?q=" + url.QueryEscape(query) + "&hl=el&gl=GR&ceid=GR:el"

	fetchCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	parser := gofeed.NewParser()
	feed, err := parser.ParseURLWithContext(feedURL, fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("news search failed: %w", err)
	}

	records := make([]Record, 0, min(len(feed.Items), maxSearchResults))
	for _, it := range feed.Items {
		if len(records) >= maxSearchResults {
			break
		}
		if it == nil || it.Link == "" {
			continue
		}
		records = append(records, Record{
			Title:       it.Title,
			URL:         it.Link,
			Snippet:     htmltext.Strip(it.Description),
			PublishedAt: it.Published,
		})
	}

	if s.cache != nil {
		s.cache.Set(key, records, s.cacheTTL)
	}
	return records, nil
}
