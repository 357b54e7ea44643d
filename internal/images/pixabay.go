// Package images resolves an illustrative photo for an article via the
// Pixabay search API, under a per-run call budget and a query cache.
package images

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/easynewsgr/easynews/internal/cache"
	"github.com/easynewsgr/easynews/internal/logger"
	"github.com/easynewsgr/easynews/internal/ratelimit"
	"github.com/easynewsgr/easynews/internal/textutil"
)

const (
	searchEndpoint = "https://pixabay.com/api/"
	perPage        = 100

	// A hit must reach this tag-overlap score before we attach it;
	// otherwise no image beats a wrong image.
	acceptThreshold = 3
)

// Hit is one search result from the image API.
type Hit struct {
	Tags          string `json:"tags"`
	PreviewURL    string `json:"previewURL"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	ImageWidth    int    `json:"imageWidth"`
}

type searchResponse struct {
	Hits []Hit `json:"hits"`
}

// Client searches photos under budget/cache control. Zero-value-safe:
// a nil Client resolves nothing.
type Client struct {
	apiKey   string
	endpoint string
	http     *http.Client
	budget   *ratelimit.Budget
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewClient(apiKey string, timeout time.Duration, budget *ratelimit.Budget, queryCache *cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: searchEndpoint,
		http:     &http.Client{Timeout: timeout},
		budget:   budget,
		cache:    queryCache,
		cacheTTL: cacheTTL,
	}
}

// Resolve returns an image URL for the keywords or "" when nothing
// scores above the acceptance threshold. Lookup failures and an
// exhausted budget degrade to "" rather than erroring; identical
// queries are served from the cache without spending budget.
func (c *Client) Resolve(ctx context.Context, keywords []string, seed string) string {
	if c == nil || len(keywords) == 0 {
		return ""
	}

	query := textutil.Normalize(strings.Join(keywords, " "))
	if query == "" {
		return ""
	}

	hits, ok := c.search(ctx, query)
	if !ok || len(hits) == 0 {
		return ""
	}

	var best *Hit
	bestScore := -1
	for i := range hits {
		if s := scoreHit(hits[i], keywords); s > bestScore {
			bestScore = s
			best = &hits[i]
		}
	}
	if best == nil || bestScore < acceptThreshold {
		return ""
	}

	if u := pickURL(*best); u != "" {
		return u
	}
	// Tie-break to a stable hit so the same article keeps its image
	// across runs.
	return pickURL(hits[stableIndex(seed, len(hits))])
}

func (c *Client) search(ctx context.Context, query string) ([]Hit, bool) {
	if c.cache != nil {
		if cached, hit := c.cache.Get(query); hit {
			if c.budget != nil {
				c.budget.RecordCacheHit()
			}
			hits, _ := cached.([]Hit)
			return hits, true
		}
	}

	if c.budget != nil && !c.budget.UseSearch() {
		return nil, false
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("image_type", "photo")
	params.Set("orientation", "horizontal")
	params.Set("safesearch", "true")
	params.Set("order", "popular")
	params.Set("per_page", fmt.Sprintf("%d", perPage))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn("image search failed", "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn("image search bad status", "status", resp.StatusCode)
		return nil, false
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Warn("image search bad payload", "error", err)
		return nil, false
	}

	if c.cache != nil {
		c.cache.Set(query, payload.Hits, c.cacheTTL)
	}
	return payload.Hits, true
}

// scoreHit counts keyword presence in the hit's tag string: +3 per
// matched keyword, +1 for comfortably wide images.
func scoreHit(h Hit, keywords []string) int {
	tags := textutil.Normalize(h.Tags)
	if tags == "" {
		return 0
	}

	score := 0
	for _, k := range keywords {
		kk := textutil.Normalize(k)
		if kk != "" && strings.Contains(tags, kk) {
			score += 3
		}
	}
	if h.ImageWidth >= 1600 {
		score++
	}
	return score
}

func pickURL(h Hit) string {
	switch {
	case h.LargeImageURL != "":
		return h.LargeImageURL
	case h.WebformatURL != "":
		return h.WebformatURL
	default:
		return h.PreviewURL
	}
}

// stableIndex hashes the seed so fallback picks are deterministic per
// article.
func stableIndex(seed string, modulo int) int {
	if modulo <= 0 {
		return 0
	}
	if seed == "" {
		seed = "seed"
	}
	sum := sha1.Sum([]byte(seed))
	return int(binary.BigEndian.Uint32(sum[:4]) % uint32(modulo))
}
