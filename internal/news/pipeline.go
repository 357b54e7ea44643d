package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/easynewsgr/easynews/internal/category"
	"github.com/easynewsgr/easynews/internal/dedupe"
	"github.com/easynewsgr/easynews/internal/evidence"
	"github.com/easynewsgr/easynews/internal/htmltext"
	"github.com/easynewsgr/easynews/internal/llm"
	"github.com/easynewsgr/easynews/internal/logger"
	"github.com/easynewsgr/easynews/internal/metrics"
	"github.com/easynewsgr/easynews/internal/rss"
	"github.com/easynewsgr/easynews/internal/textutil"
)

// Gate decides whether an article is suitable for publication at all.
type Gate interface {
	Gatekeep(ctx context.Context, title, rawText string) llm.GateDecision
}

// Classifier maps an article onto the fixed category taxonomy.
type Classifier interface {
	Classify(ctx context.Context, title, simpleText, rawText string, fallback category.Category) llm.ClassificationResult
}

// Simplifier rewrites an article into easy-to-read Greek.
type Simplifier interface {
	Simplify(ctx context.Context, title, rawText, sourceURL string) (llm.Simplified, error)
}

// ImageResolver finds a stock image for a keyword set. An empty result
// means no image.
type ImageResolver interface {
	Resolve(ctx context.Context, keywords []string, seed string) string
}

// Searcher runs one external lookup and returns raw candidate results
// for the evidence filter.
type Searcher interface {
	Search(ctx context.Context, query string) ([]evidence.Record, error)
}

// Options tune one pipeline run.
type Options struct {
	KeywordLimit      int
	Fallback          category.Category
	Blocklist         []string
	EvidenceWindow    float64
	EvidenceWindowMax float64
	MaxEvidence       int
	TrustedDomains    []string
	Concurrency       int
}

// Pipeline wires the decision stages together. Gate, Classifier and
// Simplifier are required; Images and Searcher may be nil, which skips
// the corresponding enrichment.
type Pipeline struct {
	Gate       Gate
	Classifier Classifier
	Simplifier Simplifier
	Images     ImageResolver
	Searcher   Searcher
	Metrics    *metrics.Metrics
	Options    Options
	Now        func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func (p *Pipeline) stats() *metrics.Metrics {
	if p.Metrics != nil {
		return p.Metrics
	}
	return metrics.Global
}

// Curate runs the full per-article chain over deduplicated feed items
// and returns the surviving, fully enriched articles in input order.
// Per-article failures never abort the run; the only fatal condition is
// an empty input set.
func (p *Pipeline) Curate(ctx context.Context, items []rss.Item) ([]Article, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no feed items to process")
	}

	candidates := make([]candidate, 0, len(items))
	for _, it := range items {
		p.stats().IncrementArticlesSeen()

		title := strings.TrimSpace(it.Title)
		raw := htmltext.Strip(it.HTMLContent)
		if title == "" && raw == "" {
			logger.Debug("skipping empty feed item", "link", it.Link)
			continue
		}

		published := it.Published
		if !it.HasDate || published.IsZero() {
			published = p.now()
		}

		candidates = append(candidates, candidate{
			item: it,
			article: Article{
				ID:          NewArticleID(it.GUID, it.Link, title, published),
				Title:       title,
				RawText:     raw,
				SourceURL:   it.Link,
				SourceName:  it.SourceName,
				PublishedAt: published,
			},
		})
	}

	before := len(candidates)
	candidates = dedupe.ByURLOrTitle(candidates)
	for i := before - len(candidates); i > 0; i-- {
		p.stats().IncrementDuplicatesFiltered()
	}

	concurrency := p.Options.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	results := make([]*Article, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, c := range candidates {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.process(gctx, c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Article, 0, len(results))
	for _, a := range results {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out, nil
}

type candidate struct {
	item    rss.Item
	article Article
}

func (c candidate) DedupeURL() string   { return c.article.SourceURL }
func (c candidate) DedupeTitle() string { return c.article.Title }

// process runs one article through gate, rewrite, classification,
// evidence lookup and media resolution. A nil return drops the article.
func (p *Pipeline) process(ctx context.Context, c candidate) *Article {
	a := c.article

	decision := p.Gate.Gatekeep(ctx, a.Title, a.RawText)
	if !decision.Accepted {
		p.stats().IncrementGateRejected()
		p.stats().IncrementSensitiveDropped()
		logger.Info("article rejected by gate", "title", a.Title, "verdict", decision.Verdict)
		return nil
	}

	simplified, err := p.Simplifier.Simplify(ctx, a.Title, a.RawText, a.SourceURL)
	if err != nil {
		logger.Warn("simplification failed, keeping original text", "title", a.Title, "error", err)
	} else {
		a.SimpleTitle = simplified.Title
		a.SimpleText = simplified.Text
	}

	classified := p.Classifier.Classify(ctx, a.Title, a.SimpleText, a.RawText, p.fallback())
	if classified.Fallback {
		p.stats().IncrementFallbackClassifications()
	}
	a.Category = classified.Category

	body := a.SimpleText
	if body == "" {
		body = a.RawText
	}
	eventDate := time.Time{}
	if c.item.HasDate {
		eventDate = a.PublishedAt
	}
	query := textutil.BuildSearchQuery(a.Title, body, eventDate, p.Options.KeywordLimit)

	if p.Searcher != nil {
		a.Sources = p.lookupEvidence(ctx, query)
	}

	a.ImageURL = optional(p.resolveImage(ctx, c.item, query.Entities, a.ID))
	a.VideoURL = optional(htmltext.VideoURL(c.item))

	return &a
}

func (p *Pipeline) lookupEvidence(ctx context.Context, query textutil.SearchQuery) []SourceRef {
	records, err := p.Searcher.Search(ctx, query.Query)
	if err != nil {
		logger.Warn("evidence lookup failed", "query", query.Query, "error", err)
		return nil
	}

	records = dedupe.ByURLOrTitle(records)
	filtered := evidence.Filter(records, query.Entities, query.EventDate, evidence.FilterOptions{
		Blocklist:          p.Options.Blocklist,
		WindowDays:         p.Options.EvidenceWindow,
		WindowDaysFallback: p.Options.EvidenceWindowMax,
	})
	ranked := evidence.Rank(filtered.Accepted, evidence.RankOptions{
		WhitelistDomains: p.Options.TrustedDomains,
		Max:              p.Options.MaxEvidence,
	})

	refs := make([]SourceRef, 0, len(ranked))
	for _, r := range ranked {
		refs = append(refs, SourceRef{
			Title: r.Title,
			URL:   r.URL,
			Host:  r.Host,
			Label: sourceLabel(r.Host),
		})
	}
	return refs
}

// resolveImage prefers media already attached to the feed entry and
// only then asks the stock image resolver.
func (p *Pipeline) resolveImage(ctx context.Context, item rss.Item, keywords []string, seed string) string {
	if url := htmltext.ImageURL(item); url != "" {
		return url
	}
	if p.Images == nil {
		return ""
	}
	return p.Images.Resolve(ctx, keywords, seed)
}

func (p *Pipeline) fallback() category.Category {
	if p.Options.Fallback.Valid() {
		return p.Options.Fallback
	}
	return category.Other
}

// Display labels for well-known Greek outlets; anything else shows its
// bare host.
var sourceLabels = map[string]string{
	"ertnews.gr":       "ΕΡΤ News",
	"kathimerini.gr":   "Η Καθημερινή",
	"in.gr":            "in.gr",
	"naftemporiki.gr":  "Ναυτεμπορική",
	"protothema.gr":    "Πρώτο Θέμα",
	"skai.gr":          "ΣΚΑΪ",
	"news247.gr":       "News 24/7",
	"efsyn.gr":         "Εφημερίδα των Συντακτών",
	"tovima.gr":        "Το Βήμα",
	"tanea.gr":         "Τα Νέα",
	"capital.gr":       "Capital.gr",
	"documentonews.gr": "Documento",
}

func sourceLabel(host string) string {
	if label, ok := sourceLabels[host]; ok {
		return label
	}
	return host
}
