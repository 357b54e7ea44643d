// Package app orchestrates one end-to-end curation run.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/easynewsgr/easynews/internal/cache"
	"github.com/easynewsgr/easynews/internal/config"
	"github.com/easynewsgr/easynews/internal/evidence"
	"github.com/easynewsgr/easynews/internal/images"
	"github.com/easynewsgr/easynews/internal/llm"
	"github.com/easynewsgr/easynews/internal/logger"
	"github.com/easynewsgr/easynews/internal/metrics"
	"github.com/easynewsgr/easynews/internal/news"
	"github.com/easynewsgr/easynews/internal/publish"
	"github.com/easynewsgr/easynews/internal/ratelimit"
	"github.com/easynewsgr/easynews/internal/retry"
	"github.com/easynewsgr/easynews/internal/rss"
)

// Run executes a full pipeline pass: fetch feeds, curate, bucket,
// publish. It returns the first fatal error; per-article problems are
// absorbed inside the pipeline.
func Run(ctx context.Context) error {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	err = run(ctx, cfg, start)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}

	metrics.Global.SetLastRun()
	metrics.Global.RecordProcessingTime(time.Since(start))
	return nil
}

func run(ctx context.Context, cfg *config.Config, start time.Time) error {
	sources, err := rss.LoadSources(cfg.FeedsConfigPath)
	if err != nil {
		return fmt.Errorf("feeds config: %w", err)
	}

	items, err := rss.FetchAll(sources, cfg.MaxItemsPerFeed)
	if err != nil {
		return fmt.Errorf("feed fetch: %w", err)
	}
	logger.Info("feed items collected", "items", len(items), "sources", len(sources))

	budget := ratelimit.NewBudget(cfg.MaxModelRequests, cfg.MaxSearchCalls)
	retryCfg := retry.RetryConfig{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}

	client, err := llm.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, budget, retryCfg)
	if err != nil {
		return fmt.Errorf("model client: %w", err)
	}
	defer client.Close()

	queryCache := cache.New()
	searcher := evidence.NewFeedSearcher(cfg.RequestTimeout, budget, queryCache, cfg.SearchCacheTTL)

	pipeline := &news.Pipeline{
		Gate:       client,
		Classifier: client,
		Simplifier: client,
		Searcher:   searcher,
		Metrics:    metrics.Global,
		Options: news.Options{
			KeywordLimit:      cfg.KeywordLimit,
			Fallback:          cfg.FallbackCategory,
			Blocklist:         cfg.Blocklist,
			EvidenceWindow:    float64(cfg.EvidenceWindow),
			EvidenceWindowMax: float64(cfg.EvidenceWindowMax),
			MaxEvidence:       cfg.MaxEvidence,
			TrustedDomains:    cfg.TrustedDomains,
			Concurrency:       cfg.Concurrency,
		},
	}
	if cfg.EnableImageSearch {
		pipeline.Images = images.NewClient(cfg.PixabayAPIKey, cfg.RequestTimeout, budget, queryCache, cfg.SearchCacheTTL)
	}

	articles, err := pipeline.Curate(ctx, items)
	if err != nil {
		return fmt.Errorf("curation: %w", err)
	}
	logger.Info("articles curated", "accepted", len(articles), "seen", len(items))

	buckets := news.Bucketize(articles, cfg.PerCategoryLimit, cfg.RecencyWindow, time.Now())

	snap, err := publish.Build(buckets, time.Now())
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := publish.Write(snap, cfg.OutputPath); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	metrics.Global.AddArticlesPublished(len(snap.Articles))
	modelCalls, searchCalls, cacheHits := budget.Stats()
	metrics.Global.RecordSearchUsage(searchCalls, cacheHits)
	logger.Info("run finished",
		"published", len(snap.Articles),
		"model_calls", modelCalls,
		"search_calls", searchCalls,
		"cache_hits", cacheHits,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
