// Package ratelimit caps external calls per pipeline run. The budget is
// an explicit object owned by the run, created fresh each time, so no
// process-wide state survives between runs.
package ratelimit

import (
	"fmt"
	"sync"

	"github.com/easynewsgr/easynews/internal/logger"
)

// Budget counts model (gate/classify/rewrite) and search (evidence,
// image lookup) calls against per-run caps. A cap of 0 means unlimited.
type Budget struct {
	mu          sync.Mutex
	modelCount  int
	searchCount int
	maxModel    int
	maxSearch   int
	cacheHits   int
}

// NewBudget creates a budget for one pipeline run.
func NewBudget(maxModel, maxSearch int) *Budget {
	return &Budget{maxModel: maxModel, maxSearch: maxSearch}
}

// UseModel reserves one model call, erroring once the cap is reached.
func (b *Budget) UseModel() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.maxModel > 0 && b.modelCount >= b.maxModel {
		return fmt.Errorf("model call budget exhausted (%d/%d)", b.modelCount, b.maxModel)
	}
	b.modelCount++
	logger.Debug("model call budget", "used", b.modelCount, "max", b.maxModel)
	return nil
}

// UseSearch reserves one search call. Callers that get false must
// short-circuit to "no result" rather than erroring.
func (b *Budget) UseSearch() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.maxSearch > 0 && b.searchCount >= b.maxSearch {
		logger.Warn("search call budget exhausted", "used", b.searchCount, "max", b.maxSearch)
		return false
	}
	b.searchCount++
	return true
}

// RecordCacheHit notes a lookup served from cache instead of spend.
func (b *Budget) RecordCacheHit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cacheHits++
}

// Stats returns the usage counters for metrics/monitoring.
func (b *Budget) Stats() (modelCalls, searchCalls, cacheHits int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.modelCount, b.searchCount, b.cacheHits
}
