package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesSeen            int64
	GateRejected            int64
	SensitiveDropped        int64
	FallbackClassifications int64
	DuplicatesFiltered      int64
	ArticlesPublished       int64
	SearchCalls             int64
	SearchCacheHits         int64

	// Timings
	LastProcessingTime    time.Duration
	TotalProcessingTime   time.Duration
	AverageProcessingTime time.Duration
	ProcessingCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) IncrementArticlesSeen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesSeen++
}

func (m *Metrics) IncrementGateRejected() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GateRejected++
}

func (m *Metrics) IncrementSensitiveDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SensitiveDropped++
}

func (m *Metrics) IncrementFallbackClassifications() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackClassifications++
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) AddArticlesPublished(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesPublished += int64(n)
}

func (m *Metrics) RecordSearchUsage(calls, cacheHits int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SearchCalls += int64(calls)
	m.SearchCacheHits += int64(cacheHits)
}

func (m *Metrics) RecordProcessingTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastProcessingTime = duration
	m.TotalProcessingTime += duration
	m.ProcessingCount++

	if m.ProcessingCount > 0 {
		m.AverageProcessingTime = m.TotalProcessingTime / time.Duration(m.ProcessingCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_seen":              m.ArticlesSeen,
		"gate_rejected":              m.GateRejected,
		"sensitive_dropped":          m.SensitiveDropped,
		"fallback_classifications":   m.FallbackClassifications,
		"duplicates_filtered":        m.DuplicatesFiltered,
		"articles_published":         m.ArticlesPublished,
		"search_calls":               m.SearchCalls,
		"search_cache_hits":          m.SearchCacheHits,
		"last_processing_time_ms":    m.LastProcessingTime.Milliseconds(),
		"average_processing_time_ms": m.AverageProcessingTime.Milliseconds(),
		"last_run_time":              m.LastRunTime.Format(time.RFC3339),
		"last_error_time":            m.LastErrorTime.Format(time.RFC3339),
		"last_error":                 m.LastError,
		"is_healthy":                 m.IsHealthy,
	}
}
