// Package publish writes the run result as a JSON snapshot for the
// static frontend.
package publish

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/easynewsgr/easynews/internal/category"
	"github.com/easynewsgr/easynews/internal/logger"
	"github.com/easynewsgr/easynews/internal/news"
)

// Snapshot is the published document: the flat article list plus the
// per-category buckets, keyed by taxonomy name.
type Snapshot struct {
	GeneratedAt time.Time                 `json:"generatedAt"`
	Articles    []news.Article            `json:"articles"`
	Categories  map[string][]news.Article `json:"categories"`
}

// Build assembles a snapshot from bucketed articles. It fails when the
// buckets are empty so a broken run can never overwrite a good
// snapshot with nothing.
func Build(buckets map[category.Category][]news.Article, generatedAt time.Time) (Snapshot, error) {
	snap := Snapshot{
		GeneratedAt: generatedAt.UTC(),
		Articles:    make([]news.Article, 0),
		Categories:  make(map[string][]news.Article, len(buckets)),
	}

	for _, cat := range category.Keys() {
		group, ok := buckets[cat]
		if !ok || len(group) == 0 {
			continue
		}
		snap.Categories[string(cat)] = group
		snap.Articles = append(snap.Articles, group...)
	}

	if len(snap.Articles) == 0 {
		return Snapshot{}, fmt.Errorf("refusing to publish empty snapshot")
	}
	return snap, nil
}

// Write serializes the snapshot to path, creating parent directories
// as needed. The write goes through a temp file and rename so readers
// never observe a half-written document.
func Write(snap Snapshot, path string) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}

	logger.Info("snapshot published", "path", path, "articles", len(snap.Articles), "categories", len(snap.Categories))
	return nil
}
