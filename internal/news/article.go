// Package news holds the article model and the curation pipeline that
// turns raw feed items into the published set.
package news

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/easynewsgr/easynews/internal/category"
)

// Article is the candidate unit flowing through the pipeline. Decisions
// never mutate an article in place after bucketing; every stage builds
// new values.
type Article struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	SimpleTitle string            `json:"simpleTitle,omitempty"`
	RawText     string            `json:"rawText,omitempty"`
	SimpleText  string            `json:"simpleText,omitempty"`
	SourceURL   string            `json:"sourceUrl"`
	SourceName  string            `json:"sourceName"`
	Category    category.Category `json:"category"`
	IsSensitive bool              `json:"isSensitive"`
	ImageURL    *string           `json:"imageUrl"`
	VideoURL    *string           `json:"videoUrl"`
	PublishedAt time.Time         `json:"publishedAt"`

	// Corroborating evidence attached by the matcher, when any.
	Sources []SourceRef `json:"sources,omitempty"`
}

// SourceRef is one corroborating source shown alongside an article.
type SourceRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Host  string `json:"host"`
	Label string `json:"label,omitempty"`
}

// DedupeURL and DedupeTitle feed the shared deduplicator.
func (a Article) DedupeURL() string   { return a.SourceURL }
func (a Article) DedupeTitle() string { return a.Title }

// NewArticleID derives a stable id from the item's content fingerprint:
// the same logical item always yields the same id across runs.
func NewArticleID(guid, link, title string, published time.Time) string {
	h := sha1.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(guid))))
	h.Write([]byte{'|'})
	h.Write([]byte(strings.ToLower(strings.TrimSpace(link))))
	h.Write([]byte{'|'})
	h.Write([]byte(strings.ToLower(strings.TrimSpace(title))))
	h.Write([]byte{'|'})
	h.Write([]byte(published.UTC().Format("2006-01-02")))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
