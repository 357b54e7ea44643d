// Package rss loads the configured source list and fetches feed items.
package rss

import (
	"fmt"
	"os"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/easynewsgr/easynews/internal/logger"
)

// Source is one syndicated feed with display metadata.
type Source struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// FeedsConfig is the YAML config structure:
//
//	feeds:
//	  - url: https://...
//	    name: ERT News
type FeedsConfig struct {
	Feeds []Source `yaml:"feeds"`
}

// Item is a raw feed entry annotated with its source.
type Item struct {
	GUID        string
	Title       string
	Link        string
	HTMLContent string // richest HTML body found on the entry
	Published   time.Time
	HasDate     bool
	SourceName  string
	Enclosures  []Enclosure
	MediaURLs   []MediaURL
}

// Enclosure mirrors the feed enclosure triple.
type Enclosure struct {
	URL  string
	Type string
}

// MediaURL is a media-RSS content/thumbnail reference.
type MediaURL struct {
	URL    string
	Medium string
	Type   string
	Thumb  bool
}

// LoadSources reads the feed list from a YAML file.
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feeds config: %w", err)
	}
	defer f.Close()

	var cfg FeedsConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode feeds config: %w", err)
	}
	if len(cfg.Feeds) == 0 {
		return nil, fmt.Errorf("feeds config %s lists no feeds", path)
	}
	return cfg.Feeds, nil
}

// FetchAll downloads and parses every source, keeping at most
// maxItemsPerFeed of the newest entries per feed. Individual feed
// failures are logged and skipped.
func FetchAll(sources []Source, maxItemsPerFeed int) ([]Item, error) {
	parser := gofeed.NewParser()
	var all []Item
	successCount := 0

	for _, src := range sources {
		feed, err := parser.ParseURL(src.URL)
		if err != nil {
			logger.Warn("failed to parse feed", "url", src.URL, "error", err)
			continue
		}

		items := feed.Items
		if maxItemsPerFeed > 0 && len(items) > maxItemsPerFeed {
			items = items[:maxItemsPerFeed]
		}
		for _, it := range items {
			all = append(all, convertItem(it, src))
		}
		successCount++
		logger.Info("loaded feed", "source", src.Name, "items", len(items))
	}

	logger.Info("feeds processed", "ok", successCount, "total", len(sources))
	if successCount == 0 {
		return nil, fmt.Errorf("all %d feeds failed", len(sources))
	}
	return all, nil
}

func convertItem(it *gofeed.Item, src Source) Item {
	out := Item{
		GUID:       it.GUID,
		Title:      it.Title,
		Link:       it.Link,
		SourceName: src.Name,
	}

	if it.PublishedParsed != nil {
		out.Published = *it.PublishedParsed
		out.HasDate = true
	} else if it.UpdatedParsed != nil {
		out.Published = *it.UpdatedParsed
		out.HasDate = true
	}

	// Prefer the fullest body the feed offers.
	switch {
	case it.Content != "":
		out.HTMLContent = it.Content
	default:
		out.HTMLContent = it.Description
	}
	if enc := contentEncoded(it); enc != "" {
		out.HTMLContent = enc
	}

	for _, e := range it.Enclosures {
		if e == nil {
			continue
		}
		out.Enclosures = append(out.Enclosures, Enclosure{URL: e.URL, Type: e.Type})
	}
	out.MediaURLs = mediaURLs(it)

	return out
}

// contentEncoded digs content:encoded out of the extension map; gofeed
// keeps it there for RSS 2.0 feeds.
func contentEncoded(it *gofeed.Item) string {
	exts, ok := it.Extensions["content"]
	if !ok {
		return ""
	}
	for _, ext := range exts["encoded"] {
		if ext.Value != "" {
			return ext.Value
		}
	}
	return ""
}

// mediaURLs flattens media:content and media:thumbnail extensions.
func mediaURLs(it *gofeed.Item) []MediaURL {
	exts, ok := it.Extensions["media"]
	if !ok {
		return nil
	}

	var out []MediaURL
	for _, ext := range exts["content"] {
		u := ext.Attrs["url"]
		if u == "" {
			continue
		}
		out = append(out, MediaURL{
			URL:    u,
			Medium: ext.Attrs["medium"],
			Type:   ext.Attrs["type"],
		})
	}
	for _, ext := range exts["thumbnail"] {
		if u := ext.Attrs["url"]; u != "" {
			out = append(out, MediaURL{URL: u, Thumb: true})
		}
	}
	return out
}
