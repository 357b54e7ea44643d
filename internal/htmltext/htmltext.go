// Package htmltext turns feed HTML into plain text and resolves the
// first usable image/video reference for an entry.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/easynewsgr/easynews/internal/rss"
)

// Strip renders HTML to whitespace-collapsed plain text. Non-HTML input
// passes through with whitespace collapsed.
func Strip(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	doc.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// ImageURL finds a representative image for the item, in priority
// order: media:content of image kind, media:thumbnail, image
// enclosure, first <img src> in the HTML body. "" when none.
func ImageURL(item rss.Item) string {
	for _, m := range item.MediaURLs {
		if m.Thumb {
			continue
		}
		if strings.EqualFold(m.Medium, "image") || strings.HasPrefix(m.Type, "image/") {
			return m.URL
		}
	}
	for _, m := range item.MediaURLs {
		if m.Thumb {
			return m.URL
		}
	}
	for _, e := range item.Enclosures {
		if strings.HasPrefix(e.Type, "image/") && e.URL != "" {
			return e.URL
		}
	}
	return firstAttr(item.HTMLContent, "img", "src")
}

// VideoURL finds a playable video reference: video enclosure, first
// <iframe src>, first <video src>. "" when none.
func VideoURL(item rss.Item) string {
	for _, e := range item.Enclosures {
		if strings.HasPrefix(e.Type, "video/") && e.URL != "" {
			return e.URL
		}
	}
	if u := firstAttr(item.HTMLContent, "iframe", "src"); u != "" {
		return u
	}
	return firstAttr(item.HTMLContent, "video", "src")
}

func firstAttr(html, tag, attr string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	val, _ := doc.Find(tag).First().Attr(attr)
	return val
}
