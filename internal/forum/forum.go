// Package forum turns a tracked board name into a bounded list of post items
// via the board's RSS/Atom feed.
package forum

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/boardfeed/boardfeed/internal/config"
	"github.com/boardfeed/boardfeed/internal/model"
)

// Client fetches up to maxItems posts for a board. It may fail or hang, so
// callers always run it under a timeout.
type Client interface {
	Fetch(ctx context.Context, board string, maxItems int) ([]model.Item, error)
}

// RSSClient implements Client on top of gofeed, resolving board names
// through the configured board list.
type RSSClient struct {
	parser *gofeed.Parser
	urls   map[string]string
}

func NewRSSClient(boards []config.Board) *RSSClient {
	urls := make(map[string]string, len(boards))
	for _, b := range boards {
		urls[b.Name] = b.URL
	}
	return &RSSClient{parser: gofeed.NewParser(), urls: urls}
}

func (c *RSSClient) Fetch(ctx context.Context, board string, maxItems int) ([]model.Item, error) {
	url, ok := c.urls[board]
	if !ok {
		return nil, fmt.Errorf("board %q is not configured", board)
	}

	feed, err := c.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", board, err)
	}

	items := make([]model.Item, 0, maxItems)
	for _, fi := range feed.Items {
		if len(items) >= maxItems {
			break
		}

		posted := time.Time{}
		if fi.PublishedParsed != nil {
			posted = *fi.PublishedParsed
		} else if fi.UpdatedParsed != nil {
			posted = *fi.UpdatedParsed
		}

		content := fi.Content
		if content == "" {
			content = fi.Description
		}

		items = append(items, model.Item{
			Title:         fi.Title,
			Link:          fi.Link,
			Posted:        posted,
			Abstract:      truncate(stripHTML(content), 300),
			ImageLocators: imageLocators(fi, content),
		})
	}
	return items, nil
}

// imageLocators collects candidate image URLs for a post in source order:
// the feed-declared image first, then image enclosures, then every <img>
// found in the post body.
func imageLocators(fi *gofeed.Item, content string) []string {
	var locators []string
	seen := make(map[string]bool)
	add := func(u string) {
		if u == "" || !strings.HasPrefix(u, "http") || seen[u] {
			return
		}
		seen[u] = true
		locators = append(locators, u)
	}

	if fi.Image != nil {
		add(fi.Image.URL)
	}
	for _, enc := range fi.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") {
			add(enc.URL)
		}
	}
	for _, u := range bodyImageURLs(content) {
		add(u)
	}
	return locators
}

func bodyImageURLs(html string) []string {
	if html == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var urls []string
	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok {
			urls = append(urls, src)
		}
	})
	return urls
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
