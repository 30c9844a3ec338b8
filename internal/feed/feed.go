// Package feed turns RSS, Atom and JSON feeds into articles.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/thedittmer/article-report/internal/logger"
	"github.com/thedittmer/article-report/internal/models"
)

const userAgent = "article-report/1.0"

// Loader fetches feeds over HTTP and converts their items to articles.
type Loader struct {
	client   *resty.Client
	log      *zap.Logger
	maxItems int
}

// NewLoader returns a Loader. maxItems <= 0 keeps every item of a feed.
func NewLoader(timeout time.Duration, maxItems int, log *zap.Logger) *Loader {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/rss+xml, application/atom+xml, application/feed+json, application/xml;q=0.9, */*;q=0.8")

	return &Loader{
		client:   client,
		log:      logger.OrNop(log),
		maxItems: maxItems,
	}
}

// ValidateURL reports whether feedURL is usable as a feed address.
func ValidateURL(feedURL string) error {
	if !strings.HasPrefix(feedURL, "http://") && !strings.HasPrefix(feedURL, "https://") {
		return fmt.Errorf("invalid feed URL format %s (must start with http:// or https://)", feedURL)
	}
	return nil
}

// looksLikeFeed is a loose check used only for warnings.
func looksLikeFeed(feedURL string) bool {
	for _, suffix := range []string{".xml", ".rss", ".atom", ".json", "/feed", "/rss"} {
		if strings.HasSuffix(feedURL, suffix) {
			return true
		}
	}
	return strings.Contains(feedURL, "feed") || strings.Contains(feedURL, "rss")
}

// Load fetches and parses a single feed.
func (l *Loader) Load(ctx context.Context, feedURL string) ([]models.Article, error) {
	if err := ValidateURL(feedURL); err != nil {
		return nil, err
	}
	if !looksLikeFeed(feedURL) {
		l.log.Warn("url might not be a feed", zap.String("url", feedURL))
	}

	resp, err := l.client.R().SetContext(ctx).Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("error fetching feed %s: %w", feedURL, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned status %d", feedURL, resp.StatusCode())
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("error parsing feed %s: %w", feedURL, err)
	}
	if len(parsed.Items) == 0 {
		l.log.Warn("feed contains no items", zap.String("url", feedURL))
		return nil, nil
	}

	articles := ToArticles(parsed, l.maxItems)
	l.log.Info("parsed feed",
		zap.String("url", feedURL),
		zap.String("title", parsed.Title),
		zap.Int("items", len(parsed.Items)),
		zap.Int("kept", len(articles)),
	)
	return articles, nil
}

// LoadAll fetches feeds concurrently. A failing feed is logged and skipped.
// Articles keep the order of feeds, then the order within each feed.
func (l *Loader) LoadAll(ctx context.Context, feeds []string) []models.Article {
	results := make([][]models.Article, len(feeds))

	var wg sync.WaitGroup
	for i, feedURL := range feeds {
		wg.Add(1)
		go func(i int, url string) {
			defer wg.Done()
			items, err := l.Load(ctx, url)
			if err != nil {
				l.log.Error("feed load failed", zap.String("url", url), zap.Error(err))
				return
			}
			results[i] = items
		}(i, feedURL)
	}
	wg.Wait()

	var all []models.Article
	for _, items := range results {
		all = append(all, items...)
	}
	return all
}

// ToArticles converts up to limit items of a parsed feed; limit <= 0 means all.
func ToArticles(f *gofeed.Feed, limit int) []models.Article {
	items := f.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	articles := make([]models.Article, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		articles = append(articles, models.NewArticle(
			sectionOf(item, f),
			locationOf(item, f),
			dateTimeOf(item),
			strings.TrimSpace(item.Link),
		))
	}
	return articles
}

func sectionOf(item *gofeed.Item, f *gofeed.Feed) string {
	for _, c := range item.Categories {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return strings.TrimSpace(f.Title)
}

// locationOf prefers georss:featurename, then dc:coverage, then a custom
// <location> element, and falls back to the feed title.
func locationOf(item *gofeed.Item, f *gofeed.Feed) string {
	if geo, ok := item.Extensions["georss"]; ok {
		for _, e := range geo["featurename"] {
			if v := strings.TrimSpace(e.Value); v != "" {
				return v
			}
		}
	}
	if item.DublinCoreExt != nil {
		for _, c := range item.DublinCoreExt.Coverage {
			if c = strings.TrimSpace(c); c != "" {
				return c
			}
		}
	}
	if v := strings.TrimSpace(item.Custom["location"]); v != "" {
		return v
	}
	return strings.TrimSpace(f.Title)
}

// dateTimeOf returns the publication time as RFC 3339 in UTC when the feed
// carried a parseable date, otherwise the raw text.
func dateTimeOf(item *gofeed.Item) string {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	case strings.TrimSpace(item.Published) != "":
		return strings.TrimSpace(item.Published)
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC().Format(time.RFC3339)
	}
	return strings.TrimSpace(item.Updated)
}
