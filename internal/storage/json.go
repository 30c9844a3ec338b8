package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/thedittmer/article-report/internal/logger"
	"github.com/thedittmer/article-report/internal/models"
)

const (
	feedsFile    = "feeds.txt"
	articlesFile = "articles.json"
)

var defaultFeeds = []string{
	"https://www.theguardian.com/world/rss",
	"https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/significant_month.atom",
	"https://feeds.bbci.co.uk/news/world/rss.xml",
}

type Storage struct {
	dataDir string
	log     *zap.Logger
}

// DefaultDataDir returns ~/.article-report.
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".article-report"), nil
}

// NewStorageAt uses dataDir, creating it when missing.
func NewStorageAt(dataDir string, log *zap.Logger) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	log = logger.OrNop(log)
	log.Debug("using storage directory", zap.String("dir", dataDir))
	return &Storage{dataDir: dataDir, log: log}, nil
}

// DataDir returns the directory holding feeds, cache and credentials.
func (s *Storage) DataDir() string {
	return s.dataDir
}

// articleRecord is the on-disk form of models.Article.
type articleRecord struct {
	SectionName         string `json:"section_name"`
	Location            string `json:"location"`
	DateTimePublication string `json:"date_time_publication"`
	URL                 string `json:"url"`
}

type articleCache struct {
	SavedAt  time.Time       `json:"saved_at"`
	Articles []articleRecord `json:"articles"`
}

// writeAtomic writes to a temporary file and renames it over path.
func writeAtomic(path string, data []byte) error {
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("error writing temporary file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("error replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// SaveArticles caches the article list.
func (s *Storage) SaveArticles(articles []models.Article) error {
	cache := articleCache{
		SavedAt:  time.Now().UTC(),
		Articles: make([]articleRecord, 0, len(articles)),
	}
	for _, a := range articles {
		cache.Articles = append(cache.Articles, articleRecord{
			SectionName:         a.SectionName(),
			Location:            a.Location(),
			DateTimePublication: a.DateTimePublication(),
			URL:                 a.URL(),
		})
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling articles: %w", err)
	}
	if err := writeAtomic(filepath.Join(s.dataDir, articlesFile), data); err != nil {
		return fmt.Errorf("error saving articles: %w", err)
	}

	s.log.Info("articles cached", zap.Int("count", len(articles)))
	return nil
}

// LoadArticles returns the cached article list and when it was saved. A
// missing cache yields no articles and no error.
func (s *Storage) LoadArticles() ([]models.Article, time.Time, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, articlesFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, time.Time{}, nil
		}
		return nil, time.Time{}, fmt.Errorf("error reading articles: %w", err)
	}

	var cache articleCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, time.Time{}, fmt.Errorf("error parsing articles: %w", err)
	}

	articles := make([]models.Article, 0, len(cache.Articles))
	for _, r := range cache.Articles {
		articles = append(articles, models.NewArticle(r.SectionName, r.Location, r.DateTimePublication, r.URL))
	}
	return articles, cache.SavedAt, nil
}

func (s *Storage) SaveFeeds(feeds []string) error {
	path := filepath.Join(s.dataDir, feedsFile)

	var b strings.Builder
	b.WriteString("# Feed URLs (one per line)\n")
	b.WriteString("# Lines starting with # are comments\n")
	b.WriteString("# Example: https://example.com/feed.xml\n\n")
	for _, feed := range feeds {
		b.WriteString(feed)
		b.WriteString("\n")
	}

	if err := writeAtomic(path, []byte(b.String())); err != nil {
		return fmt.Errorf("error saving feeds: %w", err)
	}

	s.log.Info("feeds saved", zap.String("path", path), zap.Int("count", len(feeds)))
	return nil
}

// LoadFeeds reads feeds.txt, seeding it with default feeds on first run.
func (s *Storage) LoadFeeds() ([]string, error) {
	path := filepath.Join(s.dataDir, feedsFile)

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.SaveFeeds(defaultFeeds); err != nil {
			return nil, fmt.Errorf("error creating default feeds file: %w", err)
		}
		return append([]string(nil), defaultFeeds...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading feeds file: %w", err)
	}
	defer file.Close()

	var feeds []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			feeds = append(feeds, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error parsing feeds file: %w", err)
	}

	s.log.Info("feeds loaded", zap.String("path", path), zap.Int("count", len(feeds)))
	return feeds, nil
}
