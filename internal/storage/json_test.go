package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/thedittmer/article-report/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorageAt(filepath.Join(t.TempDir(), "data"), nil)
	if err != nil {
		t.Fatalf("NewStorageAt: %v", err)
	}
	return s
}

func TestLoadFeedsSeedsDefaults(t *testing.T) {
	s := newTestStorage(t)

	feeds, err := s.LoadFeeds()
	if err != nil {
		t.Fatalf("LoadFeeds: %v", err)
	}
	if !reflect.DeepEqual(feeds, defaultFeeds) {
		t.Errorf("LoadFeeds() = %v, want defaults", feeds)
	}
	if _, err := os.Stat(filepath.Join(s.DataDir(), feedsFile)); err != nil {
		t.Errorf("feeds file not created: %v", err)
	}
}

func TestFeedsRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	want := []string{"https://a.example.com/rss.xml", "https://b.example.com/feed"}

	if err := s.SaveFeeds(want); err != nil {
		t.Fatalf("SaveFeeds: %v", err)
	}
	got, err := s.LoadFeeds()
	if err != nil {
		t.Fatalf("LoadFeeds: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadFeeds() = %v, want %v", got, want)
	}
}

func TestLoadArticlesMissingCache(t *testing.T) {
	s := newTestStorage(t)

	articles, savedAt, err := s.LoadArticles()
	if err != nil {
		t.Fatalf("LoadArticles: %v", err)
	}
	if len(articles) != 0 || !savedAt.IsZero() {
		t.Errorf("LoadArticles() = %v, %v; want empty", articles, savedAt)
	}
}

func TestArticlesRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	want := []models.Article{
		models.NewArticle("World news", "Cairo, Egypt", "2016-03-03T16:30:00Z", "https://example.com/1"),
		models.NewArticle("4.7", "5km N of Lima, Peru", "2016-03-04", "https://example.com/2"),
	}

	if err := s.SaveArticles(want); err != nil {
		t.Fatalf("SaveArticles: %v", err)
	}
	got, savedAt, err := s.LoadArticles()
	if err != nil {
		t.Fatalf("LoadArticles: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LoadArticles() = %+v, want %+v", got, want)
	}
	if savedAt.IsZero() {
		t.Error("savedAt not recorded")
	}
	if _, err := os.Stat(filepath.Join(s.DataDir(), articlesFile+".tmp")); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}
}

func TestLoadArticlesCorrupt(t *testing.T) {
	s := newTestStorage(t)
	if err := os.WriteFile(filepath.Join(s.DataDir(), articlesFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.LoadArticles(); err == nil {
		t.Fatal("expected error for corrupt cache")
	}
}
