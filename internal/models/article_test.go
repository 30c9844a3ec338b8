package models

import "testing"

func TestNewArticleAccessors(t *testing.T) {
	a := NewArticle("World news", "Cairo, Egypt", "2016-03-03T16:30:00Z", "https://example.com/a")

	if got := a.SectionName(); got != "World news" {
		t.Errorf("SectionName() = %q", got)
	}
	if got := a.Location(); got != "Cairo, Egypt" {
		t.Errorf("Location() = %q", got)
	}
	if got := a.DateTimePublication(); got != "2016-03-03T16:30:00Z" {
		t.Errorf("DateTimePublication() = %q", got)
	}
	if got := a.URL(); got != "https://example.com/a" {
		t.Errorf("URL() = %q", got)
	}
}

func TestArticleIsValue(t *testing.T) {
	a := NewArticle("a", "b", "c", "d")
	b := a
	if a != b {
		t.Fatal("copies of an article should compare equal")
	}
	if NewArticle("", "", "", "") != (Article{}) {
		t.Fatal("empty article should equal the zero value")
	}
}
