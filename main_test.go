package main

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/thedittmer/article-report/internal/config"
	"github.com/thedittmer/article-report/internal/models"
	"github.com/thedittmer/article-report/internal/presenter"
)

func newTestApp(pageSize int, articles []models.Article) *app {
	cfg := config.Default()
	cfg.Display.MagnitudeSection = true
	a := &app{cfg: cfg, rows: make([]*presenter.Row, pageSize)}
	a.setArticles(articles)
	return a
}

func TestRenderPageRecyclesRows(t *testing.T) {
	a := newTestApp(2, []models.Article{
		models.NewArticle("6.4", "Lima, Peru", "2016-03-03T16:30:00Z", "u1"),
		models.NewArticle("Sport", "London", "2016-03-04T08:00:00Z", "u2"),
		models.NewArticle("2.1", "Oslo", "2016-03-05", "u3"),
	})

	first := a.renderPage(0)
	if len(first) != 2 || first[0].Section != "6.4" || first[0].Magnitude != 6 {
		t.Fatalf("first page = %+v", first)
	}
	pooled := first[0]

	last := a.renderPage(2)
	if len(last) != 1 {
		t.Fatalf("last page has %d rows, want 1", len(last))
	}
	if last[0] != pooled {
		t.Error("row was not recycled from the pool")
	}
	if last[0].Section != "2.1" || last[0].Date != "2016-03-05" || last[0].URL != "u3" || last[0].Magnitude != 2 {
		t.Errorf("recycled row = %+v", *last[0])
	}
}

func TestPresenterOptionsFollowConfig(t *testing.T) {
	a := newTestApp(1, nil)
	if got := len(a.presenterOptions()); got != 1 {
		t.Fatalf("got %d options, want 1", got)
	}
	a.cfg.Display.SplitLocation = true
	a.cfg.Display.ShowTime = true
	if got := len(a.presenterOptions()); got != 3 {
		t.Fatalf("got %d options, want 3", got)
	}
}

func runMenu(t *testing.T, a *app, input string) {
	t.Helper()
	a.in = bufio.NewReader(strings.NewReader(input))

	done := make(chan error, 1)
	go func() { done <- a.menu(context.Background()) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("menu returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("menu still running after input %q was exhausted", input)
	}
}

func TestMenuReturnsOnClosedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"invalid choice then eof", "9\n"},
		{"browse then eof", "1\n"},
		{"browse page then eof", "1\nn\n"},
		{"add feed then eof", "3\n"},
		{"exit without newline", "6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(1, []models.Article{
				models.NewArticle("Sport", "London", "2016-03-04T08:00:00Z", "u1"),
				models.NewArticle("Books", "Paris", "2016-03-05", "u2"),
			})
			runMenu(t, a, tt.input)
		})
	}
}
