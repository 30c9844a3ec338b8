package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/thedittmer/article-report/internal/config"
	"github.com/thedittmer/article-report/internal/feed"
	"github.com/thedittmer/article-report/internal/logger"
	"github.com/thedittmer/article-report/internal/models"
	"github.com/thedittmer/article-report/internal/presenter"
	"github.com/thedittmer/article-report/internal/storage"
	"github.com/thedittmer/article-report/internal/ui"
)

type app struct {
	cfg    *config.Config
	log    *zap.Logger
	store  *storage.Storage
	loader *feed.Loader
	in     *bufio.Reader

	presenter *presenter.ArticlePresenter
	// rows is the recycled row pool for one page of the list.
	rows []*presenter.Row
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	dataDir, err := storage.DefaultDataDir()
	if err != nil {
		return fmt.Errorf("failed to locate data directory: %w", err)
	}

	cfg, err := config.LoadConfig(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.Must(cfg.Log.Level, cfg.Log.Development)
	defer log.Sync()

	store, err := storage.NewStorageAt(dataDir, log)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}

	ui.SetAccent(cfg.Theme.AccentColor)
	ui.SetDark(cfg.Theme.Dark)

	a := &app{
		cfg:    cfg,
		log:    log,
		store:  store,
		loader: feed.NewLoader(cfg.Behavior.FetchTimeout, cfg.Behavior.MaxArticlesPerFeed, log.Named("feed")),
		in:     bufio.NewReader(os.Stdin),
		rows:   make([]*presenter.Row, cfg.Behavior.DefaultPageSize),
	}

	a.setArticles(nil)

	articles, savedAt, err := store.LoadArticles()
	if err != nil {
		log.Warn("ignoring unreadable article cache", zap.Error(err))
	}
	if len(articles) == 0 {
		a.refresh(ctx)
	} else {
		log.Info("loaded cached articles", zap.Int("count", len(articles)), zap.Time("saved_at", savedAt))
		a.setArticles(articles)
	}

	return a.menu(ctx)
}

func (a *app) presenterOptions() []presenter.Option {
	var opts []presenter.Option
	if a.cfg.Display.MagnitudeSection {
		opts = append(opts, presenter.WithMagnitudeSection())
	}
	if a.cfg.Display.SplitLocation {
		opts = append(opts, presenter.WithLocationOffset(a.cfg.Display.LocationFallback))
	}
	if a.cfg.Display.ShowTime {
		opts = append(opts, presenter.WithTimeFormat(a.cfg.Display.TimeLayout))
	}
	return opts
}

// setArticles replaces the backing list. Rows from the old list stay in the
// pool and are overwritten on the next render.
func (a *app) setArticles(articles []models.Article) {
	a.presenter = presenter.New(articles, a.presenterOptions()...)
}

// prompt reads one line of input. It returns io.EOF once stdin is closed and
// nothing is left to read.
func (a *app) prompt(label string) (string, error) {
	fmt.Print(ui.CommandStyle.Render(label) + " ")
	line, err := a.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		return "", err
	}
	return line, nil
}

func (a *app) menu(ctx context.Context) error {
	for {
		fmt.Println(ui.HeaderStyle.Render(" Article Report "))
		fmt.Println(ui.StatusStyle.Render(fmt.Sprintf("%d articles", a.presenter.Count())))
		for i, item := range []string{"Browse articles", "Refresh feeds", "Add feed", "Export to Google Sheets", "Save settings", "Exit"} {
			fmt.Printf("%s %s\n", ui.KeyStyle.Render(strconv.Itoa(i+1)), ui.TextStyle.Render(item))
		}

		choice, err := a.prompt("Enter choice (1-6):")
		if err != nil {
			fmt.Println()
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("error reading input: %w", err)
		}

		switch choice {
		case "1":
			a.browse()
		case "2":
			a.refresh(ctx)
		case "3":
			a.addFeed(ctx)
		case "4":
			a.export(ctx)
		case "5":
			if err := config.SaveConfig(a.store.DataDir(), a.cfg); err != nil {
				fmt.Println(ui.ErrorStyle.Render(err.Error()))
			} else {
				fmt.Println(ui.SuccessStyle.Render("Settings saved"))
			}
		case "6", "q":
			return nil
		default:
			fmt.Println(ui.ErrorStyle.Render("Invalid choice"))
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (a *app) refresh(ctx context.Context) {
	feeds, err := a.store.LoadFeeds()
	if err != nil {
		fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("Error loading feeds: %v", err)))
		return
	}

	fmt.Println(ui.DimStyle.Render(fmt.Sprintf("Fetching %d feeds...", len(feeds))))
	articles := a.loader.LoadAll(ctx, feeds)
	if len(articles) == 0 {
		fmt.Println(ui.ErrorStyle.Render("No articles fetched; keeping the current list"))
		return
	}

	a.setArticles(articles)
	if err := a.store.SaveArticles(articles); err != nil {
		a.log.Warn("could not cache articles", zap.Error(err))
	}
	fmt.Println(ui.SuccessStyle.Render(fmt.Sprintf("Loaded %d articles", len(articles))))
}

func (a *app) addFeed(ctx context.Context) {
	url, err := a.prompt("Feed URL:")
	if err != nil {
		return
	}
	if err := feed.ValidateURL(url); err != nil {
		fmt.Println(ui.ErrorStyle.Render(err.Error()))
		return
	}

	feeds, err := a.store.LoadFeeds()
	if err != nil {
		fmt.Println(ui.ErrorStyle.Render(err.Error()))
		return
	}
	for _, f := range feeds {
		if f == url {
			fmt.Println(ui.DimStyle.Render("Feed already present"))
			return
		}
	}
	if err := a.store.SaveFeeds(append(feeds, url)); err != nil {
		fmt.Println(ui.ErrorStyle.Render(err.Error()))
		return
	}
	a.refresh(ctx)
}

// renderPage binds articles [start, start+len(pool)) into the recycled rows.
func (a *app) renderPage(start int) []*presenter.Row {
	end := min(start+len(a.rows), a.presenter.Count())
	page := a.rows[:end-start]
	for i := range page {
		page[i] = a.presenter.Render(start+i, page[i])
	}
	return page
}

func (a *app) browse() {
	count := a.presenter.Count()
	if count == 0 {
		fmt.Println(ui.DimStyle.Render("No articles. Refresh feeds first."))
		return
	}

	keys := a.cfg.Keyboard
	pageSize := len(a.rows)
	renderer := ui.RowRenderer{
		Width:    ui.TerminalWidth(),
		Compact:  a.cfg.Display.CompactView,
		ShowTime: a.cfg.Display.ShowTime,
	}

	start := 0
	for {
		fmt.Println()
		for i, row := range a.renderPage(start) {
			fmt.Println(renderer.Render(start+i, row, false))
		}
		fmt.Println(ui.DimStyle.Render(fmt.Sprintf("%d-%d of %d", start+1, min(start+pageSize, count), count)))

		input, err := a.prompt(fmt.Sprintf("[%s]ext [%s]rev [%s]pen <n> [%s]ack:", keys.NextPage, keys.PrevPage, keys.OpenArticle, keys.Back))
		if err != nil {
			return
		}
		cmd, arg, _ := strings.Cut(input, " ")

		switch cmd {
		case keys.NextPage:
			if start+pageSize < count {
				start += pageSize
			}
		case keys.PrevPage:
			start = max(0, start-pageSize)
		case keys.OpenArticle:
			a.open(strings.TrimSpace(arg), renderer)
		case keys.Back, "":
			return
		default:
			fmt.Println(ui.ErrorStyle.Render("Unknown command"))
		}
	}
}

// open shows a single article with its link.
func (a *app) open(arg string, renderer ui.RowRenderer) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > a.presenter.Count() {
		fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("Pick an article between 1 and %d", a.presenter.Count())))
		return
	}

	renderer.Compact = false
	row := a.presenter.Render(n-1, nil)
	fmt.Println(ui.BoxStyle.Render(renderer.Render(n-1, row, true)))
	fmt.Println(ui.DimStyle.Render("More information: ") + ui.LinkStyle.Render(row.URL))
}

func (a *app) export(ctx context.Context) {
	count := a.presenter.Count()
	if count == 0 {
		fmt.Println(ui.DimStyle.Render("Nothing to export"))
		return
	}

	rows := make([]*presenter.Row, count)
	for i := range rows {
		rows[i] = a.presenter.Render(i, nil)
	}

	spreadsheetID := a.cfg.Sheets.SpreadsheetID
	if spreadsheetID == "" {
		id, err := a.store.LoadSpreadsheetID()
		if err != nil {
			a.log.Warn("ignoring stored spreadsheet id", zap.Error(err))
		}
		spreadsheetID = id
	}

	fmt.Println(ui.DimStyle.Render("Exporting to Google Sheets..."))
	result := a.store.ExportToSheets(ctx, rows, spreadsheetID, a.cfg.Sheets.FolderID)
	if result.Error != nil {
		fmt.Println(ui.ErrorStyle.Render(fmt.Sprintf("Export failed: %v", result.Error)))
		return
	}
	fmt.Println(ui.SuccessStyle.Render("Exported to: ") + ui.LinkStyle.Render(result.URL))
}
