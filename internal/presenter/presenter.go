// Package presenter binds articles to reusable list rows.
package presenter

import (
	"slices"

	"github.com/thedittmer/article-report/internal/models"
)

// Presenter produces bound rows for an ordered, fixed list of articles.
type Presenter interface {
	Count() int
	ItemAt(index int) models.Article
	Render(index int, row *Row) *Row
}

// RowFactory obtains a fresh row when the host has none to recycle.
type RowFactory func() *Row

type options struct {
	newRow           RowFactory
	magnitudeSection bool
	splitLocation    bool
	locationFallback string
	formatTime       bool
	timeLayout       string
}

// Option configures an ArticlePresenter.
type Option func(*options)

// WithRowFactory sets how rows are obtained when Render is given nil.
func WithRowFactory(f RowFactory) Option {
	return func(o *options) {
		if f != nil {
			o.newRow = f
		}
	}
}

// WithMagnitudeSection formats numeric sections to one decimal place and
// records their colour bucket on the row.
func WithMagnitudeSection() Option {
	return func(o *options) { o.magnitudeSection = true }
}

// WithLocationOffset splits locations around " of " into an offset and a
// primary location. Locations without the separator get fallback as offset;
// an empty fallback means "Near the".
func WithLocationOffset(fallback string) Option {
	return func(o *options) {
		o.splitLocation = true
		if fallback != "" {
			o.locationFallback = fallback
		}
	}
}

// WithTimeFormat fills the time slot from RFC 3339 timestamps using layout,
// "3:04 PM" when layout is empty.
func WithTimeFormat(layout string) Option {
	return func(o *options) {
		o.formatTime = true
		if layout != "" {
			o.timeLayout = layout
		}
	}
}

// ArticlePresenter is the Presenter for a slice of articles.
type ArticlePresenter struct {
	articles []models.Article
	opts     options
}

var _ Presenter = (*ArticlePresenter)(nil)

// New returns a presenter over a copy of articles.
func New(articles []models.Article, opts ...Option) *ArticlePresenter {
	o := options{
		newRow:           NewRow,
		locationFallback: defaultLocationFallback,
		timeLayout:       defaultTimeLayout,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &ArticlePresenter{
		articles: slices.Clone(articles),
		opts:     o,
	}
}

// Count returns the number of articles.
func (p *ArticlePresenter) Count() int {
	return len(p.articles)
}

// ItemAt returns the article at index. It panics when index is out of range.
func (p *ArticlePresenter) ItemAt(index int) models.Article {
	return p.articles[index]
}

// Render writes the article at index into row and returns it. A nil row is
// replaced by one from the row factory. Slots not covered by an enabled
// option are left as they were.
func (p *ArticlePresenter) Render(index int, row *Row) *Row {
	article := p.ItemAt(index)
	if row == nil {
		row = p.opts.newRow()
	}

	section := article.SectionName()
	if p.opts.magnitudeSection {
		formatted, bucket := formatMagnitude(section)
		section = formatted
		row.Magnitude = bucket
	}
	row.SetSlot(SlotSection, section)

	primary := article.Location()
	if p.opts.splitLocation {
		var offset string
		offset, primary = splitLocation(primary, p.opts.locationFallback)
		row.SetSlot(SlotLocationOffset, offset)
	}
	row.SetSlot(SlotPrimaryLocation, primary)

	row.SetSlot(SlotDate, removeTime(article.DateTimePublication()))

	if p.opts.formatTime {
		row.SetSlot(SlotTime, formatTime(article.DateTimePublication(), p.opts.timeLayout))
	}

	row.SetSlot(SlotURL, article.URL())

	return row
}
