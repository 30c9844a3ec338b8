package models

// Article holds the display fields of a single list entry. Fields are set
// once by NewArticle and only exposed through accessors.
type Article struct {
	sectionName         string
	location            string
	dateTimePublication string
	url                 string
}

// NewArticle builds an Article. It performs no validation and cannot fail.
func NewArticle(sectionName, location, dateTimePublication, url string) Article {
	return Article{
		sectionName:         sectionName,
		location:            location,
		dateTimePublication: dateTimePublication,
		url:                 url,
	}
}

// SectionName returns the category label of the article.
func (a Article) SectionName() string { return a.sectionName }

// Location returns the free-form place description.
func (a Article) Location() string { return a.location }

// DateTimePublication returns the combined date and time string, e.g.
// "2016-03-03T16:30:00Z".
func (a Article) DateTimePublication() string { return a.dateTimePublication }

// URL returns the link for more information about the article.
func (a Article) URL() string { return a.url }
