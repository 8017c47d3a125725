package scraper

import (
	"bytes"
	"io"
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/devjobs/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/net/html"
	"golang.org/x/text/cases"
)

// Extractor turns a fetched results page into postings.
type Extractor struct {
	baseURL string
	logger  zerolog.Logger
}

func NewExtractor(baseURL string, logger zerolog.Logger) *Extractor {
	return &Extractor{
		baseURL: normalizeBaseURL(baseURL),
		logger:  logger.With().Str("component", "extractor").Logger(),
	}
}

func (e *Extractor) Parse(raw []byte) (*Results, error) {
	return e.ParseReader(bytes.NewReader(raw))
}

// ParseReader tokenizes r and anchors the result on the results container.
// A page without the container yields empty Results, not an error.
func (e *Extractor) ParseReader(r io.Reader) (*Results, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	container := goquery.NewDocumentFromNode(root).FindMatcher(resultsContainerSel).First()
	if container.Length() == 0 {
		e.logger.Debug().Msg("results container not found")
	}
	return &Results{
		container: container,
		baseURL:   e.baseURL,
		logger:    e.logger,
	}, nil
}

// Results is the parsed results container of one page.
type Results struct {
	container *goquery.Selection
	baseURL   string
	logger    zerolog.Logger
}

// Empty reports whether the page had no results container.
func (r *Results) Empty() bool {
	return r.container.Length() == 0
}

// FilterByKeyword yields, in document order, every heading whose text
// contains word ignoring case. Headings without a usable link are skipped.
func (r *Results) FilterByKeyword(word string) iter.Seq[models.KeywordMatch] {
	needle := cases.Fold().String(word)

	return func(yield func(models.KeywordMatch) bool) {
		r.container.FindMatcher(headingSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := s.Text()
			if !strings.Contains(cases.Fold().String(text), needle) {
				return true
			}
			title := strings.TrimSpace(text)

			link := firstLink(s, r.baseURL)
			if link == nil {
				r.logger.Warn().Str("title", title).Msg("matching heading has no link, skipping")
				return true
			}
			return yield(models.KeywordMatch{Title: title, Link: *link})
		})
	}
}

// Listings yields every complete listing card in document order.
func (r *Results) Listings() iter.Seq[models.JobListing] {
	return func(yield func(models.JobListing) bool) {
		r.container.FindMatcher(cardSel).EachWithBreak(func(i int, s *goquery.Selection) bool {
			listing, missing := r.readCard(s).listing()
			if len(missing) > 0 {
				r.logger.Debug().Int("card", i).Strs("missing", missing).Msg("skipping incomplete card")
				return true
			}
			return yield(listing)
		})
	}
}

func (r *Results) readCard(s *goquery.Selection) card {
	c := card{
		title:    firstText(s, cardTitleSel),
		company:  firstText(s, cardCompanySel),
		location: firstText(s, cardLocationSel),
	}
	if c.title != nil {
		c.link = firstLink(s.FindMatcher(cardTitleSel).First(), r.baseURL)
	}
	return c
}

// card holds the fields of one listing card as found in the markup; nil means
// the element was absent or empty.
type card struct {
	title    *string
	link     *string
	company  *string
	location *string
}

// listing validates c, returning the names of any missing fields.
func (c card) listing() (models.JobListing, []string) {
	var missing []string
	if c.title == nil {
		missing = append(missing, "title")
	}
	if c.link == nil {
		missing = append(missing, "link")
	}
	if c.company == nil {
		missing = append(missing, "company")
	}
	if c.location == nil {
		missing = append(missing, "location")
	}
	if len(missing) > 0 {
		return models.JobListing{}, missing
	}

	return models.JobListing{
		Title:    *c.title,
		Link:     *c.link,
		Company:  *c.company,
		Location: *c.location,
	}, nil
}
