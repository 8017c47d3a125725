package scraper

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Markup of the search results page. Every posting is a section.card-content
// inside #ResultsContainer; sponsored cards lack some of the sub-elements.
var (
	resultsContainerSel = cascadia.MustCompile("#ResultsContainer")
	headingSel          = cascadia.MustCompile("h2")
	cardSel             = cascadia.MustCompile("section.card-content")
	cardTitleSel        = cascadia.MustCompile("h2.title")
	cardCompanySel      = cascadia.MustCompile("div.company")
	cardLocationSel     = cascadia.MustCompile("div.location")
	linkSel             = cascadia.MustCompile("a[href]")
)

// firstText returns the trimmed text of the first element under s matching
// m, or nil when there is no such element or it is blank.
func firstText(s *goquery.Selection, m goquery.Matcher) *string {
	found := s.FindMatcher(m).First()
	if found.Length() == 0 {
		return nil
	}
	return nonEmpty(strings.TrimSpace(found.Text()))
}

// firstLink returns the absolute target of the first hyperlink under s, or nil
// when there is none or it does not resolve to an http(s) URL.
func firstLink(s *goquery.Selection, base string) *string {
	href := strings.TrimSpace(s.FindMatcher(linkSel).First().AttrOr("href", ""))
	if href == "" {
		return nil
	}
	link := absoluteURL(base, href)
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return nil
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil
	}
	return &link
}

func nonEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
