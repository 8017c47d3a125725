package models

// ScraperConfig contains runtime options for the search page scraper.
type ScraperConfig struct {
	BaseURL   string
	UserAgent string
}
