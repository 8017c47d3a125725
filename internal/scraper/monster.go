package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/jimezsa/devjobs/internal/models"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://www.monster.com"
	searchPath     = "/jobs/search/"
	searchTerm     = "Software-Developer"
)

// Monster fetches the first page of software developer search results.
type Monster struct {
	client    Doer
	baseURL   string
	userAgent string
	logger    zerolog.Logger
}

func NewMonster(client Doer, cfg models.ScraperConfig, logger zerolog.Logger) *Monster {
	return &Monster{
		client:    client,
		baseURL:   normalizeBaseURL(cfg.BaseURL),
		userAgent: strings.TrimSpace(cfg.UserAgent),
		logger:    logger.With().Str("component", "fetcher").Logger(),
	}
}

// BaseURL is the site root links on the results page are resolved against.
func (m *Monster) BaseURL() string {
	return m.baseURL
}

// Fetch performs exactly one GET for query and returns the raw page.
func (m *Monster) Fetch(ctx context.Context, query models.SearchQuery) ([]byte, error) {
	target := BuildSearchURL(m.baseURL, query.Location)
	m.logger.Debug().Str("url", target).Msg("fetching search results")

	headers := map[string]string{}
	if m.userAgent != "" {
		headers["user-agent"] = m.userAgent
	}
	body, status, err := fetchBody(ctx, m.client, target, headers)
	if err != nil {
		m.logger.Debug().Err(err).Int("status", status).Msg("fetch failed")
		return nil, err
	}

	m.logger.Debug().Int("status", status).Int("bytes", len(body)).Msg("fetched search results")
	return body, nil
}

// BuildSearchURL returns the search URL for the fixed developer query, with
// location added as an escaped where parameter when present.
func BuildSearchURL(baseURL string, location string) string {
	target := normalizeBaseURL(baseURL) + searchPath + "?q=" + searchTerm
	if location = strings.TrimSpace(location); location != "" {
		target += "&where=" + url.QueryEscape(location)
	}
	return target
}

func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return DefaultBaseURL
	}
	return baseURL
}
