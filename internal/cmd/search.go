package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jimezsa/devjobs/internal/config"
	"github.com/jimezsa/devjobs/internal/export"
	"github.com/jimezsa/devjobs/internal/models"
	"github.com/jimezsa/devjobs/internal/network"
	"github.com/jimezsa/devjobs/internal/scraper"
	"github.com/jimezsa/devjobs/internal/ui"
)

type SearchCmd struct {
	Location string `help:"The location of the job." placeholder:"LOCATION"`
	Word     string `help:"Only print jobs whose heading contains this keyword." placeholder:"WORD"`
	Proxies  string `help:"Comma-separated proxy URLs." env:"DEVJOBS_PROXIES"`
}

// fetcher is the part of scraper.Monster the search command depends on.
type fetcher interface {
	Fetch(ctx context.Context, query models.SearchQuery) ([]byte, error)
	BaseURL() string
}

func (s *SearchCmd) Run(ctx *Context) error {
	query := s.searchQuery(ctx.Config)

	client, err := newClient(ctx, s.Proxies)
	if err != nil {
		return err
	}
	monster := scraper.NewMonster(client, models.ScraperConfig{
		BaseURL:   ctx.Config.BaseURL,
		UserAgent: ctx.Config.UserAgent,
	}, ctx.Logger)

	return runSearch(ctx, monster, query)
}

// searchQuery keeps the word verbatim: a word given on the command line
// selects keyword mode even when it is blank.
func (s *SearchCmd) searchQuery(cfg config.Config) models.SearchQuery {
	return models.SearchQuery{
		Keyword:  s.Word,
		Location: firstNonEmpty(s.Location, cfg.DefaultLocation),
	}
}

func newClient(ctx *Context, proxiesFlag string) (*network.Client, error) {
	proxies, err := config.LoadProxies(proxiesFlag)
	if err != nil {
		return nil, err
	}

	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 10*time.Minute)
		if err != nil {
			return nil, err
		}
		ctx.Logger.Debug().Int("proxies", rotator.Len()).Msg("routing search through proxies")
	}
	return network.NewClient(rotator)
}

func runSearch(ctx *Context, source fetcher, query models.SearchQuery) error {
	stopIndicator := startSearchIndicator(ctx)
	body, err := source.Fetch(context.Background(), query)
	if stopIndicator != nil {
		stopIndicator()
	}
	if err != nil {
		return fmt.Errorf("fetch search results: %w", err)
	}

	results, err := scraper.NewExtractor(source.BaseURL(), ctx.Logger).Parse(body)
	if err != nil {
		return err
	}
	if results.Empty() {
		ctx.Logger.Debug().Msg("page has no results container")
	}

	opts := export.WriteOptions{}
	if ctx.UI != nil && ctx.UI.ColorEnabled {
		opts.ColorEnabled = true
		opts.Hyperlinks = ui.IsTTY(ctx.Out)
	}

	var count int
	if query.HasKeyword() {
		count, err = export.WriteMatches(ctx.Out, results.FilterByKeyword(query.Keyword), opts)
	} else {
		count, err = export.WriteListings(ctx.Out, results.Listings(), opts)
	}
	if err != nil {
		return err
	}

	printSearchSummary(ctx, query, count)
	return nil
}

func printSearchSummary(ctx *Context, query models.SearchQuery, count int) {
	if ctx == nil || ctx.Err == nil || !ctx.Verbose {
		return
	}
	_, _ = fmt.Fprintln(ctx.Err, formatSearchSummary(query, count))
}

func formatSearchSummary(query models.SearchQuery, count int) string {
	location := query.Location
	if location == "" {
		location = "any"
	}
	if query.HasKeyword() {
		return fmt.Sprintf("summary: matches=%d word=%q location=%q", count, query.Keyword, location)
	}
	return fmt.Sprintf("summary: jobs=%d location=%q", count, location)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return ""
}

func startSearchIndicator(ctx *Context) func() {
	if ctx == nil || ctx.Err == nil || ctx.UI == nil {
		return nil
	}
	if !ui.IsTTY(ctx.Err) {
		return nil
	}

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		start := time.Now()
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		index := 0

		for {
			select {
			case <-done:
				fmt.Fprint(ctx.Err, "\r\033[2K")
				return
			case <-ticker.C:
				seconds := int(time.Since(start).Seconds())
				frame := frames[index%len(frames)]
				fmt.Fprintf(ctx.Err, "\r\033[2KSearching... %ds %s", seconds, frame)
				index++
			}
		}
	}()

	return func() {
		close(done)
		<-stopped
	}
}
