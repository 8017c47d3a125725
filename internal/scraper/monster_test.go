package scraper

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/devjobs/internal/models"
	"github.com/rs/zerolog"
)

type fakeDoer struct {
	status   int
	body     string
	err      error
	requests []*fhttp.Request
}

func (f *fakeDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &fhttp.Response{
		StatusCode: f.status,
		Header:     fhttp.Header{},
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func TestBuildSearchURL(t *testing.T) {
	t.Run("without location", func(t *testing.T) {
		got := BuildSearchURL("", "")
		want := "https://www.monster.com/jobs/search/?q=Software-Developer"
		if got != want {
			t.Fatalf("BuildSearchURL() = %q, want %q", got, want)
		}
		if strings.Contains(got, "where=") {
			t.Fatalf("unexpected where parameter in %q", got)
		}
	})

	t.Run("blank location", func(t *testing.T) {
		got := BuildSearchURL(DefaultBaseURL, "   ")
		if strings.Contains(got, "where=") {
			t.Fatalf("unexpected where parameter in %q", got)
		}
	})

	t.Run("escapes location", func(t *testing.T) {
		locations := []string{"Austin", "New York, NY", "São Paulo", "a&b=c", "50%/remote?"}
		for _, location := range locations {
			got := BuildSearchURL(DefaultBaseURL, location)
			parsed, err := url.Parse(got)
			if err != nil {
				t.Fatalf("url.Parse(%q) error = %v", got, err)
			}
			query := parsed.Query()
			if query.Get("q") != "Software-Developer" {
				t.Fatalf("q = %q in %q", query.Get("q"), got)
			}
			if query.Get("where") != location {
				t.Fatalf("where = %q, want %q (url %q)", query.Get("where"), location, got)
			}
			if len(query) != 2 {
				t.Fatalf("unexpected parameters in %q", got)
			}
		}
	})

	t.Run("custom base", func(t *testing.T) {
		got := BuildSearchURL("http://localhost:8080/", "Berlin")
		want := "http://localhost:8080/jobs/search/?q=Software-Developer&where=Berlin"
		if got != want {
			t.Fatalf("BuildSearchURL() = %q, want %q", got, want)
		}
	})
}

func TestMonsterFetch(t *testing.T) {
	doer := &fakeDoer{status: 200, body: threeCardPage}
	monster := NewMonster(doer, models.ScraperConfig{}, zerolog.Nop())

	body, err := monster.Fetch(context.Background(), models.SearchQuery{Location: "Austin, TX"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != threeCardPage {
		t.Fatalf("Fetch() returned unexpected body")
	}
	if len(doer.requests) != 1 {
		t.Fatalf("expected exactly one request, got %d", len(doer.requests))
	}

	req := doer.requests[0]
	if req.Method != fhttp.MethodGet {
		t.Fatalf("method = %s, want GET", req.Method)
	}
	if got := req.URL.Query().Get("where"); got != "Austin, TX" {
		t.Fatalf("where = %q", got)
	}
	if req.Header.Get("accept-language") == "" {
		t.Fatalf("expected default headers to be set")
	}
}

func TestMonsterFetchStatusError(t *testing.T) {
	doer := &fakeDoer{status: 503, body: "unavailable"}
	monster := NewMonster(doer, models.ScraperConfig{BaseURL: "http://jobs.local"}, zerolog.Nop())

	_, err := monster.Fetch(context.Background(), models.SearchQuery{})
	var statusErr *HTTPStatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Fetch() error = %v, want *HTTPStatusError", err)
	}
	if statusErr.StatusCode != 503 {
		t.Fatalf("StatusCode = %d, want 503", statusErr.StatusCode)
	}
	if !strings.HasPrefix(statusErr.URL, "http://jobs.local/jobs/search/") {
		t.Fatalf("unexpected URL %q", statusErr.URL)
	}
	if len(doer.requests) != 1 {
		t.Fatalf("expected no retries, got %d requests", len(doer.requests))
	}
}

func TestMonsterFetchNetworkError(t *testing.T) {
	dialErr := errors.New("dial tcp: connection refused")
	doer := &fakeDoer{err: dialErr}
	monster := NewMonster(doer, models.ScraperConfig{}, zerolog.Nop())

	_, err := monster.Fetch(context.Background(), models.SearchQuery{})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Fetch() error = %v, want *NetworkError", err)
	}
	if !errors.Is(err, dialErr) {
		t.Fatalf("expected wrapped dial error, got %v", err)
	}
	if len(doer.requests) != 1 {
		t.Fatalf("expected no retries, got %d requests", len(doer.requests))
	}
}

func TestFetchThenExtract(t *testing.T) {
	doer := &fakeDoer{status: 200, body: headingPage}
	monster := NewMonster(doer, models.ScraperConfig{}, zerolog.Nop())

	body, err := monster.Fetch(context.Background(), models.SearchQuery{Keyword: "developer"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	results, err := NewExtractor(monster.BaseURL(), zerolog.Nop()).Parse(body)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	count := 0
	for range results.FilterByKeyword("developer") {
		count++
	}
	if count != 2 {
		t.Fatalf("expected 2 matches, got %d", count)
	}
}

func TestMonsterFetchUserAgent(t *testing.T) {
	doer := &fakeDoer{status: 200}
	monster := NewMonster(doer, models.ScraperConfig{UserAgent: "devjobs-test/1.0"}, zerolog.Nop())

	if _, err := monster.Fetch(context.Background(), models.SearchQuery{}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got := doer.requests[0].Header.Get("User-Agent"); got != "devjobs-test/1.0" {
		t.Fatalf("User-Agent = %q", got)
	}
}
