package export

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/jimezsa/devjobs/internal/models"
	"github.com/jimezsa/devjobs/internal/ui"
	"github.com/muesli/termenv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
}

// WriteListings prints each listing as title, link, company and location
// lines followed by a blank line. It returns the number written.
func WriteListings(w io.Writer, listings iter.Seq[models.JobListing], opts WriteOptions) (int, error) {
	output := termenv.NewOutput(w)
	count := 0
	for job := range listings {
		lines := []string{
			safe(job.Title),
			displayLink(output, job.Link, opts),
			safe(job.Company),
			safe(job.Location),
		}
		if err := writeBlock(w, lines); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// WriteMatches prints each keyword match as its heading and an
// "Apply here:" line followed by a blank line. It returns the number written.
func WriteMatches(w io.Writer, matches iter.Seq[models.KeywordMatch], opts WriteOptions) (int, error) {
	output := termenv.NewOutput(w)
	count := 0
	for match := range matches {
		lines := []string{
			safe(match.Title),
			"Apply here: " + displayLink(output, match.Link, opts),
		}
		if err := writeBlock(w, lines); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func writeBlock(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func displayLink(output *termenv.Output, link string, opts WriteOptions) string {
	link = safe(link)
	text := ui.ColorizeLink(output, opts.ColorEnabled, link)
	if opts.Hyperlinks {
		return hyperlink(link, text)
	}
	return text
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func safe(value string) string {
	return strings.TrimSpace(value)
}
