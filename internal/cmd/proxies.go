package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/devjobs/internal/config"
	"github.com/jimezsa/devjobs/internal/models"
	"github.com/jimezsa/devjobs/internal/network"
	"github.com/jimezsa/devjobs/internal/scraper"
)

type ProxiesCmd struct {
	Check ProxyCheckCmd `cmd:"" help:"Fetch the search page once through each configured proxy."`
}

type ProxyCheckCmd struct {
	Proxies string `help:"Comma-separated proxy URLs." env:"DEVJOBS_PROXIES"`
	Timeout int    `help:"Timeout in seconds." default:"15"`
}

type proxyCheckResult struct {
	proxy   string
	status  string
	latency time.Duration
	err     error
}

func (p *ProxyCheckCmd) Run(ctx *Context) error {
	proxies, err := config.LoadProxies(p.Proxies)
	if err != nil {
		return err
	}
	if len(proxies) == 0 {
		return fmt.Errorf("no proxies configured")
	}

	results := make([]proxyCheckResult, 0, len(proxies))
	for _, proxy := range proxies {
		results = append(results, p.check(ctx, proxy))
	}
	if err := writeProxyResults(ctx.Out, results); err != nil {
		return err
	}
	reportProxyFailures(ctx, results)
	return nil
}

func reportProxyFailures(ctx *Context, results []proxyCheckResult) {
	if ctx.UI == nil {
		return
	}
	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
		}
	}
	if failed > 0 {
		ctx.UI.Warnf("%d of %d proxies failed", failed, len(results))
	}
}

func (p *ProxyCheckCmd) check(ctx *Context, proxy string) proxyCheckResult {
	result := proxyCheckResult{proxy: proxy, status: "error"}

	rotator, err := network.NewRotator([]string{proxy}, time.Minute)
	if err != nil {
		result.err = err
		return result
	}
	client, err := network.NewClient(rotator)
	if err != nil {
		result.err = err
		return result
	}
	monster := scraper.NewMonster(client, models.ScraperConfig{
		BaseURL:   ctx.Config.BaseURL,
		UserAgent: ctx.Config.UserAgent,
	}, ctx.Logger.With().Str("proxy", proxy).Logger())

	runCtx, cancel := context.WithTimeout(context.Background(), time.Duration(p.Timeout)*time.Second)
	defer cancel()

	start := time.Now()
	_, err = monster.Fetch(runCtx, models.SearchQuery{})
	result.latency = time.Since(start)
	return classifyProxyResult(result, err)
}

func classifyProxyResult(result proxyCheckResult, err error) proxyCheckResult {
	var statusErr *scraper.HTTPStatusError
	switch {
	case err == nil:
		result.status = "ok"
	case errors.As(err, &statusErr):
		result.status = strconv.Itoa(statusErr.StatusCode)
		result.err = err
	default:
		result.status = "error"
		result.err = err
	}
	return result
}

func writeProxyResults(w io.Writer, results []proxyCheckResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "proxy\tstatus\tlatency_ms\terror")
	for _, res := range results {
		msg := ""
		if res.err != nil {
			msg = res.err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", res.proxy, res.status, res.latency.Milliseconds(), msg)
	}
	return tw.Flush()
}
