package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

// StaticFetcher does a plain HTTP fetch without rendering. It is the
// fallback for pages that serve their content server-side, and the
// cheaper choice for the debugging endpoint.
type StaticFetcher struct{}

// NewStaticFetcher creates the fetcher.
func NewStaticFetcher() *StaticFetcher {
	return &StaticFetcher{}
}

// FetchText downloads the page and returns its sanitized text.
func (f *StaticFetcher) FetchText(ctx context.Context, pageURL string, maxChars int) (string, error) {
	// A fresh collector per fetch; the app fetches rarely and domains
	// vary, so there is nothing to pool.
	c := colly.NewCollector(colly.AllowURLRevisit())
	c.SetRequestTimeout(30 * time.Second)

	extensions.RandomUserAgent(c)
	extensions.Referer(c)

	var (
		rawHTML  string
		fetchErr error
	)
	c.OnResponse(func(r *colly.Response) {
		rawHTML = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("static fetch of %s: status %d: %w", pageURL, r.StatusCode, err)
	})

	if err := c.Visit(pageURL); err != nil {
		return "", fmt.Errorf("static fetch of %s: %w", pageURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	if rawHTML == "" {
		return "", fmt.Errorf("static fetch of %s returned no body", pageURL)
	}
	return PageText(rawHTML, pageURL, maxChars)
}
