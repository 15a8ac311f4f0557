package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/omriland/CasaTrack-sub000/internal/contextkeys"
	"github.com/omriland/CasaTrack-sub000/internal/core/port"

	"github.com/chromedp/chromedp"
)

const (
	tabTimeout     = 45 * time.Second
	settleDelay    = 3 * time.Second
	fetchAttempts  = 3
	attemptBackoff = 2 * time.Second
)

// RenderedFetcher drives a headless browser so client-rendered listing
// sites produce real content. One allocator is shared; every fetch
// opens its own tab.
type RenderedFetcher struct {
	allocatorCtx    context.Context
	cancelAllocator context.CancelFunc
}

// NewRenderedFetcher creates the fetcher and its browser allocator.
func NewRenderedFetcher(parent context.Context) *RenderedFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(parent, opts...)

	return &RenderedFetcher{
		allocatorCtx:    allocCtx,
		cancelAllocator: cancel,
	}
}

// FetchText renders the page and returns its sanitized text. Listing
// sites throttle aggressively, so transient failures are retried with
// backoff before giving up.
func (f *RenderedFetcher) FetchText(ctx context.Context, pageURL string, maxChars int) (string, error) {
	fetcherLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "RenderedFetcher",
		"url":       pageURL,
	})

	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		rawHTML, err := f.fetchHTML(pageURL)
		if err == nil {
			return PageText(rawHTML, pageURL, maxChars)
		}
		lastErr = err
		fetcherLogger.Warn("Rendered fetch attempt failed", port.Fields{"attempt": attempt, "error": err.Error()})

		select {
		case <-time.After(time.Duration(attempt) * attemptBackoff):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "", fmt.Errorf("rendered fetch of %s failed after %d attempts: %w", pageURL, fetchAttempts, lastErr)
}

func (f *RenderedFetcher) fetchHTML(pageURL string) (string, error) {
	tabCtx, cancel := chromedp.NewContext(f.allocatorCtx)
	defer cancel()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, tabTimeout)
	defer cancelTimeout()

	var rawHTML string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Let client-side rendering settle before snapshotting.
		chromedp.Sleep(settleDelay),
		chromedp.OuterHTML("html", &rawHTML, chromedp.ByQuery),
	)
	if err != nil {
		return "", err
	}
	return rawHTML, nil
}

// Close releases the browser allocator.
func (f *RenderedFetcher) Close() {
	f.cancelAllocator()
}
