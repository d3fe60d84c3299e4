package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/glamourhall/glamourhall/internal/browser"
)

// PageFetcher drives a real headless browser against the storefront. Each
// Fetch launches and tears down its own browser session.
type PageFetcher struct {
	site        Site
	browserOpts *browser.Options

	navigationTimeout time.Duration
	selectorTimeout   time.Duration
	settleDelay       time.Duration
	maxScrollSteps    int

	logger *slog.Logger
}

type PageFetcherOptions struct {
	Browser           *browser.Options
	NavigationTimeout time.Duration
	SelectorTimeout   time.Duration
	SettleDelay       time.Duration
	MaxScrollSteps    int
}

func NewPageFetcher(site Site, opts PageFetcherOptions) *PageFetcher {
	f := &PageFetcher{
		site:              site,
		browserOpts:       opts.Browser,
		navigationTimeout: opts.NavigationTimeout,
		selectorTimeout:   opts.SelectorTimeout,
		settleDelay:       opts.SettleDelay,
		maxScrollSteps:    opts.MaxScrollSteps,
		logger:            slog.Default().With("component", "page_fetcher"),
	}

	if f.navigationTimeout <= 0 {
		f.navigationTimeout = 90 * time.Second
	}
	if f.selectorTimeout <= 0 {
		f.selectorTimeout = 45 * time.Second
	}
	if f.settleDelay <= 0 {
		f.settleDelay = 2 * time.Second
	}
	if f.maxScrollSteps <= 0 {
		f.maxScrollSteps = 20
	}

	return f
}

// Fetch navigates to a search URL, waits for either the results grid or the
// empty-search marker, scrolls to trigger lazy-loaded cards, and returns the
// settled page HTML. Returns ErrNoResults when the storefront reports an
// empty search.
func (f *PageFetcher) Fetch(ctx context.Context, searchURL string) (string, error) {
	session, err := browser.NewSession(f.browserOpts)
	if err != nil {
		return "", err
	}
	defer session.Close()

	page, err := session.NewPage()
	if err != nil {
		return "", err
	}
	defer page.Close()

	if _, err := page.Goto(searchURL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(float64(f.navigationTimeout.Milliseconds())),
	}); err != nil {
		return "", fmt.Errorf("navigation failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	// A combined selector resolves with whichever readiness signal the page
	// renders first.
	raceSelector := f.site.ResultsSelector + ", " + f.site.NoResultsSelector
	if _, err := page.WaitForSelector(raceSelector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(float64(f.selectorTimeout.Milliseconds())),
	}); err != nil {
		return "", fmt.Errorf("readiness signal timed out: %w", err)
	}

	if count, _ := page.Locator(f.site.NoResultsSelector).Count(); count > 0 {
		return "", ErrNoResults
	}

	if err := f.autoScroll(ctx, page); err != nil {
		f.logger.Warn("auto-scroll aborted", "url", searchURL, "error", err)
	}

	if err := waitOrDone(ctx, f.settleDelay); err != nil {
		return "", err
	}

	html, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to capture page content: %w", err)
	}

	return html, nil
}

// autoScroll pages the viewport downward until the document stops growing,
// bounded by maxScrollSteps so an infinite-scroll page cannot trap us.
func (f *PageFetcher) autoScroll(ctx context.Context, page playwright.Page) error {
	var lastHeight float64

	for i := 0; i < f.maxScrollSteps; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := page.Evaluate(`window.scrollBy(0, window.innerHeight)`); err != nil {
			return fmt.Errorf("scroll step failed: %w", err)
		}

		if err := waitOrDone(ctx, 300*time.Millisecond); err != nil {
			return err
		}

		raw, err := page.Evaluate(`document.body.scrollHeight`)
		if err != nil {
			return fmt.Errorf("failed to read scroll height: %w", err)
		}

		height := toFloat(raw)
		if height > 0 && height == lastHeight {
			break
		}
		lastHeight = height
	}

	return nil
}

// waitOrDone sleeps for d unless ctx is cancelled first.
func waitOrDone(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
