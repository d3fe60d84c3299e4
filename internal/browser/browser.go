package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ErrLaunch wraps any failure to bring up a browser process. Callers treat
// it as "no products", never as a user-visible error.
var ErrLaunch = errors.New("browser launch failed")

// Session owns one isolated headless Chromium instance. A session is created
// per scrape call and must be released with Close; there is no pooling, which
// trades startup latency for isolation between keyword scrapes.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	logger  *slog.Logger
}

type Options struct {
	Headless       bool
	Timeout        time.Duration
	UserAgent      string
	ViewportWidth  int
	ViewportHeight int
	AcceptLanguage string
	TimezoneID     string
	Locale         string
}

func DefaultOptions() *Options {
	return &Options{
		Headless:       true,
		Timeout:        90 * time.Second,
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		ViewportWidth:  1920,
		ViewportHeight: 1080,
		AcceptLanguage: "en-US,en;q=0.9",
		TimezoneID:     "Asia/Kolkata",
		Locale:         "en-IN",
	}
}

// NewSession launches a fresh headless browser with a realistic desktop
// fingerprint. Any failure is reported as ErrLaunch.
func NewSession(opts *Options) (*Session, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultOptions().UserAgent
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("%w: start playwright: %v", ErrLaunch, err)
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--disable-gpu",
			"--no-sandbox",
			"--disable-setuid-sandbox",
			"--window-size=1920,1080",
			"--user-agent=" + opts.UserAgent,
		},
	}

	b, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("%w: launch chromium: %v", ErrLaunch, err)
	}

	ctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		UserAgent:         &opts.UserAgent,
		AcceptDownloads:   playwright.Bool(false),
		JavaScriptEnabled: playwright.Bool(true),
		Locale:            &opts.Locale,
		TimezoneId:        &opts.TimezoneID,
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
		ExtraHttpHeaders: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language": opts.AcceptLanguage,
			"Cache-Control":   "no-cache",
			"Pragma":          "no-cache",
		},
	})
	if err != nil {
		b.Close()
		pw.Stop()
		return nil, fmt.Errorf("%w: create context: %v", ErrLaunch, err)
	}

	return &Session{
		pw:      pw,
		browser: b,
		context: ctx,
		logger:  slog.Default().With("component", "browser"),
	}, nil
}

func (s *Session) NewPage() (playwright.Page, error) {
	page, err := s.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return page, nil
}

// Close tears down the page context, the browser process and the playwright
// driver. Safe to call from a defer regardless of how far launch got.
func (s *Session) Close() error {
	var errs []error

	if s.context != nil {
		if err := s.context.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close context: %w", err))
		}
	}

	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
	}

	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("failed to stop playwright: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}

	return nil
}
