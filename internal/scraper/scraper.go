package scraper

import (
	"context"
	"errors"
	"net/url"
	"strings"
)

var (
	// ErrNoResults means the storefront rendered its empty-search state.
	ErrNoResults = errors.New("no results for keyword")
)

// Fetcher returns fully-rendered HTML for a search URL. The playwright
// adapter is the only implementation that talks to a real browser; tests
// substitute a stub so the rest of the pipeline runs without one.
type Fetcher interface {
	Fetch(ctx context.Context, searchURL string) (string, error)
}

// Site describes the storefront's search surface. The markup is unversioned
// and scrape-fragile, so every selector lives here rather than inline.
type Site struct {
	BaseURL           string
	ResultsSelector   string
	NoResultsSelector string
	CardSelector      string
	NameSelector      string
	BrandSelector     string
	PriceSelector     string
	ImageSelector     string
	LinkSelector      string
}

func DefaultSite() Site {
	return Site{
		BaseURL:           "https://www.myntra.com",
		ResultsSelector:   "ul.results-base li.product-base",
		NoResultsSelector: ".index-emptyContainer",
		CardSelector:      "li.product-base",
		NameSelector:      "h4.product-product",
		BrandSelector:     "h3.product-brand",
		PriceSelector:     "span.product-discountedPrice",
		ImageSelector:     "img.img-responsive",
		LinkSelector:      "a",
	}
}

// SearchURL builds the storefront search URL for a keyword.
func (s Site) SearchURL(keyword string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + url.PathEscape(keyword)
}

// ResolveURL turns a relative product href into an absolute URL against the
// site origin. Absolute hrefs pass through unchanged.
func (s Site) ResolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return href
	}

	base, err := url.Parse(s.BaseURL)
	if err != nil {
		return href
	}

	return base.ResolveReference(ref).String()
}
